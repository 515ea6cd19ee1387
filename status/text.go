package status

import (
	"sync/atomic"

	"github.com/mattn/go-runewidth"
)

// MaxTextWidth is the display width kept by a Text; longer values are cut and end in "..."
const MaxTextWidth = 60

// Text is an atomically replaced short string such as the last engine message
// The zero value holds ""
type Text struct {
	ptr atomic.Pointer[string]
}

// Store replaces the value, truncated to MaxTextWidth cells
func (t *Text) Store(val string) {
	val = runewidth.Truncate(val, MaxTextWidth, "...")
	t.ptr.Store(&val)
}

// Load returns the current value
func (t *Text) Load() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
