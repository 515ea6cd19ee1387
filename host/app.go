// @lixen: #focus{host[app,outcome]}
// Package host runs an engine inside a tcell screen: key capture, painting, clipboard, bell and crash recovery
package host

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-dojo/input"
)

// Level is the severity of an engine message as seen by the host
type Level uint8

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// Outcome is the engine-independent summary of one key or mouse event
type Outcome struct {
	Message string
	Level   Level
	Action  string
	Mode    string

	// Clipboard is set when the event produced text for the OS clipboard
	Clipboard    string
	HasClipboard bool

	Recording bool
	Quit      bool
}

// App adapts one engine to the event loop; the loop owns it and calls it from one goroutine
type App interface {
	// Name is the short engine name used in logs
	Name() string
	HandleKey(key input.Key, now time.Time) Outcome
	Resize(width, height int)
	Draw(scr tcell.Screen, now time.Time)
}

// MouseApp is implemented by apps that consume mouse events
type MouseApp interface {
	HandleMouse(ev *tcell.EventMouse, now time.Time) Outcome
}
