// @lixen: #focus{control[types,layout,prompt]}
// @lixen: #interact{state[pane,window,session]}
package mux

import (
	"fmt"
	"time"
)

// Layout is the arrangement preset of a window
type Layout uint8

const (
	LayoutEvenHorizontal Layout = iota
	LayoutEvenVertical
	LayoutMainHorizontal
	LayoutMainVertical
	LayoutTiled
	LayoutCustom
)

var layoutNames = [...]string{
	LayoutEvenHorizontal: "even-horizontal",
	LayoutEvenVertical:   "even-vertical",
	LayoutMainHorizontal: "main-horizontal",
	LayoutMainVertical:   "main-vertical",
	LayoutTiled:          "tiled",
	LayoutCustom:         "custom",
}

// layoutCycle is the order walked by CycleLayout
var layoutCycle = []Layout{
	LayoutEvenHorizontal,
	LayoutEvenVertical,
	LayoutMainHorizontal,
	LayoutMainVertical,
	LayoutTiled,
}

func (l Layout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return fmt.Sprintf("layout(%d)", uint8(l))
}

// ParseLayout resolves a preset name such as "main-vertical"
func ParseLayout(name string) (Layout, bool) {
	for _, l := range layoutCycle {
		if layoutNames[l] == name {
			return l, true
		}
	}
	return 0, false
}

// Direction is a pane navigation or resize direction
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	}
	return "down"
}

// horizontal reports whether d moves along the x axis
func (d Direction) horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Position is a line/column location inside pane text
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Rect is a pane rectangle in character cells
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the first column past the rectangle
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Pane is one simulated terminal inside a window
type Pane struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	Content    []string `json:"content"`
	Scrollback []string `json:"scrollback,omitempty"`
	ScrollPos  int      `json:"scroll_pos"`
	Cursor     Position `json:"cursor"`

	Title  string `json:"title"`
	Zoomed bool   `json:"zoomed,omitempty"`
}

// Rect returns the pane geometry
func (p *Pane) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Right returns the first column past the pane
func (p *Pane) Right() int { return p.X + p.Width }

// Bottom returns the first row past the pane
func (p *Pane) Bottom() int { return p.Y + p.Height }

func (p *Pane) setRect(r Rect) {
	p.X, p.Y, p.Width, p.Height = r.X, r.Y, r.Width, r.Height
}

// Lines returns scrollback followed by visible content
func (p *Pane) Lines() []string {
	out := make([]string, 0, len(p.Scrollback)+len(p.Content))
	out = append(out, p.Scrollback...)
	return append(out, p.Content...)
}

func (p *Pane) clone() *Pane {
	c := *p
	c.Content = append([]string(nil), p.Content...)
	c.Scrollback = append([]string(nil), p.Scrollback...)
	return &c
}

// Window is an ordered collection of panes sharing one container
type Window struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Index          int     `json:"index"`
	Panes          []*Pane `json:"panes"`
	ActivePane     int     `json:"active_pane"`
	LastActivePane int     `json:"last_active_pane,omitempty"`
	Layout         Layout  `json:"layout"`
}

func (w *Window) clone() *Window {
	c := *w
	c.Panes = make([]*Pane, len(w.Panes))
	for i, p := range w.Panes {
		c.Panes[i] = p.clone()
	}
	return &c
}

// Pane returns the pane with id, or nil
func (w *Window) Pane(id int) *Pane {
	for _, p := range w.Panes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (w *Window) paneIndex(id int) int {
	for i, p := range w.Panes {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Zoomed returns the zoomed pane, or nil
func (w *Window) Zoomed() *Pane {
	for _, p := range w.Panes {
		if p.Zoomed {
			return p
		}
	}
	return nil
}

// Session is an ordered collection of windows
type Session struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Windows          []*Window `json:"windows"`
	ActiveWindow     int       `json:"active_window"`
	LastActiveWindow int       `json:"last_active_window,omitempty"`
	Created          time.Time `json:"created"`
	Attached         bool      `json:"attached"`
}

func (s *Session) clone() *Session {
	c := *s
	c.Windows = make([]*Window, len(s.Windows))
	for i, w := range s.Windows {
		c.Windows[i] = w.clone()
	}
	return &c
}

// Window returns the window with id, or nil
func (s *Session) Window(id int) *Window {
	for _, w := range s.Windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *Session) windowIndex(id int) int {
	for i, w := range s.Windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// reindex restores contiguous 0..N-1 window indexes after removal or move
func (s *Session) reindex() {
	for i, w := range s.Windows {
		w.Index = i
	}
}

// IDs allocates pane, window and session ids; it lives in State so allocation is reproducible
type IDs struct {
	NextPane    int `json:"next_pane"`
	NextWindow  int `json:"next_window"`
	NextSession int `json:"next_session"`
}

func (ids *IDs) pane() int {
	ids.NextPane++
	return ids.NextPane
}

func (ids *IDs) window() int {
	ids.NextWindow++
	return ids.NextWindow
}

func (ids *IDs) session() int {
	ids.NextSession++
	return ids.NextSession
}

// SelectKind is the copy mode selection shape
type SelectKind uint8

const (
	SelectChar SelectKind = iota
	SelectLine
	SelectRect
)

// CopyMode is the scrollback browsing state of the active pane
type CopyMode struct {
	Enabled   bool       `json:"enabled"`
	Pane      int        `json:"pane,omitempty"`
	Cursor    Position   `json:"cursor"`
	Anchor    Position   `json:"anchor"`
	Selecting bool       `json:"selecting"`
	Kind      SelectKind `json:"kind"`
	Count     int        `json:"count,omitempty"`

	Pattern string     `json:"pattern,omitempty"`
	Forward bool       `json:"forward"`
	Matches []Position `json:"matches,omitempty"`
	Current int        `json:"current"`
}

// PromptKind is what a completed prompt line does
type PromptKind uint8

const (
	PromptCommand PromptKind = iota
	PromptRenameWindow
	PromptRenameSession
	PromptFindWindow
	PromptNewSession
	PromptSearchDown
	PromptSearchUp
)

var promptLabels = [...]string{
	PromptCommand:       ":",
	PromptRenameWindow:  "(rename-window) ",
	PromptRenameSession: "(rename-session) ",
	PromptFindWindow:    "(find-window) ",
	PromptNewSession:    "(new-session) ",
	PromptSearchDown:    "(search down) ",
	PromptSearchUp:      "(search up) ",
}

// Label returns the text painted before the prompt input
func (k PromptKind) Label() string {
	if int(k) < len(promptLabels) {
		return promptLabels[k]
	}
	return "> "
}

// Prompt is the status line input
type Prompt struct {
	Active     bool       `json:"active"`
	Kind       PromptKind `json:"kind"`
	Text       string     `json:"text"`
	History    []string   `json:"history,omitempty"`
	HistoryPos int        `json:"history_pos"`
}

// MessageType is the severity of a status message
type MessageType uint8

const (
	MessageInfo MessageType = iota
	MessageWarning
	MessageError
)

func (t MessageType) String() string {
	switch t {
	case MessageWarning:
		return "warning"
	case MessageError:
		return "error"
	}
	return "info"
}

// Result describes what one call did
// Output carries multi-line listings and pasted text; Scroll is the copy mode viewport top
type Result struct {
	Message  string
	Type     MessageType
	Output   string
	Scroll   int
	Detached bool
}
