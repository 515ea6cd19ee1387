// @lixen: #focus{control[state,getters]}
// @lixen: #interact{state[session,window,pane]}
package mux

import (
	"fmt"
	"time"
)

const (
	DefaultWidth         = 120
	DefaultHeight        = 40
	DefaultPrefixTimeout = 2 * time.Second
	DefaultResizeStep    = 5
	DefaultSessionName   = "main"
	DefaultWindowName    = "main"

	// SplitMinWidth and SplitMinHeight bound each half of a split
	SplitMinWidth  = 10
	SplitMinHeight = 5

	// MinPaneWidth and MinPaneHeight bound a resize
	MinPaneWidth  = 10
	MinPaneHeight = 3

	MaxScrollback   = 2000
	MaxPasteBuffers = 50
	MaxHistory      = 100

	shellPrompt = "$ "
)

// State is the complete multiplexer state; every call returns a fresh copy
type State struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Sessions      []*Session `json:"sessions"`
	ActiveSession int        `json:"active_session"`
	LastSession   int        `json:"last_session,omitempty"`
	IDs           IDs        `json:"ids"`

	PrefixActive   bool      `json:"prefix_active"`
	PrefixDeadline time.Time `json:"prefix_deadline"`

	CopyMode     CopyMode `json:"copy_mode"`
	MouseMode    bool     `json:"mouse_mode"`
	PasteBuffers []string `json:"paste_buffers,omitempty"`
	Prompt       Prompt   `json:"prompt"`

	Message     string      `json:"message"`
	MessageType MessageType `json:"message_type"`
}

// NewState creates one attached session holding one window with one full-size pane
func NewState(width, height int, now time.Time) *State {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	s := &State{Width: width, Height: height, CopyMode: CopyMode{Forward: true}}
	sess := s.newSession(DefaultSessionName, now)
	sess.Windows[0].Name = DefaultWindowName
	sess.Attached = true
	s.Sessions = []*Session{sess}
	s.ActiveSession = sess.ID
	return s
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	c := *s
	c.Sessions = make([]*Session, len(s.Sessions))
	for i, sess := range s.Sessions {
		c.Sessions[i] = sess.clone()
	}
	c.PasteBuffers = append([]string(nil), s.PasteBuffers...)
	c.CopyMode.Matches = append([]Position(nil), s.CopyMode.Matches...)
	c.Prompt.History = append([]string(nil), s.Prompt.History...)
	return &c
}

// newPane allocates a pane filling r
func (s *State) newPane(r Rect) *Pane {
	id := s.IDs.pane()
	p := &Pane{
		ID:      id,
		Content: []string{shellPrompt},
		Cursor:  Position{Line: 0, Col: len(shellPrompt)},
		Title:   fmt.Sprintf("pane-%d", id),
	}
	p.setRect(r)
	return p
}

// newWindow allocates a window with one pane covering the container
func (s *State) newWindow(name string, index int) *Window {
	p := s.newPane(Rect{Width: s.Width, Height: s.Height})
	return &Window{
		ID:         s.IDs.window(),
		Name:       name,
		Index:      index,
		Panes:      []*Pane{p},
		ActivePane: p.ID,
		Layout:     LayoutEvenHorizontal,
	}
}

func (s *State) newSession(name string, now time.Time) *Session {
	id := s.IDs.session()
	if name == "" {
		name = fmt.Sprintf("%d", id)
	}
	w := s.newWindow("", 0)
	w.Name = fmt.Sprintf("window-%d", w.Index)
	return &Session{
		ID:           id,
		Name:         name,
		Windows:      []*Window{w},
		ActiveWindow: w.ID,
		Created:      now,
	}
}

// session returns the session with id, or nil
func (s *State) session(id int) *Session {
	for _, sess := range s.Sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

func (s *State) sessionIndex(id int) int {
	for i, sess := range s.Sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

// sess returns the active session; a dangling active id is a broken invariant
func (s *State) sess() *Session {
	sess := s.session(s.ActiveSession)
	if sess == nil {
		panic(fmt.Sprintf("mux: active session %d does not exist", s.ActiveSession))
	}
	return sess
}

func (s *State) win() *Window {
	sess := s.sess()
	w := sess.Window(sess.ActiveWindow)
	if w == nil {
		panic(fmt.Sprintf("mux: active window %d does not exist in session %q", sess.ActiveWindow, sess.Name))
	}
	return w
}

func (s *State) pane() *Pane {
	w := s.win()
	p := w.Pane(w.ActivePane)
	if p == nil {
		panic(fmt.Sprintf("mux: active pane %d does not exist in window %q", w.ActivePane, w.Name))
	}
	return p
}

// === Getters ===

// Session returns the active session; callers must not mutate it
func (s *State) Session() *Session {
	return s.sess()
}

// Window returns the active window; callers must not mutate it
func (s *State) Window() *Window {
	return s.win()
}

// Pane returns the active pane; callers must not mutate it
func (s *State) Pane() *Pane {
	return s.pane()
}

// SessionCount returns the number of sessions
func (s *State) SessionCount() int {
	return len(s.Sessions)
}

// WindowCount returns the number of windows in the active session
func (s *State) WindowCount() int {
	return len(s.sess().Windows)
}

// PaneCount returns the number of panes in the active window
func (s *State) PaneCount() int {
	return len(s.win().Panes)
}

// LastMessage returns the most recent status message and its severity
func (s *State) LastMessage() (string, MessageType) {
	return s.Message, s.MessageType
}

// InCopyMode reports whether keys go to copy mode
func (s *State) InCopyMode() bool {
	return s.CopyMode.Enabled
}

// PrefixPending reports whether the prefix key is armed and not yet expired at now
func (s *State) PrefixPending(now time.Time) bool {
	return s.PrefixActive && !now.After(s.PrefixDeadline)
}
