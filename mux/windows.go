// @lixen: #focus{lifecycle[window]}
// @lixen: #interact{state[session,window]}
package mux

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// NewWindow appends a window and activates it; an empty name becomes window-N
func NewWindow(s *State, name string) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.newWindow(name) })
}

// KillWindow closes the active window
func KillWindow(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).killWindow)
}

// RenameWindow renames the active window
func RenameWindow(s *State, name string) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.renameWindow(name) })
}

// MoveWindow moves the active window to index, clamped to the window range
func MoveWindow(s *State, index int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.moveWindow(index) })
}

// SelectWindow activates the window at index
func SelectWindow(s *State, index int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.selectWindow(index) })
}

// NextWindow activates the following window, wrapping
func NextWindow(s *State) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.stepWindow(1) })
}

// PreviousWindow activates the preceding window, wrapping
func PreviousWindow(s *State) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.stepWindow(-1) })
}

// LastWindow returns to the previously active window
func LastWindow(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).lastWindow)
}

// FindWindow activates the first window whose name contains query, falling back to a fuzzy match
func FindWindow(s *State, query string) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.findWindow(query) })
}

func (c *call) newWindow(name string) {
	sess := c.s.sess()
	idx := len(sess.Windows)
	if name == "" {
		name = windowName(sess, idx)
	}
	w := c.s.newWindow(name, idx)
	sess.Windows = append(sess.Windows, w)
	sess.LastActiveWindow = sess.ActiveWindow
	sess.ActiveWindow = w.ID
	c.info("Created window %d: %s", idx, name)
}

// windowName returns window-N for the first N from n that no window in sess uses
func windowName(sess *Session, n int) string {
	for {
		name := fmt.Sprintf("window-%d", n)
		if !slices.ContainsFunc(sess.Windows, func(w *Window) bool { return w.Name == name }) {
			return name
		}
		n++
	}
}

func (c *call) killWindow() {
	sess := c.s.sess()
	if len(sess.Windows) == 1 {
		c.fail("Cannot kill the only window")
		return
	}
	w := c.s.win()
	c.removeWindow(sess, w.ID)
	c.info("Killed window %d: %s", w.Index, w.Name)
}

// removeWindow drops id and promotes the window now at its position, or the new last one
func (c *call) removeWindow(sess *Session, id int) {
	idx := sess.windowIndex(id)
	sess.Windows = append(sess.Windows[:idx], sess.Windows[idx+1:]...)
	sess.reindex()
	if sess.LastActiveWindow == id {
		sess.LastActiveWindow = 0
	}
	if sess.ActiveWindow == id {
		sess.ActiveWindow = sess.Windows[min(idx, len(sess.Windows)-1)].ID
	}
}

func (c *call) renameWindow(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		c.fail("Window name cannot be empty")
		return
	}
	c.s.win().Name = name
	c.info("Renamed window to: %s", name)
}

func (c *call) moveWindow(target int) {
	sess := c.s.sess()
	w := c.s.win()
	target = max(0, min(target, len(sess.Windows)-1))
	if target == w.Index {
		c.warn("Window already at target position")
		return
	}
	idx := w.Index
	sess.Windows = append(sess.Windows[:idx], sess.Windows[idx+1:]...)
	sess.Windows = append(sess.Windows[:target], append([]*Window{w}, sess.Windows[target:]...)...)
	sess.reindex()
	c.info("Moved window to index %d", target)
}

func (c *call) selectWindow(index int) {
	sess := c.s.sess()
	if index < 0 || index >= len(sess.Windows) {
		c.fail("Window %d not found", index)
		return
	}
	w := sess.Windows[index]
	if w.ID == sess.ActiveWindow {
		c.warn("Already on window %d", index)
		return
	}
	sess.LastActiveWindow = sess.ActiveWindow
	sess.ActiveWindow = w.ID
	c.info("Switched to window %d: %s", index, w.Name)
}

func (c *call) stepWindow(step int) {
	sess := c.s.sess()
	n := len(sess.Windows)
	idx := c.s.win().Index
	c.selectWindow(((idx+step)%n + n) % n)
}

func (c *call) lastWindow() {
	sess := c.s.sess()
	if sess.LastActiveWindow == 0 {
		c.warn("No last window")
		return
	}
	w := sess.Window(sess.LastActiveWindow)
	if w == nil {
		c.warn("Last window no longer exists")
		return
	}
	c.selectWindow(w.Index)
}

func (c *call) findWindow(query string) {
	sess := c.s.sess()
	lower := strings.ToLower(query)
	names := make([]string, len(sess.Windows))
	for i, w := range sess.Windows {
		if strings.Contains(strings.ToLower(w.Name), lower) {
			c.selectWindow(w.Index)
			return
		}
		names[i] = w.Name
	}
	if matches := fuzzy.Find(query, names); len(matches) > 0 {
		c.selectWindow(sess.Windows[matches[0].Index].Index)
		return
	}
	c.fail("No window matching: %s", query)
}

// listWindows renders one line per window of the active session
func (c *call) listWindows() {
	sess := c.s.sess()
	lines := make([]string, len(sess.Windows))
	for i, w := range sess.Windows {
		flag := ""
		switch w.ID {
		case sess.ActiveWindow:
			flag = "*"
		case sess.LastActiveWindow:
			flag = "-"
		}
		zoom := ""
		if w.Zoomed() != nil {
			zoom = " Z"
		}
		lines[i] = fmt.Sprintf("%d: %s%s (%d panes) [%s]%s", w.Index, w.Name, flag, len(w.Panes), w.Layout, zoom)
	}
	c.output(strings.Join(lines, "\n"))
	c.info("%d windows", len(sess.Windows))
}
