// @lixen: #focus{lifecycle[session]}
// @lixen: #interact{state[session]}
package mux

import (
	"fmt"
	"strings"
	"time"
)

// NewSession creates a session and attaches to it; an empty name takes the session id
func NewSession(s *State, name string, now time.Time) (*State, Result) {
	return apply(s, now, func(c *call) { c.newSession(name) })
}

// RenameSession renames the active session; names are unique
func RenameSession(s *State, name string) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.renameSession(name) })
}

// ListSessions renders every session into Result.Output
func ListSessions(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).listSessions)
}

// NextSession attaches to the following session, wrapping
func NextSession(s *State) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.stepSession(1) })
}

// PreviousSession attaches to the preceding session, wrapping
func PreviousSession(s *State) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.stepSession(-1) })
}

// LastSession returns to the previously attached session
func LastSession(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).lastSession)
}

// SwitchSession attaches to the session with id
func SwitchSession(s *State, id int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.switchSession(id) })
}

// Detach marks the active session detached and reports it in Result.Detached
func Detach(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).detach)
}

// Attach re-attaches the active session
func Attach(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).attach)
}

// KillSession closes the active session
func KillSession(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).killSession)
}

func (c *call) sessionNamed(name string) *Session {
	for _, sess := range c.s.Sessions {
		if sess.Name == name {
			return sess
		}
	}
	return nil
}

// attachTo makes id the only attached session
func (c *call) attachTo(id int) {
	if c.s.ActiveSession != id {
		c.s.LastSession = c.s.ActiveSession
		c.s.ActiveSession = id
	}
	for _, sess := range c.s.Sessions {
		sess.Attached = sess.ID == id
	}
	c.s.CopyMode = CopyMode{Forward: true}
}

func (c *call) newSession(name string) {
	name = strings.TrimSpace(name)
	if name != "" && c.sessionNamed(name) != nil {
		c.fail("duplicate session: %s", name)
		return
	}
	sess := c.s.newSession(name, c.now)
	c.s.Sessions = append(c.s.Sessions, sess)
	c.attachTo(sess.ID)
	c.info("Created session %q", sess.Name)
}

func (c *call) renameSession(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		c.fail("Session name cannot be empty")
		return
	}
	sess := c.s.sess()
	if other := c.sessionNamed(name); other != nil && other.ID != sess.ID {
		c.fail("Session name %q already exists", name)
		return
	}
	old := sess.Name
	sess.Name = name
	c.info("Renamed session %q to %q", old, name)
}

func (c *call) listSessions() {
	lines := make([]string, len(c.s.Sessions))
	for i, sess := range c.s.Sessions {
		line := fmt.Sprintf("%s: %d windows (created %s)", sess.Name, len(sess.Windows), sess.Created.Format(time.ANSIC))
		if sess.Attached {
			line += " (attached)"
		}
		lines[i] = line
	}
	c.output(strings.Join(lines, "\n"))
	c.info("%d sessions", len(c.s.Sessions))
}

func (c *call) stepSession(step int) {
	n := len(c.s.Sessions)
	if n <= 1 {
		if step > 0 {
			c.warn("No next session")
		} else {
			c.warn("No previous session")
		}
		return
	}
	idx := c.s.sessionIndex(c.s.ActiveSession)
	next := c.s.Sessions[((idx+step)%n+n)%n]
	c.attachTo(next.ID)
	c.info("Switched to session %q", next.Name)
}

func (c *call) lastSession() {
	if c.s.LastSession == 0 {
		c.warn("No last session")
		return
	}
	sess := c.s.session(c.s.LastSession)
	if sess == nil {
		c.fail("Last session no longer exists")
		return
	}
	c.attachTo(sess.ID)
	c.info("Switched to session %q", sess.Name)
}

func (c *call) switchSession(id int) {
	sess := c.s.session(id)
	if sess == nil {
		c.fail("Session not found")
		return
	}
	if id == c.s.ActiveSession {
		c.warn("Already in this session")
		return
	}
	c.attachTo(id)
	c.info("Switched to session %q", sess.Name)
}

func (c *call) detach() {
	sess := c.s.sess()
	sess.Attached = false
	c.s.PrefixActive = false
	c.res.Detached = true
	c.info("[detached (from session %s)]", sess.Name)
}

func (c *call) attach() {
	c.attachTo(c.s.ActiveSession)
	c.info("Attached to session %q", c.s.sess().Name)
}

func (c *call) killSession() {
	if len(c.s.Sessions) == 1 {
		c.fail("Cannot kill the last session")
		return
	}
	sess := c.s.sess()
	idx := c.s.sessionIndex(sess.ID)
	c.s.Sessions = append(c.s.Sessions[:idx], c.s.Sessions[idx+1:]...)
	next := c.s.Sessions[0].ID
	if c.s.LastSession == sess.ID || c.s.LastSession == next {
		c.s.LastSession = 0
	}
	c.s.ActiveSession = next
	for _, o := range c.s.Sessions {
		o.Attached = o.ID == next
	}
	c.s.CopyMode = CopyMode{Forward: true}
	c.info("Killed session %q", sess.Name)
}
