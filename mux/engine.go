// @lixen: #focus{control[engine,dispatch,prefix]}
// @lixen: #interact{state[prompt,copymode]}
package mux

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-dojo/input"
)

// Engine executes keys and commands against multiplexer state
// It holds only configuration; all mutable data lives in State
type Engine struct {
	prefix        input.Key
	prefixTimeout time.Duration
	resizeStep    int
}

// Option configures an Engine
type Option func(*Engine)

// WithPrefix sets the prefix key and how long it stays armed
func WithPrefix(key input.Key, timeout time.Duration) Option {
	return func(e *Engine) {
		if key.Name != input.KeyNone {
			e.prefix = key
		}
		if timeout > 0 {
			e.prefixTimeout = timeout
		}
	}
}

// WithResizeStep sets the amount moved by Alt-arrow resizes
func WithResizeStep(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.resizeStep = n
		}
	}
}

// NewEngine creates an engine with Ctrl-b as prefix
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		prefix:        input.CtrlKey('b'),
		prefixTimeout: DefaultPrefixTimeout,
		resizeStep:    DefaultResizeStep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prefix returns the configured prefix key
func (e *Engine) Prefix() input.Key {
	return e.prefix
}

// HandleKey processes one key and returns the new state; s is never modified
func (e *Engine) HandleKey(s *State, key input.Key, now time.Time) (*State, Result) {
	c := e.begin(s, now)
	c.dispatch(key)
	return c.finish()
}

// HandleKeys feeds keys in order; the result is that of the last key, with Detached sticky
func (e *Engine) HandleKeys(s *State, keys []input.Key, now time.Time) (*State, Result) {
	var res Result
	detached := false
	for _, k := range keys {
		s, res = e.HandleKey(s, k, now)
		detached = detached || res.Detached
	}
	res.Detached = detached
	return s, res
}

// Execute runs one command line as if typed at the ':' prompt
func (e *Engine) Execute(s *State, line string, now time.Time) (*State, Result) {
	c := e.begin(s, now)
	c.execute(line)
	return c.finish()
}

// === Call context ===

// call carries one invocation over a private copy of the state
type call struct {
	e   *Engine
	s   *State
	now time.Time
	res Result
}

var defaultEngine = NewEngine()

// zeroTime stands in for operations that never read the clock
var zeroTime time.Time

func (e *Engine) begin(s *State, now time.Time) *call {
	ns := s.Clone()
	ns.Message = ""
	ns.MessageType = MessageInfo
	return &call{e: e, s: ns, now: now}
}

// finish drops copy mode once focus has left the pane it was browsing
func (c *call) finish() (*State, Result) {
	if cm := &c.s.CopyMode; cm.Enabled && cm.Pane != c.s.pane().ID {
		c.s.CopyMode = CopyMode{Forward: true}
	}
	return c.s, c.res
}

// apply runs fn as a standalone operation with the default engine
func apply(s *State, now time.Time, fn func(*call)) (*State, Result) {
	c := defaultEngine.begin(s, now)
	fn(c)
	return c.finish()
}

func (c *call) message(t MessageType, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.s.Message, c.s.MessageType = msg, t
	c.res.Message, c.res.Type = msg, t
}

func (c *call) info(format string, args ...any) {
	c.message(MessageInfo, format, args...)
}

func (c *call) warn(format string, args ...any) {
	c.message(MessageWarning, format, args...)
}

func (c *call) fail(format string, args ...any) {
	c.message(MessageError, format, args...)
}

func (c *call) output(text string) {
	c.res.Output = text
}

// === Dispatch ===

// dispatch routes one key: prompt first, then prefix, then copy mode, then the pane
func (c *call) dispatch(key input.Key) {
	key.Shift = false
	if c.s.Prompt.Active {
		c.promptKey(key)
		return
	}

	if c.s.PrefixActive {
		c.s.PrefixActive = false
		if !c.now.After(c.s.PrefixDeadline) {
			c.prefixed(key)
			return
		}
	}

	if key == c.e.prefix {
		c.s.PrefixActive = true
		c.s.PrefixDeadline = c.now.Add(c.e.prefixTimeout)
		return
	}

	if c.s.CopyMode.Enabled {
		c.copyKey(key)
		return
	}
	c.typeKey(key)
}
