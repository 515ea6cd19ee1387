// @lixen: #focus{control[repeat,dot]}
package vim

import (
	"github.com/lixenwraith/vi-dojo/input"
)

// recordRepeat remembers the last repeatable change; replays never overwrite it
func (c *call) recordRepeat(r Repeat) {
	if c.replaying {
		return
	}
	c.s.Repeat = r
}

// repeatSimple records a special command that replays from its intent alone
func (c *call) repeatSimple(intent *input.Intent) {
	c.recordRepeat(Repeat{Kind: RepeatSimple, Intent: *intent, Special: intent.Special})
}

// repeatOperator records an operator application
func (c *call) repeatOperator(intent *input.Intent) {
	c.recordRepeat(Repeat{Kind: RepeatOperator, Intent: *intent, Operator: intent.Operator, Object: intent.Object})
}

// dotRepeat implements '.'; a typed count replaces the recorded one
func (c *call) dotRepeat(intent *input.Intent) {
	r := c.s.Repeat
	if r.Kind == RepeatNone {
		return
	}
	replay := r.Intent
	if intent.RawCount > 0 {
		replay.Count = intent.RawCount
		replay.RawCount = intent.RawCount
		c.s.Repeat.Intent.Count = replay.Count
		c.s.Repeat.Intent.RawCount = replay.RawCount
	}

	c.replaying = true
	defer func() { c.replaying = false }()

	c.executeIntent(&replay)
	switch r.Kind {
	case RepeatChange, RepeatInsert:
		if c.s.Insert == nil {
			return
		}
		c.typeText(r.Text)
		c.exitInsert()
	}
	c.action("repeat")
}
