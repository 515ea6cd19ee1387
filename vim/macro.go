// @lixen: #focus{control[macro,record,replay]}
package vim

import (
	"unicode"

	"github.com/lixenwraith/vi-dojo/input"
)

// maxMacroDepth bounds nested playback, including a macro that invokes itself
const maxMacroDepth = 100

func isMacroRegister(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// startRecording implements q{reg}; an uppercase name appends on stop
func (c *call) startRecording(name rune) {
	if !isMacroRegister(name) {
		c.fail("E354: Invalid register name: '%c'", name)
		return
	}
	c.s.Recording = name
	c.s.RecordKeys = ""
	c.info("recording @%c", unicode.ToLower(name))
	c.action("macro_record")
}

// stopRecording stores the captured keys as a charwise register
func (c *call) stopRecording() {
	name := c.s.Recording
	if name == 0 {
		return
	}
	keys := c.s.RecordKeys
	lower := unicode.ToLower(name)
	if name != lower {
		keys = c.s.Registers.Named[lower].Content + keys
	}
	c.s.Registers.Named[lower] = Register{Content: keys, Kind: RegisterChar, Time: c.now}
	c.s.Recording = 0
	c.s.RecordKeys = ""
	c.action("macro_stop")
}

// recordKey appends one key to the recording; keys replayed by playback are not captured
func (c *call) recordKey(key input.Key) {
	if c.s.Recording == 0 || c.depth > 0 {
		return
	}
	c.s.RecordKeys += input.EncodeKey(key)
}

// stopsRecording reports whether key is the bare q that ends a recording
func (c *call) stopsRecording(key input.Key) bool {
	if c.s.Recording == 0 || !key.Is('q') || !c.s.Machine.Idle() {
		return false
	}
	m := c.buf().Mode
	return m == ModeNormal || m.IsVisual()
}

// playMacro implements [count]@{reg}, @@ and @:
func (c *call) playMacro(name rune, count int) {
	count = max(count, 1)

	if name == ':' {
		line := c.s.Registers.LastCommand
		if line == "" {
			c.fail("E30: No previous command line")
			return
		}
		for i := 0; i < count && !c.failed; i++ {
			c.exCommand(line)
		}
		return
	}

	if name == '@' {
		if c.s.LastMacro == 0 {
			c.fail("E748: No previously used register")
			return
		}
		name = c.s.LastMacro
	}
	if !isMacroRegister(name) {
		c.fail("E354: Invalid register name: '%c'", name)
		return
	}
	lower := unicode.ToLower(name)
	content := c.s.Registers.Named[lower].Content
	if content == "" {
		c.fail("E354: Invalid register name: '%c'", name)
		return
	}
	if c.depth >= maxMacroDepth {
		c.fail("E169: Command too recursive")
		return
	}

	c.s.LastMacro = lower
	keys := input.ParseKeys(content)

	c.depth++
	defer func() { c.depth-- }()
	for i := 0; i < count && !c.failed; i++ {
		for _, k := range keys {
			c.dispatch(k)
			if c.failed {
				break
			}
		}
	}
	if !c.failed {
		c.action("macro_play")
	}
}
