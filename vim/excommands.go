// @lixen: #focus{control[excommand,range,substitute]}
package vim

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lineSpan is a resolved ex range; set is false when the command had no range
type lineSpan struct {
	from, to int
	set      bool
}

// exArgs is one parsed ex command
type exArgs struct {
	name string
	bang bool
	arg  string
	span lineSpan
}

// exCommand is one entry of the ex command table
// short is the minimum abbreviation length; ranged commands accept a line range
type exCommand struct {
	name   string
	short  int
	ranged bool
	run    func(c *call, x exArgs)
}

// exCommands is searched in order, so shorter abbreviations must precede longer ones that share a prefix
var exCommands = []exCommand{
	{name: "substitute", short: 1, ranged: true, run: (*call).exSubstitute},
	{name: "set", short: 2, run: (*call).exSet},
	{name: "split", short: 2, run: func(c *call, _ exArgs) { c.info("Would create horizontal split (simulated)") }},
	{name: "write", short: 1, run: (*call).exWrite},
	{name: "wq", short: 2, run: (*call).exWriteQuit},
	{name: "wall", short: 2, run: (*call).exWriteAll},
	{name: "xit", short: 1, run: (*call).exWriteQuit},
	{name: "quit", short: 1, run: (*call).exQuit},
	{name: "qall", short: 2, run: (*call).exQuitAll},
	{name: "edit", short: 1, run: (*call).exEdit},
	{name: "earlier", short: 2, run: func(c *call, x exArgs) { c.earlier(x.arg) }},
	{name: "vsplit", short: 2, run: func(c *call, _ exArgs) { c.info("Would create vertical split (simulated)") }},
	{name: "nohlsearch", short: 3, run: func(c *call, _ exArgs) { c.clearHighlight() }},
	{name: "buffer", short: 1, run: (*call).exBuffer},
	{name: "bnext", short: 2, run: func(c *call, _ exArgs) { c.cycleBuffer(1) }},
	{name: "bprevious", short: 2, run: func(c *call, _ exArgs) { c.cycleBuffer(-1) }},
	{name: "bNext", short: 2, run: func(c *call, _ exArgs) { c.cycleBuffer(-1) }},
	{name: "bdelete", short: 2, run: (*call).exBufferDelete},
	{name: "buffers", short: 7, run: (*call).exList},
	{name: "ls", short: 2, run: (*call).exList},
	{name: "files", short: 5, run: (*call).exList},
	{name: "marks", short: 5, run: func(c *call, _ exArgs) { c.info("%s", c.marksListing()) }},
	{name: "delete", short: 1, ranged: true, run: (*call).exDelete},
	{name: "delmarks", short: 4, run: func(c *call, x exArgs) { c.deleteMarks(x.arg, x.bang) }},
	{name: "display", short: 2, run: (*call).exRegisters},
	{name: "registers", short: 3, run: (*call).exRegisters},
	{name: "redo", short: 3, run: func(c *call, _ exArgs) { c.redo(1) }},
	{name: "yank", short: 1, ranged: true, run: (*call).exYank},
	{name: "join", short: 1, ranged: true, run: (*call).exJoin},
	{name: "undo", short: 1, run: func(c *call, _ exArgs) { c.undo(1) }},
	{name: "undolist", short: 5, run: func(c *call, _ exArgs) { c.info("%s", c.buf().undoList()) }},
	{name: "later", short: 3, run: func(c *call, x exArgs) { c.later(x.arg) }},
	{name: "fold", short: 2, ranged: true, run: func(c *call, x exArgs) { c.createFold(x.span.from, x.span.to) }},
}

// lookupExCommand finds an exact name first, then the first permitted abbreviation
func lookupExCommand(name string) *exCommand {
	for i := range exCommands {
		if exCommands[i].name == name {
			return &exCommands[i]
		}
	}
	for i := range exCommands {
		cmd := &exCommands[i]
		if len(name) >= cmd.short && strings.HasPrefix(cmd.name, name) {
			return cmd
		}
	}
	return nil
}

// exCommand runs one command line; a bare range moves the cursor
func (c *call) exCommand(line string) {
	line = strings.TrimSpace(strings.TrimLeft(line, ": \t"))
	if line == "" {
		return
	}
	c.s.Registers.LastCommand = line
	b := c.buf()

	span, rest, ok := c.parseRange(line)
	if !ok {
		return
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		if span.set {
			c.pushJump()
			b.setCursor(span.to, b.firstNonBlank(span.to))
			c.action("goto_line")
		}
		return
	}

	x := splitExCommand(rest)
	cmd := lookupExCommand(x.name)
	if cmd == nil {
		c.fail("Not an editor command: %s", rest)
		return
	}
	if span.set && !cmd.ranged {
		c.fail("E481: No range allowed")
		return
	}
	if !span.set {
		span.from, span.to = b.Cursor.Line, b.Cursor.Line
	}
	x.span = span
	cmd.run(c, x)
}

// splitExCommand separates the command name, bang and argument
func splitExCommand(rest string) exArgs {
	i := 0
	for i < len(rest) && unicode.IsLetter(rune(rest[i])) {
		i++
	}
	if i == 0 {
		_, size := utf8.DecodeRuneInString(rest)
		i = size
	}
	x := exArgs{name: rest[:i]}
	tail := rest[i:]
	if strings.HasPrefix(tail, "!") {
		x.bang = true
		tail = tail[1:]
	}
	// :s/a/b/ keeps its delimiter; everything else is trimmed
	if x.name == "s" || x.name == "substitute" {
		x.arg = strings.TrimLeft(tail, " ")
	} else {
		x.arg = strings.TrimSpace(tail)
	}
	return x
}

// === Ranges ===

// parseRange reads an optional range prefix: %, N, ., $, 'x, each with +N/-N offsets, joined by ','
func (c *call) parseRange(line string) (lineSpan, string, bool) {
	b := c.buf()
	if strings.HasPrefix(line, "%") {
		return lineSpan{from: 0, to: b.lastLine(), set: true}, line[1:], true
	}

	from, rest, found, ok := c.parseAddress(line)
	if !ok {
		return lineSpan{}, "", false
	}
	if !found {
		return lineSpan{}, line, true
	}
	to := from
	if strings.HasPrefix(rest, ",") {
		var second bool
		to, rest, second, ok = c.parseAddress(rest[1:])
		if !ok {
			return lineSpan{}, "", false
		}
		if !second {
			to = from
		}
	}
	if to < from {
		from, to = to, from
	}
	return lineSpan{from: clamp(from, 0, b.lastLine()), to: clamp(to, 0, b.lastLine()), set: true}, rest, true
}

// parseAddress reads one line address; found is false when s does not start with one
func (c *call) parseAddress(s string) (line int, rest string, found, ok bool) {
	b := c.buf()
	switch {
	case s == "":
		return 0, s, false, true
	case s[0] >= '0' && s[0] <= '9':
		n := 0
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		v, _ := strconv.Atoi(s[:n])
		line, rest = v-1, s[n:]
	case s[0] == '.':
		line, rest = b.Cursor.Line, s[1:]
	case s[0] == '$':
		line, rest = b.lastLine(), s[1:]
	case s[0] == '\'' && len(s) > 1:
		name, size := utf8.DecodeRuneInString(s[1:])
		pos, bufID, set := c.lookupMark(name)
		if !set || bufID != b.ID {
			c.fail("E20: Mark not set")
			return 0, "", false, false
		}
		line, rest = pos.Line, s[1+size:]
	case s[0] == '+' || s[0] == '-':
		line, rest = b.Cursor.Line, s
	default:
		return 0, s, false, true
	}

	for len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		sign := 1
		if rest[0] == '-' {
			sign = -1
		}
		n := 1
		for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
			n++
		}
		delta := 1
		if n > 1 {
			delta, _ = strconv.Atoi(rest[1:n])
		}
		line += sign * delta
		rest = rest[n:]
	}
	return line, rest, true, true
}

// === File and session commands ===

func (c *call) exWrite(x exArgs) {
	b := c.buf()
	if b.Readonly && !x.bang {
		c.fail("E45: 'readonly' option is set (add ! to override)")
		return
	}
	if x.arg != "" {
		b.Filename = x.arg
	}
	if b.Filename == "" {
		c.fail("E32: No file name")
		return
	}
	b.Modified = false
	c.info("\"%s\" written", b.Filename)
	c.action("write")
}

func (c *call) exWriteAll(_ exArgs) {
	n := 0
	for _, b := range c.s.Buffers {
		if b.Modified && b.Filename != "" {
			b.Modified = false
			n++
		}
	}
	c.info("%d buffer(s) written", n)
	c.action("write_all")
}

func (c *call) exQuit(x exArgs) {
	if c.buf().Modified && !x.bang {
		c.fail("E37: No write since last change (add ! to override)")
		return
	}
	c.info("Would quit (simulated)")
	c.res.Quit = true
	c.action("quit")
}

func (c *call) exQuitAll(x exArgs) {
	if !x.bang {
		for _, b := range c.s.Buffers {
			if b.Modified {
				c.fail("E37: No write since last change (add ! to override)")
				return
			}
		}
	}
	c.info("Would quit (simulated)")
	c.res.Quit = true
	c.action("quit")
}

func (c *call) exWriteQuit(x exArgs) {
	b := c.buf()
	if b.Filename == "" && x.arg == "" {
		c.fail("E32: No file name")
		return
	}
	if x.arg != "" {
		b.Filename = x.arg
	}
	b.Modified = false
	c.info("\"%s\" written, would quit (simulated)", b.Filename)
	c.res.Quit = true
	c.action("write_quit")
}

func (c *call) exEdit(x exArgs) {
	if x.arg == "" {
		c.fail("E32: No file name")
		return
	}
	for _, b := range c.s.Buffers {
		if b.Filename == x.arg {
			c.switchBuffer(b.ID)
			c.info("\"%s\" already open", x.arg)
			c.action("edit")
			return
		}
	}
	id := c.s.AddBuffer(x.arg, "")
	c.switchBuffer(id)
	c.info("\"%s\" [New File]", x.arg)
	c.action("edit")
}

func (c *call) exBuffer(x exArgs) {
	if x.arg == "" {
		c.fail("Buffer number or name required")
		return
	}
	b := c.s.findBuffer(x.arg)
	if b == nil {
		c.fail("Buffer not found: %s", x.arg)
		return
	}
	c.switchBuffer(b.ID)
	c.info("\"%s\"", b.DisplayName())
	c.action("buffer_switch")
}

func (c *call) exBufferDelete(x exArgs) {
	if x.arg == "" {
		c.deleteBuffer(x.bang)
		return
	}
	b := c.s.findBuffer(x.arg)
	if b == nil {
		c.fail("E94: No matching buffer for %s", x.arg)
		return
	}
	c.removeBuffer(b.ID, x.bang)
}

func (c *call) exList(_ exArgs) {
	c.info("%s", c.bufferListing())
	c.action("list_buffers")
}

func (c *call) exRegisters(x exArgs) {
	c.info("%s", c.s.registerListing(x.arg))
	c.action("registers")
}

// === Line commands ===

// registerArg splits an optional leading register name from a :d or :y argument
func registerArg(arg string) rune {
	r, _ := utf8.DecodeRuneInString(arg)
	if arg != "" && isWritableRegister(r) {
		return r
	}
	return 0
}

func (x exArgs) lines() TextRange {
	return TextRange{Start: Position{x.span.from, 0}, End: Position{x.span.to, 0}, Linewise: true}
}

func (c *call) exDelete(x exArgs) {
	if c.buf().Readonly {
		c.fail("E45: 'readonly' option is set")
		return
	}
	c.deleteOp(x.lines(), registerArg(x.arg))
}

func (c *call) exYank(x exArgs) {
	b := c.buf()
	saved := b.Cursor
	c.yankOp(x.lines(), registerArg(x.arg))
	b.Cursor = saved
}

func (c *call) exJoin(x exArgs) {
	b := c.buf()
	n := 2
	if x.span.set {
		n = x.span.to - x.span.from + 1
	}
	b.Cursor = Position{x.span.from, 0}
	if !c.join(n, !x.bang) {
		c.fail("E16: Invalid range")
	}
}

// === Substitute ===

// splitDelimited splits s on unescaped delim; an escaped delimiter loses its backslash
func splitDelimited(s string, delim rune) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			if r != delim {
				cur.WriteRune('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == delim:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	return append(parts, cur.String())
}

// expandTemplate converts & and \1..\9 into regexp expansion syntax
func expandTemplate(repl string) string {
	var sb strings.Builder
	rr := []rune(repl)
	for i := 0; i < len(rr); i++ {
		r := rr[i]
		switch {
		case r == '\\' && i+1 < len(rr):
			i++
			switch n := rr[i]; {
			case n >= '0' && n <= '9':
				sb.WriteString("${" + string(n) + "}")
			case n == 't':
				sb.WriteRune('\t')
			case n == '$':
				sb.WriteString("$$")
			default:
				sb.WriteRune(n)
			}
		case r == '&':
			sb.WriteString("${0}")
		case r == '$':
			sb.WriteString("$$")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// substituteLine replaces the first (or every) match in line and returns the count
func substituteLine(re *regexp.Regexp, line, tmpl string, global bool) (string, int) {
	if global {
		n := len(re.FindAllStringIndex(line, -1))
		if n == 0 {
			return line, 0
		}
		return re.ReplaceAllString(line, tmpl), n
	}
	loc := re.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, 0
	}
	dst := re.ExpandString(nil, tmpl, line, loc)
	return line[:loc[0]] + string(dst) + line[loc[1]:], 1
}

// exSubstitute implements :[range]s/pattern/replacement/[gIi]
func (c *call) exSubstitute(x exArgs) {
	b := c.buf()
	if b.Readonly {
		c.fail("E45: 'readonly' option is set")
		return
	}
	if x.arg == "" {
		c.fail("E35: No previous regular expression")
		return
	}
	delim, _ := utf8.DecodeRuneInString(x.arg)
	if unicode.IsLetter(delim) || unicode.IsDigit(delim) || delim == '\\' || delim == '"' || delim == '|' {
		c.fail("E146: Regular expressions can't be delimited by letters")
		return
	}
	parts := splitDelimited(x.arg[utf8.RuneLen(delim):], delim)
	pattern := parts[0]
	repl, flags := "", ""
	if len(parts) > 1 {
		repl = parts[1]
	}
	if len(parts) > 2 {
		flags = strings.TrimSpace(parts[2])
	}
	if pattern == "" {
		pattern = c.s.Search.Pattern
	}
	if pattern == "" {
		c.fail("E35: No previous regular expression")
		return
	}

	global := false
	re := c.s.compile(pattern)
	for _, f := range flags {
		switch f {
		case 'g':
			global = !global
		case 'i':
			re = compilePattern(pattern, true, false)
		case 'I':
			re = compilePattern(pattern, false, false)
		case 'c', 'e', '&':
		default:
			c.fail("E488: Trailing characters: %s", flags)
			return
		}
	}

	tmpl := expandTemplate(repl)
	out := append([]string(nil), b.Lines...)
	total, last := 0, -1
	for l := x.span.from; l <= x.span.to; l++ {
		next, n := substituteLine(re, out[l], tmpl, global)
		if n > 0 {
			out[l] = next
			total += n
			last = l
		}
	}

	c.s.Search.Pattern = pattern
	c.s.Registers.LastSearch = pattern
	if total == 0 {
		c.warn("Pattern not found: %s", pattern)
		return
	}

	b.checkpoint(c.now)
	b.Lines = out
	b.setCursor(last, b.firstNonBlank(last))
	c.recordChange(last, b.Cursor.Col)
	if total == 1 {
		c.info("1 substitution")
	} else {
		c.info("%d substitutions", total)
	}
	c.action("substitute")
}

// === :set ===

// option binds a :set name to one Settings field
type option struct {
	name, short string
	flag        func(*Settings) *bool
	number      func(*Settings) *int
	text        func(*Settings) *string
	min         int
}

var options = []option{
	{name: "number", short: "nu", flag: func(s *Settings) *bool { return &s.Number }},
	{name: "relativenumber", short: "rnu", flag: func(s *Settings) *bool { return &s.RelativeNumber }},
	{name: "wrap", flag: func(s *Settings) *bool { return &s.Wrap }},
	{name: "expandtab", short: "et", flag: func(s *Settings) *bool { return &s.ExpandTab }},
	{name: "autoindent", short: "ai", flag: func(s *Settings) *bool { return &s.AutoIndent }},
	{name: "smartindent", short: "si", flag: func(s *Settings) *bool { return &s.SmartIndent }},
	{name: "ignorecase", short: "ic", flag: func(s *Settings) *bool { return &s.IgnoreCase }},
	{name: "smartcase", short: "scs", flag: func(s *Settings) *bool { return &s.SmartCase }},
	{name: "incsearch", short: "is", flag: func(s *Settings) *bool { return &s.IncSearch }},
	{name: "hlsearch", short: "hls", flag: func(s *Settings) *bool { return &s.HlSearch }},
	{name: "cursorline", short: "cul", flag: func(s *Settings) *bool { return &s.CursorLine }},
	{name: "tabstop", short: "ts", number: func(s *Settings) *int { return &s.TabStop }, min: 1},
	{name: "shiftwidth", short: "sw", number: func(s *Settings) *int { return &s.ShiftWidth }, min: 1},
	{name: "scrolloff", short: "so", number: func(s *Settings) *int { return &s.ScrollOff }},
	{name: "textwidth", short: "tw", number: func(s *Settings) *int { return &s.TextWidth }},
	{name: "lines", number: func(s *Settings) *int { return &s.Lines }, min: 1},
	{name: "clipboard", short: "cb", text: func(s *Settings) *string { return &s.Clipboard }},
}

func lookupOption(name string) *option {
	for i := range options {
		if options[i].name == name || (options[i].short != "" && options[i].short == name) {
			return &options[i]
		}
	}
	return nil
}

// value renders the current value for listings and queries
func (o *option) value(s *Settings) string {
	switch {
	case o.flag != nil:
		if *o.flag(s) {
			return o.name
		}
		return "no" + o.name
	case o.number != nil:
		return o.name + "=" + strconv.Itoa(*o.number(s))
	}
	return o.name + "=" + *o.text(s)
}

// exSet implements :set with opt, noopt, invopt, opt!, opt?, opt=val and opt+=/-= for numbers
func (c *call) exSet(x exArgs) {
	set := &c.s.Settings
	if x.arg == "" || x.arg == "all" {
		vals := make([]string, len(options))
		for i := range options {
			vals[i] = options[i].value(set)
		}
		c.info("%s", strings.Join(vals, "  "))
		return
	}

	var shown []string
	for _, tok := range strings.Fields(x.arg) {
		msg, ok := c.setOption(tok)
		if !ok {
			c.fail("%s", msg)
			return
		}
		if msg != "" {
			shown = append(shown, msg)
		}
	}
	if len(shown) > 0 {
		c.info("%s", strings.Join(shown, "  "))
	}
	c.action("set")
}

// setOption applies one :set token; msg is a query result or an error when ok is false
func (c *call) setOption(tok string) (msg string, ok bool) {
	set := &c.s.Settings
	name, val, assign := tok, "", ""
	for _, op := range []string{"+=", "-=", "="} {
		if i := strings.Index(tok, op); i > 0 {
			name, val, assign = tok[:i], tok[i+len(op):], op
			break
		}
	}

	query := strings.HasSuffix(name, "?")
	toggle := strings.HasSuffix(name, "!")
	name = strings.TrimRight(name, "?!")
	negate, invert := false, false
	o := lookupOption(name)
	if o == nil && strings.HasPrefix(name, "no") {
		o, negate = lookupOption(name[2:]), true
	}
	if o == nil && strings.HasPrefix(name, "inv") {
		o, invert = lookupOption(name[3:]), true
	}
	if o == nil {
		return "E518: Unknown option: " + name, false
	}

	switch {
	case query:
		return o.value(set), true

	case o.flag != nil:
		if assign != "" {
			return "E474: Invalid argument: " + tok, false
		}
		p := o.flag(set)
		switch {
		case toggle || invert:
			*p = !*p
		default:
			*p = !negate
		}
		if o.name == "hlsearch" && !*p {
			c.s.Search.Highlight = false
		}
		return "", true

	case negate || invert || toggle:
		return "E474: Invalid argument: " + tok, false

	case assign == "":
		return o.value(set), true

	case o.number != nil:
		n, err := strconv.Atoi(val)
		if err != nil {
			return "E521: Number required after =: " + tok, false
		}
		p := o.number(set)
		switch assign {
		case "+=":
			n = *p + n
		case "-=":
			n = *p - n
		}
		if n < o.min {
			return "E487: Argument must be positive: " + tok, false
		}
		*p = n
		return "", true
	}

	switch val {
	case "", "unnamed", "unnamedplus":
		*o.text(set) = val
		return "", true
	}
	return "E474: Invalid argument: " + tok, false
}
