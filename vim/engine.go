// @lixen: #focus{control[engine,dispatch,intent]}
// @lixen: #interact{state[buffer,register,search,visual]}
package vim

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-dojo/input"
)

// Engine executes keys against editor state
// It owns the look-up tables and is safe to share; all mutable data lives in State
type Engine struct {
	motions     map[input.MotionOp]MotionFunc
	charMotions map[input.MotionOp]CharMotionFunc
	objects     map[input.TextObjectOp]TextObjectFunc

	keytable      *input.KeyTable
	leader        input.Key
	leaderTimeout time.Duration
	leaderTree    []LeaderMapping
}

// Option configures an Engine
type Option func(*Engine)

// WithKeyTable replaces the default key bindings
func WithKeyTable(kt *input.KeyTable) Option {
	return func(e *Engine) {
		if kt != nil {
			e.keytable = kt
		}
	}
}

// WithLeader sets the leader key and how long a sequence waits for its next key
func WithLeader(key input.Key, timeout time.Duration) Option {
	return func(e *Engine) {
		e.leader = key
		if timeout > 0 {
			e.leaderTimeout = timeout
		}
	}
}

// WithLeaderTree replaces the leader mappings
func WithLeaderTree(tree []LeaderMapping) Option {
	return func(e *Engine) {
		e.leaderTree = tree
	}
}

// NewEngine creates an engine with the default tables
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		motions: map[input.MotionOp]MotionFunc{
			input.MotionLeft:           MotionLeft,
			input.MotionRight:          MotionRight,
			input.MotionUp:             MotionUp,
			input.MotionDown:           MotionDown,
			input.MotionWordForward:    MotionWordForward,
			input.MotionWORDForward:    MotionWORDForward,
			input.MotionWordBack:       MotionWordBack,
			input.MotionWORDBack:       MotionWORDBack,
			input.MotionWordEnd:        MotionWordEnd,
			input.MotionWORDEnd:        MotionWORDEnd,
			input.MotionWordEndBack:    MotionWordEndBack,
			input.MotionWORDEndBack:    MotionWORDEndBack,
			input.MotionLineStart:      MotionLineStart,
			input.MotionLineEnd:        MotionLineEnd,
			input.MotionFirstNonWS:     MotionFirstNonWS,
			input.MotionLineFirstNonWS: MotionLineFirstNonWS,
			input.MotionNextLineStart:  MotionNextLineStart,
			input.MotionPrevLineStart:  MotionPrevLineStart,
			input.MotionColumn:         MotionColumn,
			input.MotionFileStart:      MotionFileStart,
			input.MotionFileEnd:        MotionFileEnd,
			input.MotionParaBack:       MotionParaBack,
			input.MotionParaForward:    MotionParaForward,
			input.MotionMatchBracket:   MotionMatchBracket,
			input.MotionFoldStart:      MotionFoldStart,
			input.MotionFoldEnd:        MotionFoldEnd,
			input.MotionFoldNext:       MotionFoldNext,
			input.MotionFoldPrev:       MotionFoldPrev,
		},
		charMotions: map[input.MotionOp]CharMotionFunc{
			input.MotionFindForward: MotionFindForward,
			input.MotionFindBack:    MotionFindBack,
			input.MotionTillForward: MotionTillForward,
			input.MotionTillBack:    MotionTillBack,
		},
		objects:       defaultTextObjects(),
		keytable:      input.DefaultKeyTable(),
		leader:        input.RuneKey(' '),
		leaderTimeout: DefaultLeaderTimeout,
		leaderTree:    DefaultLeaderTree(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LeaderTree returns the active leader mappings
func (e *Engine) LeaderTree() []LeaderMapping {
	return e.leaderTree
}

// HandleKey processes one key and returns the new state; s is never modified
func (e *Engine) HandleKey(s *State, key input.Key, now time.Time) (*State, Result) {
	c := e.begin(s, now)
	c.dispatch(key)
	return c.finish()
}

// HandleKeys feeds keys in order; the result is that of the last key, with Quit sticky
func (e *Engine) HandleKeys(s *State, keys []input.Key, now time.Time) (*State, Result) {
	var res Result
	quit := false
	for _, k := range keys {
		s, res = e.HandleKey(s, k, now)
		quit = quit || res.Quit
	}
	res.Quit = quit
	return s, res
}

// ExecuteCommand runs one ex command line as if typed after ':'
func (e *Engine) ExecuteCommand(s *State, line string, now time.Time) (*State, Result) {
	c := e.begin(s, now)
	c.exCommand(line)
	return c.finish()
}

// === Call context ===

// call carries one HandleKey invocation over a private copy of the state
type call struct {
	e   *Engine
	s   *State
	now time.Time
	res Result

	depth     int  // macro nesting
	replaying bool // dot-repeat in progress
	failed    bool // an error was reported; aborts macro playback
}

func (e *Engine) begin(s *State, now time.Time) *call {
	ns := s.Clone()
	ns.Message = ""
	ns.MessageType = MessageInfo
	return &call{e: e, s: ns, now: now}
}

func (c *call) finish() (*State, Result) {
	c.followCursor()
	return c.s, c.res
}

func (c *call) buf() *Buffer {
	return c.s.buf()
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
	c.failed = true
}

func (c *call) action(name string) {
	c.res.Action = name
}

// store writes the register bank and forwards any clipboard request to the result
func (c *call) store(w registerWrite) {
	if clip := c.s.store(w, c.now); clip != nil {
		c.res.Clipboard = clip
	}
}

// === Dispatch ===

// dispatch routes one key by mode; macro playback re-enters here for every replayed key
func (c *call) dispatch(key input.Key) {
	if c.stopsRecording(key) {
		c.stopRecording()
		return
	}
	c.recordKey(key)

	b := c.buf()
	if c.s.Leader.Active {
		if c.leaderKey(key) {
			return
		}
	} else if b.Mode == ModeNormal && c.s.Machine.Idle() && key == c.e.leader && len(c.e.leaderTree) > 0 {
		c.startLeader()
		return
	}

	switch b.Mode {
	case ModeInsert, ModeReplace:
		c.insertKey(key)
	case ModeCommand:
		c.commandKey(key)
	case ModeSearch:
		c.searchKey(key)
	default:
		c.normalKey(key)
	}
}

// normalKey feeds the parser and executes a completed intent
func (c *call) normalKey(key input.Key) {
	mode := input.ModeNormal
	if c.s.Visual != nil {
		mode = input.ModeVisual
	}
	c.s.Machine.SetMode(mode)
	intent := c.s.Machine.Process(c.e.keytable, key)
	if intent == nil {
		return
	}
	c.executeIntent(intent)
}

// executeIntent applies a parsed intent
func (c *call) executeIntent(intent *input.Intent) {
	visual := c.s.Visual != nil

	switch intent.Type {
	case input.IntentEscape:
		c.escape()

	case input.IntentMotion, input.IntentCharMotion:
		c.moveCursor(intent)

	case input.IntentOperatorMotion, input.IntentOperatorCharMotion:
		c.operatorMotion(intent)

	case input.IntentOperatorLine:
		c.applyRepeatable(intent, lineRange(c.buf(), intent.Count))

	case input.IntentOperatorTextObject:
		fn, ok := c.e.objects[intent.Object]
		if !ok {
			return
		}
		r, ok := fn(c.buf(), intent.Count, intent.Inner)
		if !ok {
			return
		}
		c.applyRepeatable(intent, r)

	case input.IntentOperatorVisual:
		if visual {
			c.visualOperator(intent)
		}

	case input.IntentTextObject:
		if visual {
			c.visualObject(intent)
		}

	case input.IntentSpecial:
		c.executeSpecial(intent)

	case input.IntentReplaceChar:
		if visual {
			c.visualReplace(intent.Char)
			return
		}
		if c.buf().Readonly {
			c.fail("E45: 'readonly' option is set")
			return
		}
		if c.replaceChars(intent.Char, intent.Count) {
			c.repeatSimple(intent)
		}

	case input.IntentModeSwitch:
		c.modeSwitch(intent)

	case input.IntentMacroRecord:
		c.startRecording(intent.Char)

	case input.IntentMacroPlay:
		c.playMacro(intent.Char, intent.Count)

	case input.IntentMarkSet:
		c.setMark(intent.Char)
	}
}

// escape cancels the visual selection and any leader sequence
func (c *call) escape() {
	if c.s.Visual != nil {
		c.exitVisual()
	}
	c.s.Leader = LeaderState{}
	c.action("escape")
}

// === Motions ===

// isJump reports whether a motion records the jumplist before moving
func isJump(m input.MotionOp) bool {
	switch m {
	case input.MotionFileStart, input.MotionFileEnd, input.MotionMatchBracket,
		input.MotionSearchNext, input.MotionSearchPrev, input.MotionMarkLine, input.MotionMarkExact,
		input.MotionParaBack, input.MotionParaForward,
		input.MotionScreenTop, input.MotionScreenMid, input.MotionScreenBottom:
		return true
	}
	return false
}

// resolveMotion computes a motion target; the cursor is left in place
func (c *call) resolveMotion(intent *input.Intent, operator bool) MotionResult {
	b := c.buf()
	count := max(intent.Count, 1)
	lines := c.s.Settings.Lines

	switch m := intent.Motion; m {
	case input.MotionFileStart, input.MotionFileEnd:
		return c.e.motions[m](b, intent.RawCount)
	case input.MotionScreenTop:
		return screenLine(b, lines, screenTop, count)
	case input.MotionScreenMid:
		return screenLine(b, lines, screenMid, count)
	case input.MotionScreenBottom:
		return screenLine(b, lines, screenBottom, count)
	case input.MotionSearchNext, input.MotionSearchPrev:
		return c.searchMotion(count, m == input.MotionSearchPrev)
	case input.MotionMarkLine, input.MotionMarkExact:
		return c.markMotion(intent.Char, m == input.MotionMarkExact, operator)
	case input.MotionRepeatFind, input.MotionRepeatFindReverse:
		return c.repeatFind(count, m == input.MotionRepeatFindReverse)
	case input.MotionFindForward, input.MotionFindBack, input.MotionTillForward, input.MotionTillBack:
		c.s.LastFind = &FindMotion{Motion: m, Char: intent.Char}
		return c.e.charMotions[m](b, count, intent.Char)
	case input.MotionFoldNext, input.MotionFoldPrev:
		res := c.e.motions[m](b, count)
		if !res.Valid {
			c.warn("No more folds")
		}
		return res
	case input.MotionFoldStart, input.MotionFoldEnd:
		res := c.e.motions[m](b, count)
		if !res.Valid {
			c.warn("Not in a fold")
		}
		return res
	}

	fn, ok := c.e.motions[intent.Motion]
	if !ok {
		return MotionResult{}
	}
	return fn(b, count)
}

var reversedFind = map[input.MotionOp]input.MotionOp{
	input.MotionFindForward: input.MotionFindBack,
	input.MotionFindBack:    input.MotionFindForward,
	input.MotionTillForward: input.MotionTillBack,
	input.MotionTillBack:    input.MotionTillForward,
}

// repeatFind implements ; and ,
// A repeated till starts one column further so it does not stick in front of its target
func (c *call) repeatFind(count int, reverse bool) MotionResult {
	lf := c.s.LastFind
	if lf == nil {
		return MotionResult{}
	}
	m := lf.Motion
	if reverse {
		m = reversedFind[m]
	}
	b := c.buf()
	saved := b.Cursor
	switch m {
	case input.MotionTillForward:
		b.Cursor.Col++
	case input.MotionTillBack:
		b.Cursor.Col--
	}
	res := c.e.charMotions[m](b, count, lf.Char)
	b.Cursor = saved
	return res
}

// moveCursor applies a motion in normal or visual mode
func (c *call) moveCursor(intent *input.Intent) {
	before := c.s.Active
	b := c.buf()
	pos := b.Cursor
	res := c.resolveMotion(intent, false)
	if !res.Valid {
		return
	}
	if isJump(intent.Motion) && c.s.Active == before {
		b.Cursor = pos
		c.pushJump()
	}
	b = c.buf()
	b.setCursor(res.Line, res.Col)
	c.followHead()
	c.action("motion")
}

// operatorMotion applies an operator over the range a motion covers
func (c *call) operatorMotion(intent *input.Intent) {
	b := c.buf()
	cur := b.Cursor
	count := max(intent.Count, 1)
	res := c.resolveMotion(intent, true)
	if !res.Valid {
		return
	}
	wordMotion := intent.Motion == input.MotionWordForward || intent.Motion == input.MotionWORDForward
	bigWord := intent.Motion == input.MotionWORDForward

	var r TextRange
	switch {
	case intent.Motion == input.MotionRight:
		r = charRange(cur.Line, cur.Col, min(cur.Col+count, b.lineLen(cur.Line)))

	case wordMotion && intent.Operator == input.OperatorChange && !isSpace(b.charAt(cur.Line, cur.Col)) && b.lineLen(cur.Line) > 0:
		// cw changes to the end of the word, like ce
		w := newTextWalker(b)
		if w.isWordEnd(cur, bigWord) && count == 1 {
			r = charRange(cur.Line, cur.Col, cur.Col+1)
			break
		}
		n := count
		if w.isWordEnd(cur, bigWord) {
			n--
		}
		r = rangeFromMotion(b, wordEnd(b, n, bigWord))

	case wordMotion && res.Line > cur.Line:
		// The last word of a line ends the range at the line end
		end := res.Line - 1
		if b.lineLen(res.Line) > 0 && res.Col > b.firstNonBlank(res.Line) {
			end = res.Line
		}
		if end == res.Line {
			r = rangeFromMotion(b, res)
		} else {
			r = TextRange{Start: cur, End: Position{end, b.lineLen(end)}}
		}

	default:
		r = rangeFromMotion(b, res)
		if res.Type == RangeChar && res.Style == StyleExclusive {
			r = exclusiveAdjust(b, r)
		}
	}
	c.applyRepeatable(intent, r)
}

// applyRepeatable runs an operator from normal mode and records it for '.'
// change records itself when its insert session ends
func (c *call) applyRepeatable(intent *input.Intent, r TextRange) {
	c.applyOperator(intent.Operator, r, intent)
	if c.failed {
		return
	}
	switch intent.Operator {
	case input.OperatorYank, input.OperatorChange, input.OperatorFold:
		return
	}
	c.repeatOperator(intent)
}

// === Mode switches ===

func (c *call) modeSwitch(intent *input.Intent) {
	b := c.buf()
	visual := c.s.Visual != nil

	switch t := intent.ModeTarget; t {
	case input.ModeTargetVisual, input.ModeTargetVisualLine, input.ModeTargetVisualBlock:
		c.enterVisual(selectionKind(t))

	case input.ModeTargetCommand:
		initial := ""
		if visual {
			c.exitVisual()
			initial = "'<,'>"
		}
		c.beginCommand(initial)

	case input.ModeTargetSearchForward, input.ModeTargetSearchBackward:
		if visual {
			c.exitVisual()
		}
		c.beginSearch(t == input.ModeTargetSearchForward)

	case input.ModeTargetInsertLineStart, input.ModeTargetAppendLineEnd:
		if visual {
			c.visualInsert(t == input.ModeTargetAppendLineEnd)
			return
		}
		c.startInsert(intent)

	case input.ModeTargetInsertLastPos:
		if b.LastInsert == nil {
			c.fail("No previous insert position")
			return
		}
		c.startInsert(intent)

	default:
		if visual {
			c.exitVisual()
		}
		c.startInsert(intent)
	}
}

// === Special commands ===

// mutating specials are refused on readonly buffers
var mutating = map[input.SpecialOp]bool{
	input.SpecialDeleteChar:      true,
	input.SpecialDeleteCharBack:  true,
	input.SpecialDeleteToEnd:     true,
	input.SpecialChangeToEnd:     true,
	input.SpecialSubstituteChar:  true,
	input.SpecialSubstituteLine:  true,
	input.SpecialPasteAfter:      true,
	input.SpecialPasteBefore:     true,
	input.SpecialPasteAfterMove:  true,
	input.SpecialPasteBeforeMove: true,
	input.SpecialJoin:            true,
	input.SpecialJoinNoSpace:     true,
	input.SpecialToggleCaseChar:  true,
	input.SpecialUndo:            true,
	input.SpecialRedo:            true,
	input.SpecialUndoLine:        true,
}

// toLineEnd covers the cursor to the end of the line count-1 lines below
func toLineEnd(b *Buffer, count int) TextRange {
	end := min(b.Cursor.Line+max(count, 1)-1, b.lastLine())
	return TextRange{Start: b.Cursor, End: Position{end, b.lineLen(end)}}
}

func (c *call) executeSpecial(intent *input.Intent) {
	b := c.buf()
	n := max(intent.Count, 1)
	reg := intent.Register
	visual := c.s.Visual != nil

	if b.Readonly && mutating[intent.Special] {
		c.fail("E45: 'readonly' option is set")
		return
	}

	switch intent.Special {
	case input.SpecialDeleteChar:
		if visual {
			c.visualOperator(&input.Intent{Type: input.IntentOperatorVisual, Operator: input.OperatorDelete, Count: 1, Register: reg})
			return
		}
		c.deleteChars(n, false, reg)
		c.repeatSimple(intent)
	case input.SpecialDeleteCharBack:
		c.deleteChars(n, true, reg)
		c.repeatSimple(intent)
	case input.SpecialDeleteToEnd:
		if r := toLineEnd(b, n); !r.emptyRange() {
			c.deleteOp(r, reg)
			c.repeatSimple(intent)
		}
	case input.SpecialChangeToEnd:
		c.changeOp(toLineEnd(b, n), intent)
	case input.SpecialSubstituteChar:
		line, col := b.Cursor.Line, b.Cursor.Col
		c.changeOp(charRange(line, col, min(col+n, b.lineLen(line))), intent)
	case input.SpecialSubstituteLine:
		c.changeOp(lineRange(b, n), intent)
	case input.SpecialYankLine:
		c.yankOp(lineRange(b, n), reg)

	case input.SpecialPasteAfter, input.SpecialPasteBefore, input.SpecialPasteAfterMove, input.SpecialPasteBeforeMove:
		if visual {
			c.visualPaste(intent)
			return
		}
		after := intent.Special == input.SpecialPasteAfter || intent.Special == input.SpecialPasteAfterMove
		move := intent.Special == input.SpecialPasteAfterMove || intent.Special == input.SpecialPasteBeforeMove
		c.paste(reg, after, move, n)
		c.repeatSimple(intent)

	case input.SpecialJoin, input.SpecialJoinNoSpace:
		spaces := intent.Special == input.SpecialJoin
		if visual {
			c.visualJoin(spaces)
			return
		}
		if c.join(n, spaces) {
			c.repeatSimple(intent)
		}
	case input.SpecialToggleCaseChar:
		c.toggleCaseChars(n)
		c.repeatSimple(intent)

	case input.SpecialRepeat:
		c.dotRepeat(intent)
	case input.SpecialUndo:
		c.undo(n)
	case input.SpecialRedo:
		c.redo(n)
	case input.SpecialUndoLine:
		c.undoLine()

	case input.SpecialJumpOlder:
		c.jumpOlder(n)
	case input.SpecialJumpNewer:
		c.jumpNewer(n)
	case input.SpecialChangeOlder:
		c.changeNav(-n)
	case input.SpecialChangeNewer:
		c.changeNav(n)

	case input.SpecialSearchWordForward:
		c.searchWord(true, n)
	case input.SpecialSearchWordBack:
		c.searchWord(false, n)

	case input.SpecialReselectVisual:
		c.reselect()
	case input.SpecialShowASCII:
		c.showASCII()
	case input.SpecialShowUTF8:
		c.showUTF8()
	case input.SpecialFileInfo:
		c.fileInfo()

	case input.SpecialScrollTop:
		c.reposition(screenTop, false)
	case input.SpecialScrollCenter:
		c.reposition(screenMid, false)
	case input.SpecialScrollBottom:
		c.reposition(screenBottom, false)
	case input.SpecialScrollTopFirstNonWS:
		c.reposition(screenTop, true)
	case input.SpecialScrollCenterFirstNonWS:
		c.reposition(screenMid, true)
	case input.SpecialScrollBottomFirstNonWS:
		c.reposition(screenBottom, true)

	case input.SpecialHalfPageDown:
		c.scrollBy(c.s.viewHeight() / 2)
	case input.SpecialHalfPageUp:
		c.scrollBy(-c.s.viewHeight() / 2)
	case input.SpecialPageDown:
		c.scrollBy(n * max(c.s.viewHeight()-2, 1))
	case input.SpecialPageUp:
		c.scrollBy(-n * max(c.s.viewHeight()-2, 1))
	case input.SpecialScrollLineDown:
		c.scrollView(n)
	case input.SpecialScrollLineUp:
		c.scrollView(-n)

	case input.SpecialFoldOpen:
		c.foldCommand(foldOpen)
	case input.SpecialFoldClose:
		c.foldCommand(foldClose)
	case input.SpecialFoldToggle:
		c.foldCommand(foldToggle)
	case input.SpecialFoldOpenRecursive:
		c.foldCommand(foldOpenRecursive)
	case input.SpecialFoldCloseRecursive:
		c.foldCommand(foldCloseRecursive)
	case input.SpecialFoldOpenAll:
		c.foldCommand(foldOpenAll)
	case input.SpecialFoldCloseAll:
		c.foldCommand(foldCloseAll)
	case input.SpecialFoldDelete:
		c.foldCommand(foldDelete)
	case input.SpecialFoldDeleteAll:
		c.foldCommand(foldDeleteAll)

	case input.SpecialVisualSwapEnds:
		c.swapEnds(false)
	case input.SpecialVisualSwapCorner:
		c.swapEnds(true)
	}

	if c.s.Visual != nil {
		c.followHead()
	}
}
