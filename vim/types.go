// @lixen: #focus{control[types,motion,range]}
// @lixen: #interact{state[buffer,register]}
package vim

import (
	"time"

	"github.com/lixenwraith/vi-dojo/input"
)

// Mode is the editor mode of the active buffer
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeVisualLine
	ModeVisualBlock
	ModeCommand
	ModeSearch
	ModeOperatorPending
	ModeReplace
)

var modeNames = [...]string{
	ModeNormal:          "NORMAL",
	ModeInsert:          "INSERT",
	ModeVisual:          "VISUAL",
	ModeVisualLine:      "V-LINE",
	ModeVisualBlock:     "V-BLOCK",
	ModeCommand:         "COMMAND",
	ModeSearch:          "SEARCH",
	ModeOperatorPending: "OP-PENDING",
	ModeReplace:         "REPLACE",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "UNKNOWN"
}

// IsVisual reports whether m is one of the visual modes
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine || m == ModeVisualBlock
}

// Position is a zero-based line/column pair; columns index runes
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Before reports whether p precedes q in document order
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// RangeType defines the shape of the target region
type RangeType int

const (
	RangeChar RangeType = iota
	RangeLine
)

// MotionStyle defines how operators interpret the range endpoint
type MotionStyle int

const (
	StyleExclusive MotionStyle = iota // Endpoint not included (w, b)
	StyleInclusive                    // Endpoint included (e, f, $)
)

// MotionResult encapsulates the calculated target of a motion
// The start of the range is always the buffer cursor
type MotionResult struct {
	Line, Col int
	Type      RangeType
	Style     MotionStyle
	Valid     bool // False if motion found no target
}

// MotionFunc calculates a target without modifying the buffer
type MotionFunc func(b *Buffer, count int) MotionResult

// CharMotionFunc requires additional character input
type CharMotionFunc func(b *Buffer, count int, ch rune) MotionResult

// TextRange is a normalized half-open range [Start, End) produced by motions and text objects
// Linewise ranges cover whole lines Start.Line..End.Line inclusive
type TextRange struct {
	Start, End Position
	Linewise   bool
	Block      bool
}

// RegisterKind is the shape of register content
type RegisterKind uint8

const (
	RegisterChar RegisterKind = iota
	RegisterLine
	RegisterBlock
)

func (k RegisterKind) String() string {
	switch k {
	case RegisterLine:
		return "l"
	case RegisterBlock:
		return "b"
	}
	return "c"
}

// Register is a typed text payload
type Register struct {
	Content string       `json:"content"`
	Kind    RegisterKind `json:"kind"`
	Time    time.Time    `json:"time"`
}

// Empty reports whether the register holds no text
func (r Register) Empty() bool {
	return r.Content == ""
}

// Registers is the global register bank
type Registers struct {
	Unnamed     Register          `json:"unnamed"`
	Numbered    [10]Register      `json:"numbered"`
	Named       map[rune]Register `json:"named"`
	SmallDelete Register          `json:"small_delete"`
	Clipboard   Register          `json:"clipboard"` // +
	Selection   Register          `json:"selection"` // *
	LastInsert  string            `json:"last_insert"`
	LastCommand string            `json:"last_command"`
	LastSearch  string            `json:"last_search"`
	Expression  string            `json:"expression"`
}

// Mark is a bookmarked position; BufferID is set for global marks
type Mark struct {
	Line     int `json:"line"`
	Col      int `json:"col"`
	BufferID int `json:"buffer_id,omitempty"`
}

// JumpEntry is one jumplist or changelist record
type JumpEntry struct {
	BufferID int      `json:"buffer_id"`
	Pos      Position `json:"pos"`
}

// Fold is a closed or open range of lines, both ends inclusive
type Fold struct {
	Start  int  `json:"start"`
	End    int  `json:"end"`
	Closed bool `json:"closed"`
}

// SelectionKind is the shape of a visual selection
type SelectionKind uint8

const (
	SelectChar SelectionKind = iota
	SelectLine
	SelectBlock
)

// VisualSelection is an anchored selection; Head follows the cursor
type VisualSelection struct {
	Anchor Position      `json:"anchor"`
	Head   Position      `json:"head"`
	Kind   SelectionKind `json:"kind"`
}

// SearchState holds the active pattern, its matches and the incremental draft
type SearchState struct {
	Pattern   string     `json:"pattern"`
	Forward   bool       `json:"forward"`
	Matches   []Position `json:"matches,omitempty"`
	Current   int        `json:"current"`
	Highlight bool       `json:"highlight"`
	Draft     string     `json:"draft"`
	Origin    Position   `json:"origin"`
	History   []string   `json:"history,omitempty"`
	HistPos   int        `json:"hist_pos"`
}

// FindMotion records the last f/F/t/T for ; and ,
type FindMotion struct {
	Motion input.MotionOp `json:"motion"`
	Char   rune           `json:"char"`
}

// RepeatKind discriminates the dot-repeat payload
type RepeatKind uint8

const (
	RepeatNone     RepeatKind = iota
	RepeatOperator            // operator + motion/object/line
	RepeatChange              // change operator or C/s/S + inserted text
	RepeatInsert              // i/a/o/... + inserted text
	RepeatSimple              // x, p, J, ~, r, ...
)

// Repeat is the last repeatable change
type Repeat struct {
	Kind     RepeatKind         `json:"kind"`
	Intent   input.Intent       `json:"intent"`
	Insert   input.ModeTarget   `json:"insert,omitempty"`
	Text     string             `json:"text,omitempty"`
	Special  input.SpecialOp    `json:"special,omitempty"`
	Operator input.OperatorOp   `json:"operator,omitempty"`
	Object   input.TextObjectOp `json:"object,omitempty"`
}

// Snapshot is a full copy of buffer content and cursor, one per logical edit
type Snapshot struct {
	Lines  []string  `json:"lines"`
	Cursor Position  `json:"cursor"`
	Time   time.Time `json:"time"`
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

// ClipboardWrite asks the host to mirror a register to the OS clipboard
type ClipboardWrite struct {
	Register rune
	Content  string
}

// Result describes what one call did
type Result struct {
	Message   string
	Type      MessageType
	Action    string
	Clipboard *ClipboardWrite
	Quit      bool
}
