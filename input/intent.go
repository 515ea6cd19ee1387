package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentEscape // ESC with nothing pending

	// Navigation
	IntentMotion     // h,j,k,l,w,b,0,$,G,gg,arrows,etc
	IntentCharMotion // f,F,t,T,',` + target char

	// Operators
	IntentOperatorMotion     // d + motion (e.g., dw, d2w)
	IntentOperatorLine       // dd, yy, g~~ (line-wise)
	IntentOperatorCharMotion // d + f/t + char (e.g., df;)
	IntentOperatorTextObject // d + i/a + object (e.g., di()
	IntentOperatorVisual     // operator key in visual mode, applies to selection

	IntentTextObject  // visual i/a + object, extends selection
	IntentSpecial     // x, D, p, u, J, ...
	IntentReplaceChar // r + char
	IntentModeSwitch  // i, a, o, v, :, /, ...

	IntentMacroRecord // q + register (engine stops recording on bare q)
	IntentMacroPlay   // [count]@register, @@, @:
	IntentMarkSet     // m + name
)

// MotionOp identifies motion algorithm
type MotionOp uint8

const (
	MotionNone          MotionOp = iota
	MotionLeft                   // h, Left arrow, Backspace
	MotionRight                  // l, Right arrow, Space
	MotionUp                     // k, Up arrow
	MotionDown                   // j, Down arrow
	MotionWordForward            // w
	MotionWORDForward            // W
	MotionWordBack               // b
	MotionWORDBack               // B
	MotionWordEnd                // e
	MotionWORDEnd                // E
	MotionWordEndBack            // ge
	MotionWORDEndBack            // gE
	MotionLineStart              // 0, Home
	MotionLineEnd                // $, End
	MotionFirstNonWS             // ^
	MotionLineFirstNonWS         // _
	MotionNextLineStart          // +, Enter
	MotionPrevLineStart          // -
	MotionColumn                 // |
	MotionFileStart              // gg
	MotionFileEnd                // G
	MotionParaBack               // {
	MotionParaForward            // }
	MotionMatchBracket           // %
	MotionScreenTop              // H
	MotionScreenMid              // M
	MotionScreenBottom           // L
	MotionFindForward            // f + char
	MotionFindBack               // F + char
	MotionTillForward            // t + char
	MotionTillBack               // T + char
	MotionRepeatFind             // ;
	MotionRepeatFindReverse      // ,
	MotionSearchNext             // n
	MotionSearchPrev             // N
	MotionMarkLine               // ' + mark
	MotionMarkExact              // ` + mark
	MotionFoldStart              // [z
	MotionFoldEnd                // ]z
	MotionFoldNext               // zj
	MotionFoldPrev               // zk
)

// OperatorOp identifies operator type
type OperatorOp uint8

const (
	OperatorNone       OperatorOp = iota
	OperatorDelete                // d
	OperatorYank                  // y
	OperatorChange                // c
	OperatorIndent                // >
	OperatorDedent                // <
	OperatorToggleCase            // g~
	OperatorLower                 // gu
	OperatorUpper                 // gU
	OperatorFormat                // gq
	OperatorFormatKeep            // gw
	OperatorRot13                 // g?
	OperatorFold                  // zf
)

// TextObjectOp identifies text object kind; Intent.Inner selects i/a variant
type TextObjectOp uint8

const (
	ObjectNone        TextObjectOp = iota
	ObjectWord                     // w
	ObjectWORD                     // W
	ObjectSentence                 // s
	ObjectParagraph                // p
	ObjectDoubleQuote              // "
	ObjectSingleQuote              // '
	ObjectBackQuote                // `
	ObjectParen                    // ( ) b
	ObjectBracket                  // [ ]
	ObjectBrace                    // { } B
	ObjectAngle                    // < >
	ObjectTag                      // t
)

// SpecialOp identifies special commands
type SpecialOp uint8

const (
	SpecialNone               SpecialOp = iota
	SpecialDeleteChar                   // x, Delete
	SpecialDeleteCharBack               // X
	SpecialDeleteToEnd                  // D
	SpecialChangeToEnd                  // C
	SpecialSubstituteChar               // s
	SpecialSubstituteLine               // S
	SpecialYankLine                     // Y
	SpecialPasteAfter                   // p
	SpecialPasteBefore                  // P
	SpecialPasteAfterMove               // gp
	SpecialPasteBeforeMove              // gP
	SpecialJoin                         // J
	SpecialJoinNoSpace                  // gJ
	SpecialToggleCaseChar               // ~
	SpecialRepeat                       // .
	SpecialUndo                         // u
	SpecialRedo                         // Ctrl+R
	SpecialUndoLine                     // U
	SpecialJumpOlder                    // Ctrl+O
	SpecialJumpNewer                    // Ctrl+I, Tab
	SpecialChangeOlder                  // g;
	SpecialChangeNewer                  // g,
	SpecialSearchWordForward            // *
	SpecialSearchWordBack               // #
	SpecialReselectVisual               // gv
	SpecialShowASCII                    // ga
	SpecialShowUTF8                     // g8
	SpecialScrollCenter                 // zz
	SpecialScrollTop                    // zt
	SpecialScrollBottom                 // zb
	SpecialScrollTopFirstNonWS          // z<CR>
	SpecialScrollCenterFirstNonWS       // z.
	SpecialScrollBottomFirstNonWS       // z-
	SpecialFoldOpen                     // zo
	SpecialFoldClose                    // zc
	SpecialFoldToggle                   // za
	SpecialFoldOpenRecursive            // zO
	SpecialFoldCloseRecursive           // zC
	SpecialFoldOpenAll                  // zR
	SpecialFoldCloseAll                 // zM
	SpecialFoldDelete                   // zd
	SpecialFoldDeleteAll                // zE
	SpecialHalfPageDown                 // Ctrl+D
	SpecialHalfPageUp                   // Ctrl+U
	SpecialPageDown                     // Ctrl+F, PgDn
	SpecialPageUp                       // Ctrl+B, PgUp
	SpecialScrollLineDown               // Ctrl+E
	SpecialScrollLineUp                 // Ctrl+Y
	SpecialVisualSwapEnds               // visual o
	SpecialVisualSwapCorner             // visual O
	SpecialFileInfo                     // Ctrl+G
)

// ModeTarget identifies mode switch destination
type ModeTarget uint8

const (
	ModeTargetNone           ModeTarget = iota
	ModeTargetInsert                    // i
	ModeTargetAppend                    // a
	ModeTargetInsertLineStart           // I
	ModeTargetAppendLineEnd             // A
	ModeTargetOpenBelow                 // o
	ModeTargetOpenAbove                 // O
	ModeTargetInsertLastPos             // gi
	ModeTargetInsertColumnZero          // gI
	ModeTargetReplace                   // R
	ModeTargetVisual                    // v
	ModeTargetVisualLine                // V
	ModeTargetVisualBlock               // Ctrl+V
	ModeTargetCommand                   // :
	ModeTargetSearchForward             // /
	ModeTargetSearchBackward            // ?
)

// Intent represents a parsed semantic action
// Pure data struct with no function pointers or engine dependencies
type Intent struct {
	Type       IntentType
	Motion     MotionOp
	Operator   OperatorOp
	Special    SpecialOp
	ModeTarget ModeTarget
	Object     TextObjectOp
	Inner      bool   // i-variant of a text object
	Count      int    // Effective count (minimum 1)
	RawCount   int    // Typed count, 0 when absent (G vs 5G)
	Char       rune   // Target char for f/t/r/m/q/@ or mark name
	Register   rune   // Register from "x prefix, 0 when absent
	Command    string // Captured sequence for visual feedback
}
