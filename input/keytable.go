package input

// KeyBehavior classifies how a key is processed
type KeyBehavior uint8

const (
	BehaviorNone KeyBehavior = iota
	BehaviorMotion
	BehaviorCharWait
	BehaviorOperator
	BehaviorPrefix         // g, z, [, ] → StatePrefix
	BehaviorPrefixRegister // " → StateRegisterAwait
	BehaviorPrefixMacro    // @ → StateMacroPlayAwait
	BehaviorPrefixRecord   // q → StateMacroRecordAwait
	BehaviorPrefixMark     // m → StateMarkSetAwait
	BehaviorReplaceWait    // r → StateReplaceAwait
	BehaviorObjectPrefix   // visual i/a → StateObjectAwait
	BehaviorModeSwitch
	BehaviorSpecial
	BehaviorEscape
)

// KeyEntry describes a key's behavior without function pointers
type KeyEntry struct {
	Behavior   KeyBehavior
	Motion     MotionOp
	Operator   OperatorOp
	Special    SpecialOp
	ModeTarget ModeTarget
}

func motionEntry(op MotionOp) KeyEntry     { return KeyEntry{Behavior: BehaviorMotion, Motion: op} }
func charWaitEntry(op MotionOp) KeyEntry   { return KeyEntry{Behavior: BehaviorCharWait, Motion: op} }
func operatorEntry(op OperatorOp) KeyEntry { return KeyEntry{Behavior: BehaviorOperator, Operator: op} }
func specialEntry(op SpecialOp) KeyEntry   { return KeyEntry{Behavior: BehaviorSpecial, Special: op} }
func modeEntry(t ModeTarget) KeyEntry      { return KeyEntry{Behavior: BehaviorModeSwitch, ModeTarget: t} }
func behaviorEntry(b KeyBehavior) KeyEntry { return KeyEntry{Behavior: b} }

// KeyTable maps keys to behaviors for Normal and Visual modes
type KeyTable struct {
	// Non-printable keys (Ctrl+*, arrows, Enter, ...)
	SpecialKeys map[Key]KeyEntry

	// Normal mode rune bindings
	NormalRunes map[rune]KeyEntry

	// Visual mode overrides, consulted before NormalRunes
	VisualRunes map[rune]KeyEntry

	// Motions valid after an operator
	OperatorMotions map[rune]KeyEntry

	// Second key after a prefix rune (g, z, [, ])
	Prefixes map[rune]map[rune]KeyEntry

	// Key that doubles each operator into its line-wise form (dd, g~~, gUU)
	OperatorDouble map[OperatorOp]rune

	// Object keys after i/a
	TextObjects map[rune]TextObjectOp
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[Key]KeyEntry{
			NamedKey(KeyEscape):    behaviorEntry(BehaviorEscape),
			CtrlKey('c'):           behaviorEntry(BehaviorEscape),
			NamedKey(KeyUp):        motionEntry(MotionUp),
			NamedKey(KeyDown):      motionEntry(MotionDown),
			NamedKey(KeyLeft):      motionEntry(MotionLeft),
			NamedKey(KeyRight):     motionEntry(MotionRight),
			NamedKey(KeyHome):      motionEntry(MotionLineStart),
			NamedKey(KeyEnd):       motionEntry(MotionLineEnd),
			NamedKey(KeyEnter):     motionEntry(MotionNextLineStart),
			NamedKey(KeyBackspace): motionEntry(MotionLeft),
			NamedKey(KeyDelete):    specialEntry(SpecialDeleteChar),
			NamedKey(KeyTab):       specialEntry(SpecialJumpNewer),
			NamedKey(KeyPageUp):    specialEntry(SpecialPageUp),
			NamedKey(KeyPageDown):  specialEntry(SpecialPageDown),
			NamedKey(KeyInsert):    modeEntry(ModeTargetInsert),
			CtrlKey('r'):           specialEntry(SpecialRedo),
			CtrlKey('o'):           specialEntry(SpecialJumpOlder),
			CtrlKey('i'):           specialEntry(SpecialJumpNewer),
			CtrlKey('d'):           specialEntry(SpecialHalfPageDown),
			CtrlKey('u'):           specialEntry(SpecialHalfPageUp),
			CtrlKey('f'):           specialEntry(SpecialPageDown),
			CtrlKey('b'):           specialEntry(SpecialPageUp),
			CtrlKey('e'):           specialEntry(SpecialScrollLineDown),
			CtrlKey('y'):           specialEntry(SpecialScrollLineUp),
			CtrlKey('g'):           specialEntry(SpecialFileInfo),
			CtrlKey('v'):           modeEntry(ModeTargetVisualBlock),
		},

		NormalRunes: map[rune]KeyEntry{
			// Basic motions
			'h': motionEntry(MotionLeft),
			'j': motionEntry(MotionDown),
			'k': motionEntry(MotionUp),
			'l': motionEntry(MotionRight),
			' ': motionEntry(MotionRight),

			// Word motions
			'w': motionEntry(MotionWordForward),
			'W': motionEntry(MotionWORDForward),
			'b': motionEntry(MotionWordBack),
			'B': motionEntry(MotionWORDBack),
			'e': motionEntry(MotionWordEnd),
			'E': motionEntry(MotionWORDEnd),

			// Line motions
			'0': motionEntry(MotionLineStart),
			'^': motionEntry(MotionFirstNonWS),
			'$': motionEntry(MotionLineEnd),
			'_': motionEntry(MotionLineFirstNonWS),
			'+': motionEntry(MotionNextLineStart),
			'-': motionEntry(MotionPrevLineStart),
			'|': motionEntry(MotionColumn),
			'G': motionEntry(MotionFileEnd),

			// Screen motions
			'H': motionEntry(MotionScreenTop),
			'M': motionEntry(MotionScreenMid),
			'L': motionEntry(MotionScreenBottom),

			// Paragraph and bracket
			'{': motionEntry(MotionParaBack),
			'}': motionEntry(MotionParaForward),
			'%': motionEntry(MotionMatchBracket),

			// Find repeat and search
			';': motionEntry(MotionRepeatFind),
			',': motionEntry(MotionRepeatFindReverse),
			'n': motionEntry(MotionSearchNext),
			'N': motionEntry(MotionSearchPrev),

			// Char-wait commands
			'f':  charWaitEntry(MotionFindForward),
			'F':  charWaitEntry(MotionFindBack),
			't':  charWaitEntry(MotionTillForward),
			'T':  charWaitEntry(MotionTillBack),
			'\'': charWaitEntry(MotionMarkLine),
			'`':  charWaitEntry(MotionMarkExact),

			// Operators
			'd': operatorEntry(OperatorDelete),
			'y': operatorEntry(OperatorYank),
			'c': operatorEntry(OperatorChange),
			'>': operatorEntry(OperatorIndent),
			'<': operatorEntry(OperatorDedent),

			// Prefixes
			'g': behaviorEntry(BehaviorPrefix),
			'z': behaviorEntry(BehaviorPrefix),
			'[': behaviorEntry(BehaviorPrefix),
			']': behaviorEntry(BehaviorPrefix),
			'"': behaviorEntry(BehaviorPrefixRegister),
			'@': behaviorEntry(BehaviorPrefixMacro),
			'q': behaviorEntry(BehaviorPrefixRecord),
			'm': behaviorEntry(BehaviorPrefixMark),
			'r': behaviorEntry(BehaviorReplaceWait),

			// Mode switches
			'i': modeEntry(ModeTargetInsert),
			'a': modeEntry(ModeTargetAppend),
			'I': modeEntry(ModeTargetInsertLineStart),
			'A': modeEntry(ModeTargetAppendLineEnd),
			'o': modeEntry(ModeTargetOpenBelow),
			'O': modeEntry(ModeTargetOpenAbove),
			'R': modeEntry(ModeTargetReplace),
			'v': modeEntry(ModeTargetVisual),
			'V': modeEntry(ModeTargetVisualLine),
			':': modeEntry(ModeTargetCommand),
			'/': modeEntry(ModeTargetSearchForward),
			'?': modeEntry(ModeTargetSearchBackward),

			// Special commands
			'x': specialEntry(SpecialDeleteChar),
			'X': specialEntry(SpecialDeleteCharBack),
			'D': specialEntry(SpecialDeleteToEnd),
			'C': specialEntry(SpecialChangeToEnd),
			's': specialEntry(SpecialSubstituteChar),
			'S': specialEntry(SpecialSubstituteLine),
			'Y': specialEntry(SpecialYankLine),
			'p': specialEntry(SpecialPasteAfter),
			'P': specialEntry(SpecialPasteBefore),
			'J': specialEntry(SpecialJoin),
			'~': specialEntry(SpecialToggleCaseChar),
			'.': specialEntry(SpecialRepeat),
			'u': specialEntry(SpecialUndo),
			'U': specialEntry(SpecialUndoLine),
			'*': specialEntry(SpecialSearchWordForward),
			'#': specialEntry(SpecialSearchWordBack),
		},

		VisualRunes: map[rune]KeyEntry{
			'o': specialEntry(SpecialVisualSwapEnds),
			'O': specialEntry(SpecialVisualSwapCorner),
			'i': behaviorEntry(BehaviorObjectPrefix),
			'a': behaviorEntry(BehaviorObjectPrefix),
			'x': operatorEntry(OperatorDelete),
			's': operatorEntry(OperatorChange),
			'~': operatorEntry(OperatorToggleCase),
			'u': operatorEntry(OperatorLower),
			'U': operatorEntry(OperatorUpper),
			'D': operatorEntry(OperatorDelete),
			'X': operatorEntry(OperatorDelete),
			'Y': operatorEntry(OperatorYank),
			'C': operatorEntry(OperatorChange),
			'S': operatorEntry(OperatorChange),
			'R': operatorEntry(OperatorChange),
			'I': modeEntry(ModeTargetInsertLineStart),
			'A': modeEntry(ModeTargetAppendLineEnd),
		},

		OperatorMotions: map[rune]KeyEntry{
			'h':  motionEntry(MotionLeft),
			'j':  motionEntry(MotionDown),
			'k':  motionEntry(MotionUp),
			'l':  motionEntry(MotionRight),
			' ':  motionEntry(MotionRight),
			'w':  motionEntry(MotionWordForward),
			'W':  motionEntry(MotionWORDForward),
			'b':  motionEntry(MotionWordBack),
			'B':  motionEntry(MotionWORDBack),
			'e':  motionEntry(MotionWordEnd),
			'E':  motionEntry(MotionWORDEnd),
			'0':  motionEntry(MotionLineStart),
			'^':  motionEntry(MotionFirstNonWS),
			'$':  motionEntry(MotionLineEnd),
			'_':  motionEntry(MotionLineFirstNonWS),
			'+':  motionEntry(MotionNextLineStart),
			'-':  motionEntry(MotionPrevLineStart),
			'|':  motionEntry(MotionColumn),
			'G':  motionEntry(MotionFileEnd),
			'H':  motionEntry(MotionScreenTop),
			'M':  motionEntry(MotionScreenMid),
			'L':  motionEntry(MotionScreenBottom),
			'{':  motionEntry(MotionParaBack),
			'}':  motionEntry(MotionParaForward),
			'%':  motionEntry(MotionMatchBracket),
			';':  motionEntry(MotionRepeatFind),
			',':  motionEntry(MotionRepeatFindReverse),
			'n':  motionEntry(MotionSearchNext),
			'N':  motionEntry(MotionSearchPrev),
			'f':  charWaitEntry(MotionFindForward),
			'F':  charWaitEntry(MotionFindBack),
			't':  charWaitEntry(MotionTillForward),
			'T':  charWaitEntry(MotionTillBack),
			'\'': charWaitEntry(MotionMarkLine),
			'`':  charWaitEntry(MotionMarkExact),
			'g':  behaviorEntry(BehaviorPrefix),
		},

		Prefixes: map[rune]map[rune]KeyEntry{
			'g': {
				'g': motionEntry(MotionFileStart),
				'e': motionEntry(MotionWordEndBack),
				'E': motionEntry(MotionWORDEndBack),
				'~': operatorEntry(OperatorToggleCase),
				'u': operatorEntry(OperatorLower),
				'U': operatorEntry(OperatorUpper),
				'q': operatorEntry(OperatorFormat),
				'w': operatorEntry(OperatorFormatKeep),
				'?': operatorEntry(OperatorRot13),
				'i': modeEntry(ModeTargetInsertLastPos),
				'I': modeEntry(ModeTargetInsertColumnZero),
				'v': specialEntry(SpecialReselectVisual),
				'J': specialEntry(SpecialJoinNoSpace),
				'p': specialEntry(SpecialPasteAfterMove),
				'P': specialEntry(SpecialPasteBeforeMove),
				';': specialEntry(SpecialChangeOlder),
				',': specialEntry(SpecialChangeNewer),
				'a': specialEntry(SpecialShowASCII),
				'8': specialEntry(SpecialShowUTF8),
			},
			'z': {
				'f': operatorEntry(OperatorFold),
				'o': specialEntry(SpecialFoldOpen),
				'c': specialEntry(SpecialFoldClose),
				'a': specialEntry(SpecialFoldToggle),
				'O': specialEntry(SpecialFoldOpenRecursive),
				'C': specialEntry(SpecialFoldCloseRecursive),
				'R': specialEntry(SpecialFoldOpenAll),
				'M': specialEntry(SpecialFoldCloseAll),
				'd': specialEntry(SpecialFoldDelete),
				'E': specialEntry(SpecialFoldDeleteAll),
				'j': motionEntry(MotionFoldNext),
				'k': motionEntry(MotionFoldPrev),
				'z': specialEntry(SpecialScrollCenter),
				't': specialEntry(SpecialScrollTop),
				'b': specialEntry(SpecialScrollBottom),
				'.': specialEntry(SpecialScrollCenterFirstNonWS),
				'-': specialEntry(SpecialScrollBottomFirstNonWS),
			},
			'[': {
				'z': motionEntry(MotionFoldStart),
			},
			']': {
				'z': motionEntry(MotionFoldEnd),
			},
		},

		OperatorDouble: map[OperatorOp]rune{
			OperatorDelete:     'd',
			OperatorYank:       'y',
			OperatorChange:     'c',
			OperatorIndent:     '>',
			OperatorDedent:     '<',
			OperatorToggleCase: '~',
			OperatorLower:      'u',
			OperatorUpper:      'U',
			OperatorFormat:     'q',
			OperatorFormatKeep: 'w',
			OperatorRot13:      '?',
		},

		TextObjects: map[rune]TextObjectOp{
			'w':  ObjectWord,
			'W':  ObjectWORD,
			's':  ObjectSentence,
			'p':  ObjectParagraph,
			'"':  ObjectDoubleQuote,
			'\'': ObjectSingleQuote,
			'`':  ObjectBackQuote,
			'(':  ObjectParen,
			')':  ObjectParen,
			'b':  ObjectParen,
			'[':  ObjectBracket,
			']':  ObjectBracket,
			'{':  ObjectBrace,
			'}':  ObjectBrace,
			'B':  ObjectBrace,
			'<':  ObjectAngle,
			'>':  ObjectAngle,
			't':  ObjectTag,
		},
	}
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	prefixes := make(map[rune]map[rune]KeyEntry, len(kt.Prefixes))
	for p, m := range kt.Prefixes {
		prefixes[p] = cloneMap(m)
	}
	return &KeyTable{
		SpecialKeys:     cloneMap(kt.SpecialKeys),
		NormalRunes:     cloneMap(kt.NormalRunes),
		VisualRunes:     cloneMap(kt.VisualRunes),
		OperatorMotions: cloneMap(kt.OperatorMotions),
		Prefixes:        prefixes,
		OperatorDouble:  cloneMap(kt.OperatorDouble),
		TextObjects:     cloneMap(kt.TextObjects),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
