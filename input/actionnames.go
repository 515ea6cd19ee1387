package input

import "sort"

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap config loader to resolve action strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	return map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		"escape": behaviorEntry(BehaviorEscape),

		// Basic motions
		"motion_left":              motionEntry(MotionLeft),
		"motion_right":             motionEntry(MotionRight),
		"motion_up":                motionEntry(MotionUp),
		"motion_down":              motionEntry(MotionDown),
		"motion_word_forward":      motionEntry(MotionWordForward),
		"motion_word_forward_big":  motionEntry(MotionWORDForward),
		"motion_word_back":         motionEntry(MotionWordBack),
		"motion_word_back_big":     motionEntry(MotionWORDBack),
		"motion_word_end":          motionEntry(MotionWordEnd),
		"motion_word_end_big":      motionEntry(MotionWORDEnd),
		"motion_word_end_back":     motionEntry(MotionWordEndBack),
		"motion_word_end_back_big": motionEntry(MotionWORDEndBack),
		"motion_line_start":        motionEntry(MotionLineStart),
		"motion_line_end":          motionEntry(MotionLineEnd),
		"motion_first_non_ws":      motionEntry(MotionFirstNonWS),
		"motion_line_first_non_ws": motionEntry(MotionLineFirstNonWS),
		"motion_next_line_start":   motionEntry(MotionNextLineStart),
		"motion_prev_line_start":   motionEntry(MotionPrevLineStart),
		"motion_column":            motionEntry(MotionColumn),
		"motion_file_start":        motionEntry(MotionFileStart),
		"motion_file_end":          motionEntry(MotionFileEnd),

		// Screen motions
		"motion_screen_top":    motionEntry(MotionScreenTop),
		"motion_screen_mid":    motionEntry(MotionScreenMid),
		"motion_screen_bottom": motionEntry(MotionScreenBottom),

		// Paragraph, bracket, search
		"motion_para_back":           motionEntry(MotionParaBack),
		"motion_para_forward":        motionEntry(MotionParaForward),
		"motion_match_bracket":       motionEntry(MotionMatchBracket),
		"motion_repeat_find":         motionEntry(MotionRepeatFind),
		"motion_repeat_find_reverse": motionEntry(MotionRepeatFindReverse),
		"motion_search_next":         motionEntry(MotionSearchNext),
		"motion_search_prev":         motionEntry(MotionSearchPrev),

		// Char-wait (f/F/t/T and mark jumps)
		"char_find_forward": charWaitEntry(MotionFindForward),
		"char_find_back":    charWaitEntry(MotionFindBack),
		"char_till_forward": charWaitEntry(MotionTillForward),
		"char_till_back":    charWaitEntry(MotionTillBack),
		"mark_jump_line":    charWaitEntry(MotionMarkLine),
		"mark_jump_exact":   charWaitEntry(MotionMarkExact),

		// Operators
		"operator_delete":      operatorEntry(OperatorDelete),
		"operator_yank":        operatorEntry(OperatorYank),
		"operator_change":      operatorEntry(OperatorChange),
		"operator_indent":      operatorEntry(OperatorIndent),
		"operator_dedent":      operatorEntry(OperatorDedent),
		"operator_toggle_case": operatorEntry(OperatorToggleCase),
		"operator_lower":       operatorEntry(OperatorLower),
		"operator_upper":       operatorEntry(OperatorUpper),
		"operator_format":      operatorEntry(OperatorFormat),
		"operator_rot13":       operatorEntry(OperatorRot13),
		"operator_fold":        operatorEntry(OperatorFold),

		// Prefix keys
		"prefix":          behaviorEntry(BehaviorPrefix),
		"prefix_register": behaviorEntry(BehaviorPrefixRegister),
		"prefix_macro":    behaviorEntry(BehaviorPrefixMacro),
		"prefix_record":   behaviorEntry(BehaviorPrefixRecord),
		"prefix_mark":     behaviorEntry(BehaviorPrefixMark),
		"replace_char":    behaviorEntry(BehaviorReplaceWait),

		// Mode switches
		"mode_insert":           modeEntry(ModeTargetInsert),
		"mode_append":           modeEntry(ModeTargetAppend),
		"mode_insert_start":     modeEntry(ModeTargetInsertLineStart),
		"mode_append_end":       modeEntry(ModeTargetAppendLineEnd),
		"mode_open_below":       modeEntry(ModeTargetOpenBelow),
		"mode_open_above":       modeEntry(ModeTargetOpenAbove),
		"mode_replace":          modeEntry(ModeTargetReplace),
		"mode_visual":           modeEntry(ModeTargetVisual),
		"mode_visual_line":      modeEntry(ModeTargetVisualLine),
		"mode_visual_block":     modeEntry(ModeTargetVisualBlock),
		"mode_command":          modeEntry(ModeTargetCommand),
		"mode_search":           modeEntry(ModeTargetSearchForward),
		"mode_search_backward":  modeEntry(ModeTargetSearchBackward),

		// Special commands
		"delete_char":        specialEntry(SpecialDeleteChar),
		"delete_char_back":   specialEntry(SpecialDeleteCharBack),
		"delete_to_end":      specialEntry(SpecialDeleteToEnd),
		"change_to_end":      specialEntry(SpecialChangeToEnd),
		"substitute_char":    specialEntry(SpecialSubstituteChar),
		"substitute_line":    specialEntry(SpecialSubstituteLine),
		"yank_line":          specialEntry(SpecialYankLine),
		"paste_after":        specialEntry(SpecialPasteAfter),
		"paste_before":       specialEntry(SpecialPasteBefore),
		"join":               specialEntry(SpecialJoin),
		"join_no_space":      specialEntry(SpecialJoinNoSpace),
		"toggle_case_char":   specialEntry(SpecialToggleCaseChar),
		"repeat":             specialEntry(SpecialRepeat),
		"undo":               specialEntry(SpecialUndo),
		"redo":               specialEntry(SpecialRedo),
		"undo_line":          specialEntry(SpecialUndoLine),
		"jump_older":         specialEntry(SpecialJumpOlder),
		"jump_newer":         specialEntry(SpecialJumpNewer),
		"change_older":       specialEntry(SpecialChangeOlder),
		"change_newer":       specialEntry(SpecialChangeNewer),
		"search_word":        specialEntry(SpecialSearchWordForward),
		"search_word_back":   specialEntry(SpecialSearchWordBack),
		"reselect_visual":    specialEntry(SpecialReselectVisual),
		"half_page_down":     specialEntry(SpecialHalfPageDown),
		"half_page_up":       specialEntry(SpecialHalfPageUp),
		"page_down":          specialEntry(SpecialPageDown),
		"page_up":            specialEntry(SpecialPageUp),
		"scroll_line_down":   specialEntry(SpecialScrollLineDown),
		"scroll_line_up":     specialEntry(SpecialScrollLineUp),
		"scroll_center":      specialEntry(SpecialScrollCenter),
		"file_info":          specialEntry(SpecialFileInfo),
	}
}

// ActionEntry resolves a canonical action name to its KeyEntry
// Returns zero KeyEntry and false if name is unknown
func ActionEntry(name string) (KeyEntry, bool) {
	entry, ok := actionRegistry[name]
	return entry, ok
}

// IsActionName returns true if name is a registered action
func IsActionName(name string) bool {
	_, ok := actionRegistry[name]
	return ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
