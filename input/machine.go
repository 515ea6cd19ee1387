package input

// Machine is the Normal/Visual mode key parser
// All fields are plain data so the pending sequence survives state snapshots;
// the key table is supplied per call and never stored
type Machine struct {
	Mode  InputMode  `json:"mode"`
	State InputState `json:"state"`

	Count1     int        `json:"count1,omitempty"`
	Count2     int        `json:"count2,omitempty"`
	Register   rune       `json:"register,omitempty"`
	Operator   OperatorOp `json:"operator,omitempty"`
	CharMotion MotionOp   `json:"char_motion,omitempty"`
	Prefix     rune       `json:"prefix,omitempty"`

	// Pending keys for status line display
	Buffer string `json:"buffer,omitempty"`
}

// SetMode updates the parser's mode context, clearing pending state on change
func (m *Machine) SetMode(mode InputMode) {
	if m.Mode != mode {
		m.Reset()
	}
	m.Mode = mode
}

// Pending returns the current command buffer for UI display
func (m *Machine) Pending() string {
	return m.Buffer
}

// Idle reports whether no sequence is in progress
func (m *Machine) Idle() bool {
	return m.State == StateIdle
}

// Reset clears all pending state
func (m *Machine) Reset() {
	m.State = StateIdle
	m.Count1 = 0
	m.Count2 = 0
	m.Register = 0
	m.Operator = OperatorNone
	m.CharMotion = MotionNone
	m.Prefix = 0
	m.Buffer = ""
}

// Process parses one key and returns an Intent
// Returns nil if input is incomplete or the sequence was discarded
func (m *Machine) Process(kt *KeyTable, key Key) *Intent {
	// Escape cancels any pending sequence silently
	if entry, ok := kt.SpecialKeys[stripShift(key)]; ok && entry.Behavior == BehaviorEscape {
		wasPending := m.State != StateIdle
		m.Reset()
		if wasPending {
			return nil
		}
		return &Intent{Type: IntentEscape, Count: 1}
	}

	m.Buffer += EncodeKey(key)

	switch m.State {
	case StateIdle, StateCount:
		return m.processIdleOrCount(kt, key)
	case StateRegisterAwait:
		return m.processRegisterAwait(key)
	case StateCharWait:
		return m.completeCharMotion(key)
	case StateOperatorWait:
		return m.processOperatorWait(kt, key)
	case StateOperatorCharWait:
		return m.completeOperatorCharMotion(key)
	case StateOperatorObject:
		return m.completeOperatorObject(kt, key)
	case StatePrefix:
		return m.processPrefix(kt, key)
	case StateOperatorPrefix:
		return m.processOperatorPrefix(kt, key)
	case StateObjectAwait:
		return m.completeVisualObject(kt, key)
	case StateReplaceAwait:
		return m.completeCharIntent(key, IntentReplaceChar)
	case StateMarkSetAwait:
		return m.completeCharIntent(key, IntentMarkSet)
	case StateMacroRecordAwait:
		return m.completeCharIntent(key, IntentMacroRecord)
	case StateMacroPlayAwait:
		return m.completeCharIntent(key, IntentMacroPlay)
	}
	m.Reset()
	return nil
}

// === Normal Mode Processing ===

func (m *Machine) processIdleOrCount(kt *KeyTable, key Key) *Intent {
	if !key.Printable() {
		entry, ok := kt.SpecialKeys[stripShift(key)]
		if !ok {
			m.Reset()
			return nil
		}
		return m.handleEntry(entry, 0)
	}

	r := key.Rune
	if r >= '1' && r <= '9' {
		m.Count1 = accumulateCount(m.Count1, r)
		m.State = StateCount
		return nil
	}
	if r == '0' && m.Count1 > 0 {
		m.Count1 = accumulateCount(m.Count1, r)
		return nil
	}

	if m.Mode == ModeVisual {
		if entry, ok := kt.VisualRunes[r]; ok {
			return m.handleEntry(entry, r)
		}
	}

	entry, ok := kt.NormalRunes[r]
	if !ok {
		m.Reset()
		return nil
	}
	return m.handleEntry(entry, r)
}

func (m *Machine) handleEntry(entry KeyEntry, key rune) *Intent {
	switch entry.Behavior {
	case BehaviorMotion:
		return m.finish(&Intent{Type: IntentMotion, Motion: entry.Motion})

	case BehaviorCharWait:
		m.CharMotion = entry.Motion
		m.State = StateCharWait
		return nil

	case BehaviorOperator:
		if m.Mode == ModeVisual {
			return m.finish(&Intent{Type: IntentOperatorVisual, Operator: entry.Operator})
		}
		m.Operator = entry.Operator
		m.State = StateOperatorWait
		return nil

	case BehaviorPrefix:
		m.Prefix = key
		m.State = StatePrefix
		return nil

	case BehaviorPrefixRegister:
		m.State = StateRegisterAwait
		return nil

	case BehaviorPrefixMacro:
		m.State = StateMacroPlayAwait
		return nil

	case BehaviorPrefixRecord:
		m.State = StateMacroRecordAwait
		return nil

	case BehaviorPrefixMark:
		m.State = StateMarkSetAwait
		return nil

	case BehaviorReplaceWait:
		m.State = StateReplaceAwait
		return nil

	case BehaviorObjectPrefix:
		m.Prefix = key
		m.State = StateObjectAwait
		return nil

	case BehaviorModeSwitch:
		return m.finish(&Intent{Type: IntentModeSwitch, ModeTarget: entry.ModeTarget})

	case BehaviorSpecial:
		return m.finish(&Intent{Type: IntentSpecial, Special: entry.Special})
	}

	m.Reset()
	return nil
}

func (m *Machine) processRegisterAwait(key Key) *Intent {
	if !key.Printable() {
		m.Reset()
		return nil
	}
	m.Register = key.Rune
	if m.Count1 > 0 {
		m.State = StateCount
	} else {
		m.State = StateIdle
	}
	return nil
}

func (m *Machine) completeCharMotion(key Key) *Intent {
	ch, ok := targetChar(key)
	if !ok {
		m.Reset()
		return nil
	}
	return m.finish(&Intent{Type: IntentCharMotion, Motion: m.CharMotion, Char: ch})
}

func (m *Machine) completeCharIntent(key Key, t IntentType) *Intent {
	ch, ok := targetChar(key)
	if !ok {
		m.Reset()
		return nil
	}
	return m.finish(&Intent{Type: t, Char: ch})
}

func (m *Machine) processOperatorWait(kt *KeyTable, key Key) *Intent {
	if !key.Printable() {
		entry, ok := kt.SpecialKeys[stripShift(key)]
		if !ok || entry.Behavior != BehaviorMotion {
			m.Reset()
			return nil
		}
		return m.finish(&Intent{Type: IntentOperatorMotion, Operator: m.Operator, Motion: entry.Motion})
	}

	r := key.Rune

	// Count after operator
	if r >= '1' && r <= '9' {
		m.Count2 = accumulateCount(m.Count2, r)
		return nil
	}
	if r == '0' && m.Count2 > 0 {
		m.Count2 = accumulateCount(m.Count2, r)
		return nil
	}

	// Doubled operator (dd, >>, g~~)
	if double, ok := kt.OperatorDouble[m.Operator]; ok && r == double {
		return m.finish(&Intent{Type: IntentOperatorLine, Operator: m.Operator})
	}

	if r == 'i' || r == 'a' {
		m.Prefix = r
		m.State = StateOperatorObject
		return nil
	}

	entry, ok := kt.OperatorMotions[r]
	if !ok {
		m.Reset()
		return nil
	}

	switch entry.Behavior {
	case BehaviorCharWait:
		m.CharMotion = entry.Motion
		m.State = StateOperatorCharWait
		return nil
	case BehaviorPrefix:
		m.Prefix = r
		m.State = StateOperatorPrefix
		return nil
	case BehaviorMotion:
		return m.finish(&Intent{Type: IntentOperatorMotion, Operator: m.Operator, Motion: entry.Motion})
	}

	m.Reset()
	return nil
}

func (m *Machine) completeOperatorCharMotion(key Key) *Intent {
	ch, ok := targetChar(key)
	if !ok {
		m.Reset()
		return nil
	}
	return m.finish(&Intent{
		Type:     IntentOperatorCharMotion,
		Operator: m.Operator,
		Motion:   m.CharMotion,
		Char:     ch,
	})
}

func (m *Machine) completeOperatorObject(kt *KeyTable, key Key) *Intent {
	obj, ok := lookupObject(kt, key)
	if !ok {
		m.Reset()
		return nil
	}
	return m.finish(&Intent{
		Type:     IntentOperatorTextObject,
		Operator: m.Operator,
		Object:   obj,
		Inner:    m.Prefix == 'i',
	})
}

func (m *Machine) completeVisualObject(kt *KeyTable, key Key) *Intent {
	obj, ok := lookupObject(kt, key)
	if !ok {
		m.Reset()
		return nil
	}
	return m.finish(&Intent{Type: IntentTextObject, Object: obj, Inner: m.Prefix == 'i'})
}

func (m *Machine) processPrefix(kt *KeyTable, key Key) *Intent {
	// z<CR> is the only prefix sequence ending in a named key
	if m.Prefix == 'z' && key.IsNamed(KeyEnter) {
		return m.finish(&Intent{Type: IntentSpecial, Special: SpecialScrollTopFirstNonWS})
	}
	if !key.Printable() {
		m.Reset()
		return nil
	}

	entry, ok := kt.Prefixes[m.Prefix][key.Rune]
	if !ok {
		m.Reset()
		return nil
	}
	return m.handleEntry(entry, key.Rune)
}

func (m *Machine) processOperatorPrefix(kt *KeyTable, key Key) *Intent {
	if !key.Printable() {
		m.Reset()
		return nil
	}

	// g~g~, gugu, gUgU
	entry, ok := kt.Prefixes[m.Prefix][key.Rune]
	if !ok {
		m.Reset()
		return nil
	}
	if entry.Behavior == BehaviorOperator && entry.Operator == m.Operator {
		return m.finish(&Intent{Type: IntentOperatorLine, Operator: m.Operator})
	}
	if entry.Behavior != BehaviorMotion {
		m.Reset()
		return nil
	}
	return m.finish(&Intent{Type: IntentOperatorMotion, Operator: m.Operator, Motion: entry.Motion})
}

// === Helper Methods ===

// finish stamps count, register and command onto the intent and resets the parser
func (m *Machine) finish(intent *Intent) *Intent {
	intent.Count = m.effectiveCount()
	intent.RawCount = m.rawCount()
	intent.Register = m.Register
	intent.Command = m.Buffer
	m.Reset()
	return intent
}

func (m *Machine) effectiveCount() int {
	c1, c2 := m.Count1, m.Count2
	if c1 == 0 {
		c1 = 1
	}
	if c2 == 0 {
		c2 = 1
	}
	return c1 * c2
}

func (m *Machine) rawCount() int {
	if m.Count1 == 0 && m.Count2 == 0 {
		return 0
	}
	return m.effectiveCount()
}

func accumulateCount(count int, key rune) int {
	count = count*10 + int(key-'0')
	if count > 9999 {
		count = 9999
	}
	return count
}

// targetChar accepts printable keys plus Tab as a literal target
func targetChar(key Key) (rune, bool) {
	if key.Printable() {
		return key.Rune, true
	}
	if key.IsNamed(KeyTab) {
		return '\t', true
	}
	return 0, false
}

func lookupObject(kt *KeyTable, key Key) (TextObjectOp, bool) {
	if !key.Printable() {
		return ObjectNone, false
	}
	obj, ok := kt.TextObjects[key.Rune]
	return obj, ok
}

func stripShift(key Key) Key {
	key.Shift = false
	return key
}
