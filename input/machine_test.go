package input

import "testing"

// feed processes a key sequence and returns every emitted intent
func feed(m *Machine, kt *KeyTable, seq string) []*Intent {
	var out []*Intent
	for _, k := range ParseKeys(seq) {
		if intent := m.Process(kt, k); intent != nil {
			out = append(out, intent)
		}
	}
	return out
}

// feedOne expects exactly one intent from the sequence
func feedOne(t *testing.T, seq string) *Intent {
	t.Helper()
	var m Machine
	intents := feed(&m, DefaultKeyTable(), seq)
	if len(intents) != 1 {
		t.Fatalf("%q: expected 1 intent, got %d", seq, len(intents))
	}
	if !m.Idle() {
		t.Errorf("%q: machine not idle after intent", seq)
	}
	return intents[0]
}

func TestMachineMotionCount(t *testing.T) {
	intent := feedOne(t, "3w")
	if intent.Type != IntentMotion || intent.Motion != MotionWordForward {
		t.Errorf("3w: expected word motion, got type=%d motion=%d", intent.Type, intent.Motion)
	}
	if intent.Count != 3 || intent.RawCount != 3 {
		t.Errorf("3w: expected count 3, got %d (raw %d)", intent.Count, intent.RawCount)
	}

	intent = feedOne(t, "G")
	if intent.RawCount != 0 || intent.Count != 1 {
		t.Errorf("G: expected raw count 0 count 1, got raw %d count %d", intent.RawCount, intent.Count)
	}

	intent = feedOne(t, "10j")
	if intent.Count != 10 {
		t.Errorf("10j: expected count 10, got %d", intent.Count)
	}
}

func TestMachineZeroIsMotionWithoutCount(t *testing.T) {
	intent := feedOne(t, "0")
	if intent.Type != IntentMotion || intent.Motion != MotionLineStart {
		t.Errorf("0: expected line start motion, got motion=%d", intent.Motion)
	}
}

func TestMachineOperatorCountsMultiply(t *testing.T) {
	intent := feedOne(t, "2d3w")
	if intent.Type != IntentOperatorMotion || intent.Operator != OperatorDelete {
		t.Fatalf("2d3w: expected delete operator motion, got type=%d", intent.Type)
	}
	if intent.Count != 6 {
		t.Errorf("2d3w: expected count 6, got %d", intent.Count)
	}
	if intent.Command != "2d3w" {
		t.Errorf("2d3w: expected command echo, got %q", intent.Command)
	}
}

func TestMachineDoubledOperators(t *testing.T) {
	cases := map[string]OperatorOp{
		"dd":   OperatorDelete,
		"yy":   OperatorYank,
		"cc":   OperatorChange,
		">>":   OperatorIndent,
		"<<":   OperatorDedent,
		"g~~":  OperatorToggleCase,
		"guu":  OperatorLower,
		"gUU":  OperatorUpper,
		"gUgU": OperatorUpper,
		"gqq":  OperatorFormat,
	}
	for seq, op := range cases {
		intent := feedOne(t, seq)
		if intent.Type != IntentOperatorLine || intent.Operator != op {
			t.Errorf("%s: expected line operator %d, got type=%d op=%d", seq, op, intent.Type, intent.Operator)
		}
	}
}

func TestMachineOperatorTextObject(t *testing.T) {
	intent := feedOne(t, "ci(")
	if intent.Type != IntentOperatorTextObject {
		t.Fatalf("ci(: expected text object intent, got %d", intent.Type)
	}
	if intent.Operator != OperatorChange || intent.Object != ObjectParen || !intent.Inner {
		t.Errorf("ci(: got op=%d obj=%d inner=%v", intent.Operator, intent.Object, intent.Inner)
	}

	intent = feedOne(t, "daw")
	if intent.Object != ObjectWord || intent.Inner {
		t.Errorf("daw: expected outer word, got obj=%d inner=%v", intent.Object, intent.Inner)
	}
}

func TestMachineOperatorCharMotion(t *testing.T) {
	intent := feedOne(t, "dt;")
	if intent.Type != IntentOperatorCharMotion || intent.Motion != MotionTillForward || intent.Char != ';' {
		t.Errorf("dt;: got type=%d motion=%d char=%q", intent.Type, intent.Motion, intent.Char)
	}

	intent = feedOne(t, "d'a")
	if intent.Motion != MotionMarkLine || intent.Char != 'a' {
		t.Errorf("d'a: expected mark line motion to 'a', got motion=%d char=%q", intent.Motion, intent.Char)
	}
}

func TestMachineOperatorPrefixMotion(t *testing.T) {
	intent := feedOne(t, "dgg")
	if intent.Type != IntentOperatorMotion || intent.Motion != MotionFileStart {
		t.Errorf("dgg: expected file start motion, got motion=%d", intent.Motion)
	}
}

func TestMachineRegisterPrefix(t *testing.T) {
	intent := feedOne(t, "\"a2yy")
	if intent.Register != 'a' {
		t.Errorf("\"a2yy: expected register 'a', got %q", intent.Register)
	}
	if intent.Count != 2 || intent.Type != IntentOperatorLine {
		t.Errorf("\"a2yy: expected 2yy, got type=%d count=%d", intent.Type, intent.Count)
	}

	intent = feedOne(t, "2\"_dd")
	if intent.Register != '_' || intent.Count != 2 {
		t.Errorf("2\"_dd: expected black hole count 2, got reg=%q count=%d", intent.Register, intent.Count)
	}
}

func TestMachineEscapeCancels(t *testing.T) {
	var m Machine
	kt := DefaultKeyTable()

	intents := feed(&m, kt, "2d<Esc>")
	if len(intents) != 0 {
		t.Errorf("2d<Esc>: expected silent cancel, got %d intents", len(intents))
	}
	if !m.Idle() || m.Count1 != 0 || m.Operator != OperatorNone {
		t.Errorf("2d<Esc>: expected idle machine, got state=%d count=%d op=%d", m.State, m.Count1, m.Operator)
	}

	intents = feed(&m, kt, "<Esc>")
	if len(intents) != 1 || intents[0].Type != IntentEscape {
		t.Errorf("bare <Esc>: expected escape intent, got %v", intents)
	}
}

func TestMachineInvalidSequenceResets(t *testing.T) {
	var m Machine
	kt := DefaultKeyTable()

	if intents := feed(&m, kt, "dQ"); len(intents) != 0 {
		t.Errorf("dQ: expected no intent, got %d", len(intents))
	}
	if !m.Idle() {
		t.Errorf("dQ: expected idle machine, got state=%d", m.State)
	}

	intent := feedOne(t, "x")
	if intent.Special != SpecialDeleteChar {
		t.Errorf("x after reset: expected delete char, got %d", intent.Special)
	}
}

func TestMachineAwaits(t *testing.T) {
	if intent := feedOne(t, "ra"); intent.Type != IntentReplaceChar || intent.Char != 'a' {
		t.Errorf("ra: got type=%d char=%q", intent.Type, intent.Char)
	}
	if intent := feedOne(t, "mx"); intent.Type != IntentMarkSet || intent.Char != 'x' {
		t.Errorf("mx: got type=%d char=%q", intent.Type, intent.Char)
	}
	if intent := feedOne(t, "qa"); intent.Type != IntentMacroRecord || intent.Char != 'a' {
		t.Errorf("qa: got type=%d char=%q", intent.Type, intent.Char)
	}
	if intent := feedOne(t, "3@b"); intent.Type != IntentMacroPlay || intent.Char != 'b' || intent.Count != 3 {
		t.Errorf("3@b: got type=%d char=%q count=%d", intent.Type, intent.Char, intent.Count)
	}
	if intent := feedOne(t, "z<Enter>"); intent.Special != SpecialScrollTopFirstNonWS {
		t.Errorf("z<CR>: got special=%d", intent.Special)
	}
	if intent := feedOne(t, "[z"); intent.Motion != MotionFoldStart {
		t.Errorf("[z: got motion=%d", intent.Motion)
	}
}

func TestMachineVisualMode(t *testing.T) {
	var m Machine
	m.SetMode(ModeVisual)
	kt := DefaultKeyTable()

	intents := feed(&m, kt, "d")
	if len(intents) != 1 || intents[0].Type != IntentOperatorVisual || intents[0].Operator != OperatorDelete {
		t.Fatalf("visual d: expected immediate operator, got %v", intents)
	}

	intents = feed(&m, kt, "o")
	if len(intents) != 1 || intents[0].Special != SpecialVisualSwapEnds {
		t.Errorf("visual o: expected swap ends, got %v", intents)
	}

	intents = feed(&m, kt, "iw")
	if len(intents) != 1 || intents[0].Type != IntentTextObject || !intents[0].Inner {
		t.Errorf("visual iw: expected inner text object, got %v", intents)
	}

	intents = feed(&m, kt, "gU")
	if len(intents) != 1 || intents[0].Operator != OperatorUpper {
		t.Errorf("visual gU: expected upper operator, got %v", intents)
	}
}

func TestMachineCountClamp(t *testing.T) {
	intent := feedOne(t, "123456l")
	if intent.Count != 9999 {
		t.Errorf("count clamp: expected 9999, got %d", intent.Count)
	}
}
