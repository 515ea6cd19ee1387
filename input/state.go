package input

// InputMode selects which key tables the parser consults
// Set by the editor engine whenever its mode changes
type InputMode uint8

const (
	ModeNormal InputMode = iota
	ModeVisual
)

// InputState tracks the Normal/Visual parser state machine
type InputState uint8

const (
	StateIdle               InputState = iota // Default state, awaiting initial key
	StateCount                                // Accumulating numeric prefix (1-9 start, 0 continues)
	StateRegisterAwait                        // After '"', awaiting register name
	StateCharWait                             // After f/F/t/T/'/`, awaiting target character
	StateOperatorWait                         // After operator, awaiting motion, object or second operator
	StateOperatorCharWait                     // After operator + f/F/t/T/'/`, awaiting target character
	StateOperatorObject                       // After operator + i/a, awaiting object key
	StatePrefix                               // After g/z/[/], awaiting second key
	StateOperatorPrefix                       // After operator + g, awaiting motion or doubled operator
	StateObjectAwait                          // Visual i/a, awaiting object key
	StateReplaceAwait                         // After r, awaiting replacement character
	StateMarkSetAwait                         // After m, awaiting mark name
	StateMacroRecordAwait                     // After q, awaiting register name
	StateMacroPlayAwait                       // After @, awaiting register name, @ or :
)
