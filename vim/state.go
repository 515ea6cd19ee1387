// @lixen: #focus{state[editor,clone,getters]}
package vim

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-dojo/input"
)

// Settings holds the :set options the engine honours
type Settings struct {
	Number         bool   `json:"number" toml:"number"`
	RelativeNumber bool   `json:"relativenumber" toml:"relativenumber"`
	Wrap           bool   `json:"wrap" toml:"wrap"`
	ExpandTab      bool   `json:"expandtab" toml:"expandtab"`
	TabStop        int    `json:"tabstop" toml:"tabstop"`
	ShiftWidth     int    `json:"shiftwidth" toml:"shiftwidth"`
	AutoIndent     bool   `json:"autoindent" toml:"autoindent"`
	SmartIndent    bool   `json:"smartindent" toml:"smartindent"`
	IgnoreCase     bool   `json:"ignorecase" toml:"ignorecase"`
	SmartCase      bool   `json:"smartcase" toml:"smartcase"`
	IncSearch      bool   `json:"incsearch" toml:"incsearch"`
	HlSearch       bool   `json:"hlsearch" toml:"hlsearch"`
	ScrollOff      int    `json:"scrolloff" toml:"scrolloff"`
	CursorLine     bool   `json:"cursorline" toml:"cursorline"`
	Clipboard      string `json:"clipboard" toml:"clipboard"`
	TextWidth      int    `json:"textwidth" toml:"textwidth"`
	Lines          int    `json:"lines" toml:"lines"`
}

// DefaultSettings returns the option values of a fresh editor
func DefaultSettings() Settings {
	return Settings{
		Number:      true,
		Wrap:        true,
		ExpandTab:   true,
		TabStop:     4,
		ShiftWidth:  4,
		AutoIndent:  true,
		SmartIndent: true,
		SmartCase:   true,
		IncSearch:   true,
		HlSearch:    true,
		ScrollOff:   8,
		CursorLine:  true,
		TextWidth:   80,
		Lines:       40,
	}
}

// LeaderState is an open leader sequence awaiting its next key
type LeaderState struct {
	Active   bool      `json:"active"`
	Sequence string    `json:"sequence"`
	Deadline time.Time `json:"deadline"`
}

// BlockInsert replicates text typed on the first line of a block selection
type BlockInsert struct {
	FirstLine int  `json:"first_line"`
	LastLine  int  `json:"last_line"`
	Col       int  `json:"col"`
	Append    bool `json:"append"`
}

// InsertSession tracks one stay in insert or replace mode
type InsertSession struct {
	Target        input.ModeTarget `json:"target"`
	Start         Position         `json:"start"`
	Text          string           `json:"text"`
	Count         int              `json:"count"`
	Replaced      []rune           `json:"replaced,omitempty"`
	AwaitRegister bool             `json:"await_register"`
	Block         *BlockInsert     `json:"block,omitempty"`
	WasModified   bool             `json:"was_modified"`

	// Repeat template completed with the typed text on exit
	Repeat Repeat `json:"repeat"`
}

// State is the complete editor state; every engine call returns a fresh copy
type State struct {
	Buffers      []*Buffer `json:"buffers"`
	Active       int       `json:"active"`
	Alternate    int       `json:"alternate"`
	NextBufferID int       `json:"next_buffer_id"`

	Machine input.Machine `json:"machine"`

	Registers   Registers     `json:"registers"`
	GlobalMarks map[rune]Mark `json:"global_marks"`

	Jumplist   []JumpEntry `json:"jumplist,omitempty"`
	JumpPos    int         `json:"jump_pos"`
	Changelist []JumpEntry `json:"changelist,omitempty"`

	Visual     *VisualSelection `json:"visual,omitempty"`
	LastVisual *VisualSelection `json:"last_visual,omitempty"`

	Search SearchState `json:"search"`

	CommandLine    string   `json:"command_line"`
	CommandHistory []string `json:"command_history,omitempty"`
	CommandHistPos int      `json:"command_hist_pos"`

	Recording  rune   `json:"recording,omitempty"`
	RecordKeys string `json:"record_keys,omitempty"`
	LastMacro  rune   `json:"last_macro,omitempty"`

	LastFind *FindMotion `json:"last_find,omitempty"`
	Repeat   Repeat      `json:"repeat"`
	Leader   LeaderState `json:"leader"`

	Insert *InsertSession `json:"insert,omitempty"`

	Settings Settings `json:"settings"`

	Message     string      `json:"message"`
	MessageType MessageType `json:"message_type"`
}

// NewState creates an editor holding one buffer
func NewState(filename, text string) *State {
	s := &State{
		NextBufferID: 1,
		GlobalMarks:  make(map[rune]Mark),
		Registers:    Registers{Named: make(map[rune]Register)},
		Settings:     DefaultSettings(),
		Search:       SearchState{Forward: true},
	}
	s.Active = s.AddBuffer(filename, text)
	return s
}

// AddBuffer appends a buffer and returns its id without activating it
func (s *State) AddBuffer(filename, text string) int {
	id := s.NextBufferID
	s.NextBufferID++
	s.Buffers = append(s.Buffers, NewBuffer(id, filename, text))
	return id
}

// Clone returns a deep copy sharing only immutable undo snapshots
func (s *State) Clone() *State {
	c := *s
	c.Buffers = make([]*Buffer, len(s.Buffers))
	for i, b := range s.Buffers {
		c.Buffers[i] = b.clone()
	}

	c.Registers.Named = make(map[rune]Register, len(s.Registers.Named))
	for k, v := range s.Registers.Named {
		c.Registers.Named[k] = v
	}
	c.GlobalMarks = make(map[rune]Mark, len(s.GlobalMarks))
	for k, v := range s.GlobalMarks {
		c.GlobalMarks[k] = v
	}

	c.Jumplist = append([]JumpEntry(nil), s.Jumplist...)
	c.Changelist = append([]JumpEntry(nil), s.Changelist...)
	c.CommandHistory = append([]string(nil), s.CommandHistory...)
	c.Search.Matches = append([]Position(nil), s.Search.Matches...)
	c.Search.History = append([]string(nil), s.Search.History...)

	if s.Visual != nil {
		v := *s.Visual
		c.Visual = &v
	}
	if s.LastVisual != nil {
		v := *s.LastVisual
		c.LastVisual = &v
	}
	if s.LastFind != nil {
		f := *s.LastFind
		c.LastFind = &f
	}
	if s.Insert != nil {
		ins := *s.Insert
		ins.Replaced = append([]rune(nil), s.Insert.Replaced...)
		if s.Insert.Block != nil {
			blk := *s.Insert.Block
			ins.Block = &blk
		}
		c.Insert = &ins
	}
	return &c
}

// buffer returns the buffer with id, or nil
func (s *State) buffer(id int) *Buffer {
	for _, b := range s.Buffers {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *State) bufferIndex(id int) int {
	for i, b := range s.Buffers {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// buf returns the active buffer; a dangling active id is a broken invariant
func (s *State) buf() *Buffer {
	b := s.buffer(s.Active)
	if b == nil {
		panic(fmt.Sprintf("vim: active buffer %d does not exist", s.Active))
	}
	return b
}

// === Getters ===

// ActiveBuffer returns the active buffer; callers must not mutate it
func (s *State) ActiveBuffer() *Buffer {
	return s.buf()
}

// Cursor returns the active buffer cursor
func (s *State) Cursor() Position {
	return s.buf().Cursor
}

// Mode returns the observable mode, reporting operator-pending while an operator awaits its motion
func (s *State) Mode() Mode {
	m := s.buf().Mode
	if m == ModeNormal {
		switch s.Machine.State {
		case input.StateOperatorWait, input.StateOperatorCharWait,
			input.StateOperatorObject, input.StateOperatorPrefix:
			return ModeOperatorPending
		}
	}
	return m
}

// Lines returns a copy of the active buffer content
func (s *State) Lines() []string {
	return append([]string(nil), s.buf().Lines...)
}

// BufferCount returns the number of open buffers
func (s *State) BufferCount() int {
	return len(s.Buffers)
}

// LastMessage returns the most recent status message and its severity
func (s *State) LastMessage() (string, MessageType) {
	return s.Message, s.MessageType
}

// Pending returns the keys of an incomplete normal mode command
func (s *State) Pending() string {
	return s.Machine.Pending()
}
