package vim

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Buffer is one open file: text, cursor, mode and per-buffer history
type Buffer struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	Filetype string `json:"filetype"`

	Lines  []string `json:"lines"`
	Cursor Position `json:"cursor"`
	Mode   Mode     `json:"mode"`

	Modified bool `json:"modified"`
	Readonly bool `json:"readonly"`

	Marks map[rune]Mark `json:"marks"`
	Folds []Fold        `json:"folds,omitempty"`

	Undo []Snapshot `json:"undo,omitempty"`
	Redo []Snapshot `json:"redo,omitempty"`

	ChangelistPos int       `json:"changelist_pos"`
	LastInsert    *Position `json:"last_insert,omitempty"`

	// First visible line, moved by z commands and scrolling
	TopLine int `json:"top_line"`
}

var filetypes = map[string]string{
	".go":   "go",
	".js":   "javascript",
	".ts":   "typescript",
	".tsx":  "typescriptreact",
	".py":   "python",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".md":   "markdown",
	".json": "json",
	".toml": "toml",
	".yaml": "yaml",
	".yml":  "yaml",
	".html": "html",
	".css":  "css",
	".sh":   "sh",
	".txt":  "text",
}

// NewBuffer creates a buffer from text; an empty text yields a single empty line
func NewBuffer(id int, filename, text string) *Buffer {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	b := &Buffer{
		ID:       id,
		Filename: filename,
		Filetype: filetypes[strings.ToLower(filepath.Ext(filename))],
		Lines:    lines,
		Marks:    make(map[rune]Mark),
	}
	return b
}

// Text returns the buffer content joined by newlines
func (b *Buffer) Text() string {
	return strings.Join(b.Lines, "\n")
}

// LineCount returns the number of lines, always at least one
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

func (b *Buffer) clone() *Buffer {
	c := *b
	c.Lines = append([]string(nil), b.Lines...)
	c.Marks = make(map[rune]Mark, len(b.Marks))
	for k, v := range b.Marks {
		c.Marks[k] = v
	}
	c.Folds = append([]Fold(nil), b.Folds...)
	// Snapshots are never mutated after creation and can be shared
	c.Undo = append([]Snapshot(nil), b.Undo...)
	c.Redo = append([]Snapshot(nil), b.Redo...)
	if b.LastInsert != nil {
		p := *b.LastInsert
		c.LastInsert = &p
	}
	return &c
}

// === Line access ===

func (b *Buffer) line(i int) string {
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

func (b *Buffer) runes(i int) []rune {
	return []rune(b.line(i))
}

func (b *Buffer) lineLen(i int) int {
	return utf8.RuneCountInString(b.line(i))
}

// charAt returns the rune at (line, col), or 0 outside the text
func (b *Buffer) charAt(line, col int) rune {
	if col < 0 {
		return 0
	}
	r := b.runes(line)
	if col >= len(r) {
		return 0
	}
	return r[col]
}

func (b *Buffer) setLine(i int, s string) {
	b.Lines[i] = s
}

func (b *Buffer) lastLine() int {
	return len(b.Lines) - 1
}

// maxCol is the last addressable column in normal mode
func (b *Buffer) maxCol(line int) int {
	return max(0, b.lineLen(line)-1)
}

func (b *Buffer) isBlank(line int) bool {
	return strings.TrimSpace(b.line(line)) == ""
}

// firstNonBlank returns the column of the first non-whitespace rune, or 0
func (b *Buffer) firstNonBlank(line int) int {
	for i, r := range b.runes(line) {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return 0
}

// indentOf returns the leading whitespace of a line
func (b *Buffer) indentOf(line int) string {
	s := b.line(line)
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// clampCursor enforces the cursor invariant for the buffer mode
func (b *Buffer) clampCursor() {
	b.Cursor.Line = clamp(b.Cursor.Line, 0, b.lastLine())
	limit := b.lineLen(b.Cursor.Line)
	if !b.Mode.allowsEOL() {
		limit = b.maxCol(b.Cursor.Line)
	}
	b.Cursor.Col = clamp(b.Cursor.Col, 0, limit)
}

func (b *Buffer) setCursor(line, col int) {
	b.Cursor = Position{Line: line, Col: col}
	b.clampCursor()
}

// allowsEOL reports whether the cursor may rest one past the last character
func (m Mode) allowsEOL() bool {
	switch m {
	case ModeInsert, ModeReplace:
		return true
	}
	return false
}

// === Edits ===

// insertLines inserts lines before index at
func (b *Buffer) insertLines(at int, lines ...string) {
	b.Lines = append(b.Lines[:at], append(append([]string(nil), lines...), b.Lines[at:]...)...)
	b.shiftMarks(at, len(lines))
}

// removeLines removes lines [from, to] inclusive, leaving at least one empty line
func (b *Buffer) removeLines(from, to int) {
	n := to - from + 1
	b.Lines = append(b.Lines[:from], b.Lines[to+1:]...)
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	b.dropMarks(from, to)
	b.shiftMarks(to+1, -n)
}

// shiftMarks moves marks at or after line by delta
func (b *Buffer) shiftMarks(line, delta int) {
	for k, m := range b.Marks {
		if m.Line >= line {
			m.Line = max(0, m.Line+delta)
			b.Marks[k] = m
		}
	}
	folds := b.Folds[:0]
	for _, f := range b.Folds {
		if f.Start >= line {
			f.Start += delta
			f.End += delta
		} else if f.End >= line {
			f.End += delta
		}
		if f.Start >= 0 && f.End >= f.Start {
			folds = append(folds, f)
		}
	}
	b.Folds = folds
}

// dropMarks forgets marks and folds that lived entirely on removed lines
func (b *Buffer) dropMarks(from, to int) {
	for k, m := range b.Marks {
		if m.Line >= from && m.Line <= to {
			delete(b.Marks, k)
		}
	}
	folds := b.Folds[:0]
	for _, f := range b.Folds {
		if f.Start < from || f.End > to {
			folds = append(folds, f)
		}
	}
	b.Folds = folds
}

// === Helpers ===

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// runeSlice returns s[from:to] by rune index, clamping both ends
func runeSlice(r []rune, from, to int) string {
	from = clamp(from, 0, len(r))
	to = clamp(to, from, len(r))
	return string(r[from:to])
}
