// @lixen: #focus{control[textobject,range]}
package vim

import (
	"slices"

	"github.com/lixenwraith/vi-dojo/input"
)

// TextObjectFunc derives a half-open range from structure around the cursor
// Returns false when no enclosing structure exists
type TextObjectFunc func(b *Buffer, count int, inner bool) (TextRange, bool)

func charRange(line, from, to int) TextRange {
	return TextRange{Start: Position{line, from}, End: Position{line, to}}
}

// ObjectWord implements iw/aw
func ObjectWord(b *Buffer, count int, inner bool) (TextRange, bool) {
	return wordObject(b, count, inner, false)
}

// ObjectWORD implements iW/aW
func ObjectWORD(b *Buffer, count int, inner bool) (TextRange, bool) {
	return wordObject(b, count, inner, true)
}

func wordObject(b *Buffer, count int, inner, bigWord bool) (TextRange, bool) {
	line := b.Cursor.Line
	r := b.runes(line)
	if len(r) == 0 {
		return TextRange{}, false
	}
	col := min(b.Cursor.Col, len(r)-1)

	runEnd := func(from int) int {
		t := charType(r[from], bigWord)
		for from < len(r) && charType(r[from], bigWord) == t {
			from++
		}
		return from
	}

	start := col
	t := charType(r[col], bigWord)
	for start > 0 && charType(r[start-1], bigWord) == t {
		start--
	}
	end := runEnd(col)

	if inner {
		// Every further count consumes one more run, whitespace included
		for i := 1; i < count && end < len(r); i++ {
			end = runEnd(end)
		}
		return charRange(line, start, end), true
	}

	if t == CharTypeSpace {
		// Leading whitespace plus the following word
		if end < len(r) {
			end = runEnd(end)
		}
		for i := 1; i < count && end < len(r); i++ {
			end = runEnd(runEnd(end))
		}
		return charRange(line, start, end), true
	}

	for i := 1; i < count && end < len(r); i++ {
		if charType(r[end], bigWord) == CharTypeSpace {
			end = runEnd(end)
		}
		if end < len(r) {
			end = runEnd(end)
		}
	}
	if end < len(r) && isSpace(r[end]) {
		for end < len(r) && isSpace(r[end]) {
			end++
		}
	} else {
		for start > 0 && isSpace(r[start-1]) {
			start--
		}
	}
	return charRange(line, start, end), true
}

// ObjectSentence implements is/as within the cursor line
func ObjectSentence(b *Buffer, _ int, inner bool) (TextRange, bool) {
	line := b.Cursor.Line
	r := b.runes(line)
	if len(r) == 0 {
		return TextRange{}, false
	}
	col := min(b.Cursor.Col, len(r)-1)

	isEnd := func(i int) bool {
		return (r[i] == '.' || r[i] == '!' || r[i] == '?') && (i+1 == len(r) || isSpace(r[i+1]))
	}

	start := col
	for start > 0 && !isEnd(start-1) {
		start--
	}
	for start < col && isSpace(r[start]) {
		start++
	}
	end := col
	for end < len(r) && !isEnd(end) {
		end++
	}
	end = min(end+1, len(r))

	if !inner {
		for end < len(r) && isSpace(r[end]) {
			end++
		}
	}
	return charRange(line, start, end), true
}

// ObjectParagraph implements ip/ap; the result is linewise
func ObjectParagraph(b *Buffer, count int, inner bool) (TextRange, bool) {
	line := b.Cursor.Line
	blank := b.isBlank(line)

	start := line
	for start > 0 && b.isBlank(start-1) == blank {
		start--
	}
	end := line
	for end < b.lastLine() && b.isBlank(end+1) == blank {
		end++
	}

	extend := func(from int) int {
		if from >= b.lastLine() {
			return from
		}
		kind := b.isBlank(from + 1)
		from++
		for from < b.lastLine() && b.isBlank(from+1) == kind {
			from++
		}
		return from
	}

	if !inner && !blank {
		if end < b.lastLine() {
			end = extend(end)
		} else {
			for start > 0 && b.isBlank(start-1) {
				start--
			}
		}
	}
	for i := 1; i < count; i++ {
		end = extend(end)
		if !inner {
			end = extend(end)
		}
	}
	return TextRange{Start: Position{start, 0}, End: Position{end, 0}, Linewise: true}, true
}

// quoteObject selects the quote pair enclosing the cursor, or the next pair to its right
func quoteObject(quote rune) TextObjectFunc {
	return func(b *Buffer, _ int, inner bool) (TextRange, bool) {
		line := b.Cursor.Line
		r := b.runes(line)
		col := b.Cursor.Col

		var quotes []int
		for i, c := range r {
			if c == quote && (i == 0 || r[i-1] != '\\') {
				quotes = append(quotes, i)
			}
		}

		open, closeAt := -1, -1
		for i := 0; i+1 < len(quotes); i += 2 {
			if quotes[i] <= col && col <= quotes[i+1] {
				open, closeAt = quotes[i], quotes[i+1]
				break
			}
		}
		if open < 0 {
			for i := 0; i+1 < len(quotes); i += 2 {
				if quotes[i] > col {
					open, closeAt = quotes[i], quotes[i+1]
					break
				}
			}
		}
		if open < 0 {
			return TextRange{}, false
		}

		if inner {
			return charRange(line, open+1, closeAt), true
		}
		start, end := open, closeAt+1
		if end < len(r) && isSpace(r[end]) {
			for end < len(r) && isSpace(r[end]) {
				end++
			}
		} else {
			for start > 0 && isSpace(r[start-1]) {
				start--
			}
		}
		return charRange(line, start, end), true
	}
}

// bracketObject selects the innermost pair of open/closer enclosing the cursor
func bracketObject(open, closer rune) TextObjectFunc {
	return func(b *Buffer, count int, inner bool) (TextRange, bool) {
		w := newTextWalker(b)
		p := b.Cursor
		var start Position
		found := false

		if w.at(p) == open {
			start, found = p, true
			count--
		} else if w.at(p) == closer {
			// Treat the closer as already inside; search back from it
			if s, ok := scanOpen(w, p, open, closer); ok {
				start, found = s, true
				count--
			}
		}
		for count > 0 {
			from := p
			if found {
				from = start
			}
			s, ok := scanOpen(w, from, open, closer)
			if !ok {
				return TextRange{}, false
			}
			start, found = s, true
			count--
		}
		if !found {
			return TextRange{}, false
		}

		end, ok := scanClose(w, start, open, closer)
		if !ok {
			return TextRange{}, false
		}

		if !inner {
			return TextRange{Start: start, End: Position{end.Line, end.Col + 1}}, true
		}
		innerStart := Position{start.Line, start.Col + 1}
		if innerStart.Col >= len(w.lines[start.Line]) && start.Line < end.Line {
			innerStart = Position{start.Line + 1, 0}
		}
		innerEnd := end
		// Closer alone on its line keeps its indentation out of the range
		if end.Line > innerStart.Line && b.firstNonBlank(end.Line) == end.Col {
			innerEnd = Position{end.Line - 1, len(w.lines[end.Line-1])}
		}
		return TextRange{Start: innerStart, End: innerEnd}, true
	}
}

// scanOpen walks backward from p to the unmatched open delimiter
func scanOpen(w *textWalker, p Position, open, closer rune) (Position, bool) {
	depth := 0
	for {
		n, ok := w.prev(p)
		if !ok || n == p {
			return p, false
		}
		p = n
		switch w.at(p) {
		case closer:
			depth++
		case open:
			if depth == 0 {
				return p, true
			}
			depth--
		}
	}
}

// scanClose walks forward from the open delimiter at p to its match
func scanClose(w *textWalker, p Position, open, closer rune) (Position, bool) {
	depth := 0
	for {
		n, ok := w.next(p)
		if !ok {
			return p, false
		}
		p = n
		switch w.at(p) {
		case open:
			depth++
		case closer:
			if depth == 0 {
				return p, true
			}
			depth--
		}
	}
}

// tagSpan is one matched open/close tag pair in flat rune offsets
type tagSpan struct {
	openStart, openEnd   int
	closeStart, closeEnd int
}

// ObjectTag implements it/at with nesting depth tracking
func ObjectTag(b *Buffer, count int, inner bool) (TextRange, bool) {
	flat, lineStarts := flatten(b)
	cursor := lineStarts[b.Cursor.Line] + b.Cursor.Col

	type openTag struct {
		name       string
		start, end int
	}
	var stack []openTag
	var spans []tagSpan

	for i := 0; i < len(flat); i++ {
		if flat[i] != '<' {
			continue
		}
		j := i + 1
		closing := j < len(flat) && flat[j] == '/'
		if closing {
			j++
		}
		nameStart := j
		for j < len(flat) && (isWordChar(flat[j]) || flat[j] == '-' || flat[j] == ':') {
			j++
		}
		if j == nameStart {
			continue
		}
		name := string(flat[nameStart:j])
		for j < len(flat) && flat[j] != '>' {
			j++
		}
		if j >= len(flat) {
			break
		}
		selfClosing := flat[j-1] == '/'
		end := j + 1

		switch {
		case selfClosing:
		case !closing:
			stack = append(stack, openTag{name, i, end})
		default:
			for k := len(stack) - 1; k >= 0; k-- {
				if stack[k].name == name {
					spans = append(spans, tagSpan{stack[k].start, stack[k].end, i, end})
					stack = stack[:k]
					break
				}
			}
		}
		i = j
	}

	var enclosing []tagSpan
	for _, s := range spans {
		if s.openStart <= cursor && cursor < s.closeEnd {
			enclosing = append(enclosing, s)
		}
	}
	if len(enclosing) == 0 {
		return TextRange{}, false
	}
	// Innermost first; a count selects an outer pair
	slices.SortFunc(enclosing, func(a, b tagSpan) int {
		return (a.closeEnd - a.openStart) - (b.closeEnd - b.openStart)
	})
	best := enclosing[min(count, len(enclosing))-1]

	if inner {
		return TextRange{Start: offsetToPos(lineStarts, best.openEnd), End: offsetToPos(lineStarts, best.closeStart)}, true
	}
	return TextRange{Start: offsetToPos(lineStarts, best.openStart), End: offsetToPos(lineStarts, best.closeEnd)}, true
}

// flatten joins the buffer into runes with '\n' separators and records line offsets
func flatten(b *Buffer) ([]rune, []int) {
	var flat []rune
	starts := make([]int, len(b.Lines))
	for i, l := range b.Lines {
		starts[i] = len(flat)
		flat = append(flat, []rune(l)...)
		if i < len(b.Lines)-1 {
			flat = append(flat, '\n')
		}
	}
	return flat, starts
}

func offsetToPos(starts []int, off int) Position {
	line := 0
	for i, s := range starts {
		if s <= off {
			line = i
		}
	}
	return Position{line, off - starts[line]}
}

// defaultTextObjects maps object ops to implementations
func defaultTextObjects() map[input.TextObjectOp]TextObjectFunc {
	return map[input.TextObjectOp]TextObjectFunc{
		input.ObjectWord:        ObjectWord,
		input.ObjectWORD:        ObjectWORD,
		input.ObjectSentence:    ObjectSentence,
		input.ObjectParagraph:   ObjectParagraph,
		input.ObjectDoubleQuote: quoteObject('"'),
		input.ObjectSingleQuote: quoteObject('\''),
		input.ObjectBackQuote:   quoteObject('`'),
		input.ObjectParen:       bracketObject('(', ')'),
		input.ObjectBracket:     bracketObject('[', ']'),
		input.ObjectBrace:       bracketObject('{', '}'),
		input.ObjectAngle:       bracketObject('<', '>'),
		input.ObjectTag:         ObjectTag,
	}
}
