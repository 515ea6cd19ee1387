// @lixen: #focus{render[paint,cells,width]}
package host

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Styles used by both apps
var (
	styleText      = tcell.StyleDefault
	styleGutter    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGutterCur = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus    = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleStatusDim = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleMatch     = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleBorder    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorderAct = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleInfo      = tcell.StyleDefault
	styleWarning   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
)

// levelStyle picks the message line style for a severity
func levelStyle(l Level) tcell.Style {
	switch l {
	case LevelWarning:
		return styleWarning
	case LevelError:
		return styleError
	}
	return styleInfo
}

// drawText writes s from (x, y) clipped to width cells and returns the cells used
// Wide runes that would straddle the clip edge are dropped
func drawText(scr tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > width {
			break
		}
		scr.SetContent(x+used, y, r, nil, style)
		used += w
	}
	return used
}

// fillRow paints width cells of style starting at (x, y)
func fillRow(scr tcell.Screen, x, y, width int, style tcell.Style) {
	for i := range width {
		scr.SetContent(x+i, y, ' ', nil, style)
	}
}

// expandTabs replaces tabs with spaces up to the next multiple of tabstop
func expandTabs(line string, tabstop int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	tabstop = max(tabstop, 1)
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabstop - col%tabstop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// displayCol converts a rune index in line to a screen column
func displayCol(line string, runeCol, tabstop int) int {
	tabstop = max(tabstop, 1)
	col, i := 0, 0
	for _, r := range line {
		if i >= runeCol {
			break
		}
		if r == '\t' {
			col += tabstop - col%tabstop
		} else {
			col += runewidth.RuneWidth(r)
		}
		i++
	}
	if runeCol > i {
		col += runeCol - i
	}
	return col
}

// padRight pads or truncates s to exactly width cells
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return runewidth.Truncate(s, width, "")
}

// ScreenText returns the visible rows of a simulation screen with trailing blanks removed
func ScreenText(scr tcell.SimulationScreen) []string {
	cells, w, h := scr.GetContents()
	rows := make([]string, h)
	for y := range h {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 || c.Runes[0] == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(string(c.Runes))
			if rw := runewidth.RuneWidth(c.Runes[0]); rw > 1 {
				x += rw - 1
			}
		}
		rows[y] = strings.TrimRight(sb.String(), " ")
	}
	return rows
}
