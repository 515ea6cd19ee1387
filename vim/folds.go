// @lixen: #focus{control[fold]}
package vim

import (
	"slices"
)

// innermostFold returns the index of the smallest fold containing line, or -1
func (b *Buffer) innermostFold(line int) int {
	best := -1
	for i, f := range b.Folds {
		if f.Start <= line && line <= f.End {
			if best < 0 || f.End-f.Start < b.Folds[best].End-b.Folds[best].Start {
				best = i
			}
		}
	}
	return best
}

// ClosedFoldAt returns the outermost closed fold hiding line, if any
func (b *Buffer) ClosedFoldAt(line int) (Fold, bool) {
	var out Fold
	found := false
	for _, f := range b.Folds {
		if f.Closed && f.Start <= line && line <= f.End {
			if !found || f.End-f.Start > out.End-out.Start {
				out, found = f, true
			}
		}
	}
	return out, found
}

func sortFolds(folds []Fold) {
	slices.SortFunc(folds, func(a, b Fold) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return b.End - a.End
	})
}

// createFold adds a closed fold over [from, to]; duplicates are ignored
func (c *call) createFold(from, to int) {
	b := c.buf()
	if from >= to || from < 0 || to > b.lastLine() {
		c.fail("Invalid fold range")
		return
	}
	for _, f := range b.Folds {
		if f.Start == from && f.End == to {
			return
		}
	}
	b.Folds = append(b.Folds, Fold{Start: from, End: to, Closed: true})
	sortFolds(b.Folds)
	b.setCursor(from, b.Cursor.Col)
	c.action("fold_create")
}

// foldCommand implements the z fold family
func (c *call) foldCommand(op foldOp) {
	b := c.buf()
	line := b.Cursor.Line

	switch op {
	case foldOpenAll, foldCloseAll:
		for i := range b.Folds {
			b.Folds[i].Closed = op == foldCloseAll
		}
		c.action("fold_all")
		return
	case foldDeleteAll:
		b.Folds = nil
		c.action("fold_delete_all")
		return
	}

	i := b.innermostFold(line)
	if i < 0 {
		c.warn("No fold found")
		return
	}

	switch op {
	case foldOpen:
		b.Folds[i].Closed = false
	case foldClose:
		b.Folds[i].Closed = true
		b.setCursor(b.Folds[i].Start, b.Cursor.Col)
	case foldToggle:
		b.Folds[i].Closed = !b.Folds[i].Closed
	case foldOpenRecursive, foldCloseRecursive:
		closed := op == foldCloseRecursive
		for j, f := range b.Folds {
			if f.Start <= line && line <= f.End {
				b.Folds[j].Closed = closed
			}
		}
	case foldDelete:
		b.Folds = slices.Delete(b.Folds, i, i+1)
	}
	c.action("fold")
}

type foldOp uint8

const (
	foldOpen foldOp = iota
	foldClose
	foldToggle
	foldOpenRecursive
	foldCloseRecursive
	foldOpenAll
	foldCloseAll
	foldDelete
	foldDeleteAll
)

// MotionFoldStart implements [z
func MotionFoldStart(b *Buffer, _ int) MotionResult {
	i := b.innermostFold(b.Cursor.Line)
	if i < 0 {
		return MotionResult{}
	}
	return lineTarget(b.Folds[i].Start, 0)
}

// MotionFoldEnd implements ]z
func MotionFoldEnd(b *Buffer, _ int) MotionResult {
	i := b.innermostFold(b.Cursor.Line)
	if i < 0 {
		return MotionResult{}
	}
	return lineTarget(b.Folds[i].End, 0)
}

// MotionFoldNext implements zj: the start of the next fold below the cursor
func MotionFoldNext(b *Buffer, count int) MotionResult {
	line := b.Cursor.Line
	found := false
	for n := 0; n < count; n++ {
		next := -1
		for _, f := range b.Folds {
			if f.Start > line && (next < 0 || f.Start < next) {
				next = f.Start
			}
		}
		if next < 0 {
			break
		}
		line, found = next, true
	}
	if !found {
		return MotionResult{}
	}
	return lineTarget(line, 0)
}

// MotionFoldPrev implements zk: the start of the previous fold above the cursor
func MotionFoldPrev(b *Buffer, count int) MotionResult {
	line := b.Cursor.Line
	found := false
	for n := 0; n < count; n++ {
		prev := -1
		for _, f := range b.Folds {
			if f.Start < line && f.Start > prev {
				prev = f.Start
			}
		}
		if prev < 0 {
			break
		}
		line, found = prev, true
	}
	if !found {
		return MotionResult{}
	}
	return lineTarget(line, 0)
}
