// Package diff renders a line-level preview of a patch.
package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"linepatch/pkg/patch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a line diff. OldPos and NewPos count the lines of
// each side consumed before this one.
type Line struct {
	Op     Op
	Text   string
	OldPos int
	NewPos int
}

// Compute diffs before and after line by line.
func Compute(before, after string) []Line {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(chars1, chars2, false)
	lineDiffs := dmp.DiffCharsToLines(diffs, lineArray)

	var out []Line
	oldPos, newPos := 0, 0
	for _, d := range lineDiffs {
		for _, text := range patch.SplitLines(d.Text) {
			l := Line{Text: text, OldPos: oldPos, NewPos: newPos}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				l.Op = Equal
				oldPos++
				newPos++
			case diffmatchpatch.DiffInsert:
				l.Op = Insert
				newPos++
			case diffmatchpatch.DiffDelete:
				l.Op = Delete
				oldPos++
			}
			out = append(out, l)
		}
	}
	return out
}

// Counts returns how many lines were added and removed.
func Counts(lines []Line) (added, removed int) {
	for _, l := range lines {
		switch l.Op {
		case Insert:
			added++
		case Delete:
			removed++
		}
	}
	return added, removed
}

// Hunk is a run of changes with surrounding context, in unified diff terms.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Hunks groups changed lines with up to context unchanged lines around
// them. Changes separated by at most 2*context unchanged lines share a hunk.
func Hunks(lines []Line, context int) []Hunk {
	var hunks []Hunk
	n := len(lines)
	i := 0
	for i < n {
		for i < n && lines[i].Op == Equal {
			i++
		}
		if i == n {
			break
		}
		start := max(i-context, 0)
		end := i
		for end < n {
			if lines[end].Op != Equal {
				end++
				continue
			}
			j := end
			for j < n && lines[j].Op == Equal {
				j++
			}
			if j == n || j-end > 2*context {
				end = min(end+context, n)
				break
			}
			end = j
		}
		hunks = append(hunks, newHunk(lines[start:end]))
		i = end
	}
	return hunks
}

func newHunk(lines []Line) Hunk {
	h := Hunk{Lines: lines}
	for _, l := range lines {
		switch l.Op {
		case Equal:
			h.OldCount++
			h.NewCount++
		case Delete:
			h.OldCount++
		case Insert:
			h.NewCount++
		}
	}
	// Unified diff numbers an empty side by the line before it.
	h.OldStart = lines[0].OldPos
	if h.OldCount > 0 {
		h.OldStart++
	}
	h.NewStart = lines[0].NewPos
	if h.NewCount > 0 {
		h.NewStart++
	}
	return h
}
