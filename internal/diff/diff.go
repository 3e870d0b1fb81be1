// Package diff computes line diffs between two renderings of a document,
// used to preview what an edit would change on disk.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

// Line is one line of a diff. Text excludes the trailing newline.
type Line struct {
	Op   Op
	Text string
}

func (o Op) prefix() byte {
	switch o {
	case OpDelete:
		return '-'
	case OpInsert:
		return '+'
	}
	return ' '
}

// Lines diffs oldText to newText line by line.
func Lines(oldText, newText string) []Line {
	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	var out []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		}
		for _, r := range d.Text {
			idx := int(r)
			if idx < 0 || idx >= len(lineArray) {
				continue
			}
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(lineArray[idx], "\n")})
		}
	}
	return out
}

// Changed reports whether the texts differ in any line.
func Changed(oldText, newText string) bool {
	for _, l := range Lines(oldText, newText) {
		if l.Op != OpEqual {
			return true
		}
	}
	return false
}

// Unified renders changed lines with up to context unchanged lines around
// them. Skipped regions are marked with "...". Returns "" when nothing changed.
func Unified(oldText, newText string, context int) string {
	lines := Lines(oldText, newText)

	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.Op == OpEqual {
			continue
		}
		changed = true
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return ""
	}

	var b strings.Builder
	skipped := false
	for i, l := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			b.WriteString("...\n")
			skipped = false
		}
		b.WriteByte(l.Op.prefix())
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	if skipped {
		b.WriteString("...\n")
	}
	return b.String()
}
