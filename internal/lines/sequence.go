// Package lines models a file as an ordered sequence of text lines, each
// line keeping the terminator it was read with.
package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"linepatch/pkg/patch"
)

// Sequence is an ordered list of lines. Every element except possibly the
// last ends with its original terminator.
type Sequence []string

// Read consumes r to EOF and returns its lines.
// Unlike bufio.Scanner it has no line length limit and keeps terminators.
func Read(r io.Reader) (Sequence, error) {
	br := bufio.NewReader(r)
	var seq Sequence
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			seq = append(seq, line)
		}
		if errors.Is(err, io.EOF) {
			return seq, nil
		}
		if err != nil {
			return nil, fmt.Errorf("lines: read: %w", err)
		}
	}
}

// Len returns the number of lines.
func (s Sequence) Len() int { return len(s) }

// Join rejoins the sequence into text. Join of what Read returned is the input.
func (s Sequence) Join() string { return strings.Join(s, "") }

// Slice returns a copy of the half-open range [start, end).
func (s Sequence) Slice(start, end int) Sequence {
	out := make(Sequence, end-start)
	copy(out, s[start:end])
	return out
}

// Replace returns s[:start] ++ content ++ s[end:]. The input is not modified.
func Replace(s Sequence, spec patch.Spec) (Sequence, error) {
	if err := spec.Validate(len(s)); err != nil {
		return nil, err
	}
	out := make(Sequence, 0, len(s)-spec.Removed()+spec.Inserted())
	out = append(out, s[:spec.Start]...)
	out = append(out, spec.Content...)
	out = append(out, s[spec.End:]...)
	return out, nil
}

// Trim strips a single trailing "\n" or "\r\n".
func Trim(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
