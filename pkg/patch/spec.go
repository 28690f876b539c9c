package patch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrRange is matched by every RangeError via errors.Is.
var ErrRange = errors.New("line range out of bounds")

// RangeError reports bounds that cannot address the file's line sequence.
// Lines is -1 when the error was detected before the file was read.
type RangeError struct {
	Start int
	End   int
	Lines int
}

func (e *RangeError) Error() string {
	switch {
	case e.Start < 0:
		return fmt.Sprintf("invalid range [%d, %d): start is negative", e.Start, e.End)
	case e.Start > e.End:
		return fmt.Sprintf("invalid range [%d, %d): start is after end", e.Start, e.End)
	case e.Lines >= 0:
		return fmt.Sprintf("invalid range [%d, %d): file has %d lines", e.Start, e.End, e.Lines)
	default:
		return fmt.Sprintf("invalid range [%d, %d)", e.Start, e.End)
	}
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }

// Spec describes one substitution: the half-open line range [Start, End)
// is removed and Content is inserted in its place.
type Spec struct {
	Start   int      // zero-based, inclusive
	End     int      // zero-based, exclusive
	Content []string // inserted verbatim, terminators included
	Expect  []string // optional anchor: the lines the range must currently hold
}

// NewSpec builds a Spec whose content is a single block of text.
// The block is split into lines so that Content reflects the real line count.
func NewSpec(start, end int, block string) Spec {
	return Spec{Start: start, End: end, Content: SplitLines(block)}
}

// CheckShape validates the parts of the range that do not depend on the file.
func (s Spec) CheckShape() error {
	if s.Start < 0 || s.Start > s.End {
		return &RangeError{Start: s.Start, End: s.End, Lines: -1}
	}
	return nil
}

// Validate checks the range against a sequence of n lines.
func (s Spec) Validate(n int) error {
	if err := s.CheckShape(); err != nil {
		return err
	}
	if s.End > n {
		return &RangeError{Start: s.Start, End: s.End, Lines: n}
	}
	return nil
}

// Removed returns how many lines the range covers.
func (s Spec) Removed() int { return s.End - s.Start }

// Inserted returns how many lines Content contributes.
func (s Spec) Inserted() int { return len(s.Content) }

// HumanRange renders the range as 1-based inclusive line numbers.
func (s Spec) HumanRange() string {
	if s.Start == s.End {
		return fmt.Sprintf("insert before line %d", s.Start+1)
	}
	return fmt.Sprintf("lines %d-%d", s.Start+1, s.End)
}

// Hash identifies a spec by its bounds and content.
func (s Spec) Hash() string {
	data := fmt.Sprintf("%d|%d|%s", s.Start, s.End, strings.Join(s.Content, ""))
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// File pairs a Spec with the path it applies to.
type File struct {
	Path string
	Spec Spec
}

func (f File) String() string {
	return fmt.Sprintf("%s (%s, %d line(s) in)", f.Path, f.Spec.HumanRange(), f.Spec.Inserted())
}

// AnchorLines is SplitLines for an anchor that was given explicitly. The
// result is never nil, so an empty anchor still requires an empty range.
func AnchorLines(s string) []string {
	if l := SplitLines(s); l != nil {
		return l
	}
	return []string{}
}

// SplitLines splits s after every '\n', keeping the terminators.
// A trailing fragment without a newline becomes the last element.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
