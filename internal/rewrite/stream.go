package rewrite

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"linepatch/pkg/patch"
)

// ErrShortSource is returned when the source ends before a requested line.
var ErrShortSource = errors.New("source ended early")

// StreamError tags an I/O failure with the side of the stream it came from.
type StreamError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *StreamError) Error() string { return fmt.Sprintf("rewrite: %s: %v", e.Op, e.Err) }
func (e *StreamError) Unwrap() error { return e.Err }

// StreamRewriter implements LineRewriter over a bufio.Reader and bufio.Writer.
// Lines keep their terminators, so untouched lines are copied byte for byte.
type StreamRewriter struct {
	reader   *bufio.Reader
	writer   *bufio.Writer
	lineNo   int  // how many source lines have been consumed
	finished bool // true once the source hit EOF
	written  int  // lines written to the destination
}

var _ LineRewriter = (*StreamRewriter)(nil)

// NewStreamRewriter wraps r and w. Call Flush once done.
func NewStreamRewriter(r io.Reader, w io.Writer) *StreamRewriter {
	return &StreamRewriter{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// next reads one source line. ok is false at EOF.
func (rw *StreamRewriter) next() (line string, ok bool, err error) {
	if rw.finished {
		return "", false, nil
	}
	line, err = rw.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		rw.finished = true
		if line == "" {
			return "", false, nil
		}
		err = nil
	}
	if err != nil {
		return "", false, &StreamError{Op: "read", Err: err}
	}
	rw.lineNo++
	return line, true, nil
}

func (rw *StreamRewriter) write(line string) error {
	if _, err := rw.writer.WriteString(line); err != nil {
		return &StreamError{Op: "write", Err: err}
	}
	rw.written++
	return nil
}

// CopyLinesUntil writes source lines [current..lineIndex-1].
func (rw *StreamRewriter) CopyLinesUntil(lineIndex int) error {
	for rw.lineNo < lineIndex {
		line, ok, err := rw.next()
		if err != nil {
			return err
		}
		if !ok {
			return ErrShortSource
		}
		if err := rw.write(line); err != nil {
			return err
		}
	}
	return nil
}

// SkipLines consumes n source lines and returns them unwritten.
func (rw *StreamRewriter) SkipLines(n int) ([]string, error) {
	skipped := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, ok, err := rw.next()
		if err != nil {
			return skipped, err
		}
		if !ok {
			return skipped, ErrShortSource
		}
		skipped = append(skipped, line)
	}
	return skipped, nil
}

// Insert writes content verbatim.
func (rw *StreamRewriter) Insert(content []string) error {
	for _, line := range content {
		if err := rw.write(line); err != nil {
			return err
		}
	}
	return nil
}

// CopyRemainingLines writes all lines from the current position through EOF.
func (rw *StreamRewriter) CopyRemainingLines() error {
	for {
		line, ok, err := rw.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := rw.write(line); err != nil {
			return err
		}
	}
}

// Drain consumes the rest of the source without writing, so Lines reports
// the full source length.
func (rw *StreamRewriter) Drain() error {
	for {
		_, ok, err := rw.next()
		if err != nil || !ok {
			return err
		}
	}
}

// Lines reports how many source lines have been consumed.
func (rw *StreamRewriter) Lines() int { return rw.lineNo }

// Written reports how many lines have been written.
func (rw *StreamRewriter) Written() int { return rw.written }

// Flush pushes buffered output to the underlying writer.
func (rw *StreamRewriter) Flush() error {
	if err := rw.writer.Flush(); err != nil {
		return &StreamError{Op: "write", Err: err}
	}
	return nil
}

// Stats summarizes one Apply call.
type Stats struct {
	Before  int      // source line count
	After   int      // destination line count
	Removed []string // the lines that were replaced
}

// CheckFunc inspects the lines about to be replaced. A non-nil error aborts Apply.
type CheckFunc func(removed []string) error

// Apply streams r to w with spec's range replaced by its content.
// When the source is shorter than spec.End a *patch.RangeError carrying
// the real line count is returned; w may hold partial output in that case.
func Apply(r io.Reader, w io.Writer, spec patch.Spec, check CheckFunc) (Stats, error) {
	if err := spec.CheckShape(); err != nil {
		return Stats{}, err
	}
	rw := NewStreamRewriter(r, w)

	rangeErr := func() error {
		if err := rw.Drain(); err != nil {
			return err
		}
		return &patch.RangeError{Start: spec.Start, End: spec.End, Lines: rw.Lines()}
	}

	if err := rw.CopyLinesUntil(spec.Start); err != nil {
		if errors.Is(err, ErrShortSource) {
			return Stats{}, rangeErr()
		}
		return Stats{}, err
	}
	removed, err := rw.SkipLines(spec.Removed())
	if err != nil {
		if errors.Is(err, ErrShortSource) {
			return Stats{}, rangeErr()
		}
		return Stats{}, err
	}
	if check != nil {
		if err := check(removed); err != nil {
			return Stats{}, err
		}
	}
	if err := rw.Insert(spec.Content); err != nil {
		return Stats{}, err
	}
	if err := rw.CopyRemainingLines(); err != nil {
		return Stats{}, err
	}
	if err := rw.Flush(); err != nil {
		return Stats{}, err
	}
	return Stats{Before: rw.Lines(), After: rw.Written(), Removed: removed}, nil
}
