package rewrite

// LineRewriter lets you copy/skip/insert at the granularity of whole lines
// while streaming from a source to a destination.
type LineRewriter interface {
	// CopyLinesUntil writes source lines up to (excluding) lineIndex,
	// leaving the reader positioned at lineIndex.
	CopyLinesUntil(lineIndex int) error

	// SkipLines consumes n source lines without writing them and returns them.
	SkipLines(n int) ([]string, error)

	// Insert writes content verbatim. The source position does not move.
	Insert(content []string) error

	// CopyRemainingLines writes every source line from the current position to EOF.
	CopyRemainingLines() error

	// Lines reports how many source lines have been consumed so far.
	Lines() int
}
