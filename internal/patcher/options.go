package patcher

import (
	"log/slog"

	"linepatch/internal/clock"
	"linepatch/internal/diff"
	"linepatch/internal/journal"
	"linepatch/internal/store"
)

// Option configures a Patcher.
type Option func(*Patcher)

// ConfirmFunc is shown the rendered preview and decides whether to commit.
type ConfirmFunc func(path, preview string) (bool, error)

// WithStore pins the storage backend instead of resolving it per path.
func WithStore(s store.Store) Option {
	return func(p *Patcher) { p.store = s }
}

// WithJournal records every committed patch in j.
func WithJournal(j journal.Store) Option {
	return func(p *Patcher) { p.journal = j }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Patcher) { p.log = l }
}

// WithClock sets the clock used for journal timestamps and timings.
func WithClock(c clock.Clock) Option {
	return func(p *Patcher) { p.clock = c }
}

// WithDryRun computes the result and preview without writing anything.
func WithDryRun() Option {
	return func(p *Patcher) { p.dryRun = true }
}

// WithConfirm asks fn before committing.
func WithConfirm(fn ConfirmFunc) Option {
	return func(p *Patcher) { p.confirm = fn }
}

// WithMatchLineEnding rewrites the content's terminators to the target's
// line ending style when the target uses a single style.
func WithMatchLineEnding() Option {
	return func(p *Patcher) { p.matchEOL = true }
}

// WithPreview sets how previews are rendered.
func WithPreview(opts diff.Options) Option {
	return func(p *Patcher) { p.preview = opts }
}
