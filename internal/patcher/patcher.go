// Package patcher applies a line range replacement to a file in one shot.
//
// A run reads the target, swaps the lines of [Start, End) for the new
// content and commits the result atomically through a store.Store. Any
// failure leaves the target exactly as it was.
package patcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"time"

	"linepatch/internal/clock"
	"linepatch/internal/diff"
	"linepatch/internal/journal"
	"linepatch/internal/lines"
	"linepatch/internal/logging"
	"linepatch/internal/rewrite"
	"linepatch/internal/store"
	"linepatch/pkg/patch"
)

// Result describes a completed (or, for dry runs, computed) patch.
type Result struct {
	Path        string
	Spec        patch.Spec
	LinesBefore int
	LinesAfter  int
	Removed     []string
	BeforeSHA   string
	AfterSHA    string
	Preview     string // empty unless the run was buffered
	DryRun      bool
	Elapsed     time.Duration
}

// Patcher applies Specs to files.
type Patcher struct {
	store    store.Store
	journal  journal.Store
	log      *slog.Logger
	clock    clock.Clock
	dryRun   bool
	confirm  ConfirmFunc
	matchEOL bool
	preview  diff.Options
}

// New returns a Patcher that streams directly to disk unless an option
// asks for a preview, confirmation or line ending detection.
func New(opts ...Option) *Patcher {
	p := &Patcher{
		log:     logging.Discard(),
		clock:   clock.RealClock{},
		preview: diff.Options{Context: 3},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply is Patch for a parsed patch file.
func (p *Patcher) Apply(ctx context.Context, f patch.File) (*Result, error) {
	p.log.Debug("applying patch file", "patch", f.String())
	return p.Patch(ctx, f.Path, f.Spec)
}

// Patch replaces lines [spec.Start, spec.End) of path with spec.Content.
//
// Errors are a *patch.RangeError when the bounds do not fit the file, a
// *MismatchError when spec.Expect does not match, ErrDeclined when
// confirmation was refused, or an *IOError. In every case the target is
// unchanged.
func (p *Patcher) Patch(ctx context.Context, path string, spec patch.Spec) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := spec.CheckShape(); err != nil {
		return nil, fmt.Errorf("%s %s: %w", PhaseValidate, path, err)
	}

	st, name := p.store, path
	if st == nil {
		st, name = store.Resolve(path)
	}

	started := p.clock.Now()
	log := p.log.With("path", path, "range", spec.HumanRange())
	log.Debug("patch start", "insert", spec.Inserted(), "remove", spec.Removed(), "spec", spec.Hash()[:12])

	unlock, err := st.Lock(ctx, name)
	if err != nil {
		return nil, &IOError{Phase: PhaseRead, Path: path, Err: err}
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Warn("unlock failed", "error", err)
		}
	}()

	var res *Result
	if p.buffered() {
		res, err = p.patchBuffered(ctx, st, name, path, spec)
	} else {
		res, err = p.patchStream(ctx, st, name, path, spec)
	}
	if err != nil {
		log.Debug("patch failed", "error", err)
		return nil, err
	}
	res.Elapsed = p.clock.Since(started)

	if res.DryRun {
		log.Info("dry run", "before", res.LinesBefore, "after", res.LinesAfter)
		return res, nil
	}
	log.Info("patched", "before", res.LinesBefore, "after", res.LinesAfter, "elapsed", res.Elapsed)
	p.record(log, res)
	return res, nil
}

func (p *Patcher) buffered() bool {
	return p.dryRun || p.confirm != nil || p.matchEOL
}

// patchStream copies the target into the staged replacement line by line
// without holding the whole file in memory.
func (p *Patcher) patchStream(ctx context.Context, st store.Store, name, path string, spec patch.Spec) (*Result, error) {
	src, err := st.Open(ctx, name)
	if err != nil {
		return nil, &IOError{Phase: PhaseRead, Path: path, Err: err}
	}
	defer src.Close()

	beforeHash, afterHash := sha256.New(), sha256.New()
	var (
		stats rewrite.Stats
		cbErr error
	)
	err = st.Replace(ctx, name, func(w io.Writer) error {
		stats, cbErr = rewrite.Apply(
			io.TeeReader(src, beforeHash),
			io.MultiWriter(w, afterHash),
			spec,
			verify(spec),
		)
		return cbErr
	})
	if err != nil {
		if cbErr != nil && errors.Is(err, cbErr) {
			return nil, classify(path, cbErr)
		}
		return nil, &IOError{Phase: PhaseWrite, Path: path, Err: err}
	}

	return &Result{
		Path:        path,
		Spec:        spec,
		LinesBefore: stats.Before,
		LinesAfter:  stats.After,
		Removed:     stats.Removed,
		BeforeSHA:   sum(beforeHash),
		AfterSHA:    sum(afterHash),
	}, nil
}

// patchBuffered reads the whole target so the result can be previewed
// and confirmed before it is written.
func (p *Patcher) patchBuffered(ctx context.Context, st store.Store, name, path string, spec patch.Spec) (*Result, error) {
	src, err := st.Open(ctx, name)
	if err != nil {
		return nil, &IOError{Phase: PhaseRead, Path: path, Err: err}
	}
	seq, err := lines.Read(src)
	src.Close()
	if err != nil {
		return nil, &IOError{Phase: PhaseRead, Path: path, Err: err}
	}

	if p.matchEOL {
		if e := lines.DetectEnding(seq); e.Terminator() != "" {
			spec.Content = lines.ConvertEndings(spec.Content, e)
		}
	}
	if err := spec.Validate(seq.Len()); err != nil {
		return nil, fmt.Errorf("%s %s: %w", PhaseValidate, path, err)
	}
	removed := []string(seq.Slice(spec.Start, spec.End))
	if check := verify(spec); check != nil {
		if err := check(removed); err != nil {
			return nil, classify(path, err)
		}
	}
	out, err := lines.Replace(seq, spec)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", PhaseValidate, path, err)
	}

	before, after := seq.Join(), out.Join()
	opts := p.preview
	if opts.Path == "" {
		opts.Path = path
	}
	res := &Result{
		Path:        path,
		Spec:        spec,
		LinesBefore: seq.Len(),
		LinesAfter:  out.Len(),
		Removed:     removed,
		BeforeSHA:   sumString(before),
		AfterSHA:    sumString(after),
		Preview:     diff.Render(before, after, opts),
		DryRun:      p.dryRun,
	}
	if p.dryRun {
		return res, nil
	}

	if p.confirm != nil {
		ok, err := p.confirm(path, res.Preview)
		if err != nil {
			return nil, fmt.Errorf("confirm %s: %w", path, err)
		}
		if !ok {
			return nil, ErrDeclined
		}
	}

	err = st.Replace(ctx, name, func(w io.Writer) error {
		_, err := io.WriteString(w, after)
		return err
	})
	if err != nil {
		return nil, &IOError{Phase: PhaseWrite, Path: path, Err: err}
	}
	return res, nil
}

// record appends res to the journal. The file is already committed, so a
// journal failure is only logged.
func (p *Patcher) record(log *slog.Logger, res *Result) {
	if p.journal == nil {
		return
	}
	e := journal.NewEntry(res.Path, res.Spec.Start, res.Spec.End, res.Spec.Inserted(),
		res.BeforeSHA, res.AfterSHA, p.clock.Now())
	if err := p.journal.Append(e); err != nil {
		log.Warn("journal append failed", "error", err)
	}
}

// verify returns the anchor check for spec, or nil when it carries none.
func verify(spec patch.Spec) rewrite.CheckFunc {
	if spec.Expect == nil {
		return nil
	}
	return func(removed []string) error {
		n := max(len(spec.Expect), len(removed))
		for i := 0; i < n; i++ {
			var want, got string
			if i < len(spec.Expect) {
				want = lines.Trim(spec.Expect[i])
			}
			if i < len(removed) {
				got = lines.Trim(removed[i])
			}
			if i >= len(spec.Expect) || i >= len(removed) || want != got {
				return &MismatchError{Line: spec.Start + i + 1, Want: want, Got: got}
			}
		}
		return nil
	}
}

// classify turns an error raised while rewriting into the error kind
// callers match on.
func classify(path string, err error) error {
	var (
		rangeErr    *patch.RangeError
		mismatchErr *MismatchError
		streamErr   *rewrite.StreamError
	)
	switch {
	case errors.As(err, &rangeErr):
		return fmt.Errorf("%s %s: %w", PhaseValidate, path, err)
	case errors.As(err, &mismatchErr):
		return fmt.Errorf("%s %s: %w", PhaseVerify, path, err)
	case errors.As(err, &streamErr) && streamErr.Op == "read":
		return &IOError{Phase: PhaseRead, Path: path, Err: streamErr.Err}
	case errors.As(err, &streamErr):
		return &IOError{Phase: PhaseWrite, Path: path, Err: streamErr.Err}
	default:
		return &IOError{Phase: PhaseWrite, Path: path, Err: err}
	}
}

func sum(h hash.Hash) string { return hex.EncodeToString(h.Sum(nil)) }

func sumString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
