// Package store persists rewritten files all-or-nothing.
//
// A Store hands out a reader for the current content and accepts the new
// content through a callback. The new content is staged next to the
// original and only swapped in once the callback returned without error,
// so a failed or interrupted rewrite never leaves a half-written target.
package store

import (
	"context"
	"io"
	"net/url"
	"strings"
)

// Unlock releases a lock obtained from Store.Lock.
type Unlock func() error

// WriteFunc produces the new content of a file.
type WriteFunc func(w io.Writer) error

// Store abstracts where target files live.
type Store interface {
	// Open returns the current content of name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Replace stages the output of write and swaps it in for name.
	// Errors returned by write are passed through unchanged and nothing
	// is committed.
	Replace(ctx context.Context, name string, write WriteFunc) error

	// Lock takes an exclusive lock covering name for the duration of a
	// read-transform-write sequence.
	Lock(ctx context.Context, name string) (Unlock, error)
}

// IsURL reports whether name carries a scheme other than file.
func IsURL(name string) bool {
	scheme, _, ok := strings.Cut(name, "://")
	return ok && scheme != "" && scheme != "file"
}

// Resolve picks the Store for name and returns the name as that store
// expects it. file:// URLs become plain paths.
func Resolve(name string) (Store, string) {
	if IsURL(name) {
		return NewAFSStore(), name
	}
	if strings.HasPrefix(name, "file://") {
		if u, err := url.Parse(name); err == nil && u.Path != "" {
			name = u.Path
		}
	}
	return NewOSStore(), name
}

func noUnlock() error { return nil }
