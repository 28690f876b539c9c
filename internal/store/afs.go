package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/viant/afs"
)

const defaultObjectMode os.FileMode = 0o644

// AFSStore keeps files behind any URL scheme registered with afs
// (mem://, file://, cloud storage). Replace uploads the new content to a
// uniquely named staging object and moves it over the target.
type AFSStore struct {
	fs afs.Service
}

// NewAFSStore creates a store backed by a fresh afs service.
func NewAFSStore() *AFSStore {
	return &AFSStore{fs: afs.New()}
}

// NewAFSStoreWith wraps an existing afs service.
func NewAFSStoreWith(fs afs.Service) *AFSStore {
	return &AFSStore{fs: fs}
}

var _ Store = (*AFSStore)(nil)

// Open downloads the object at URL.
func (s *AFSStore) Open(ctx context.Context, URL string) (io.ReadCloser, error) {
	return s.fs.OpenURL(ctx, URL)
}

// Replace stages the output of write and moves it over URL.
func (s *AFSStore) Replace(ctx context.Context, URL string, write WriteFunc) error {
	mode := defaultObjectMode
	if obj, err := s.fs.Object(ctx, URL); err == nil && obj.Mode().Perm() != 0 {
		mode = obj.Mode().Perm()
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	staging := URL + ".linepatch-" + uuid.NewString()
	if err := s.fs.Upload(ctx, staging, mode, &buf); err != nil {
		return fmt.Errorf("store: stage %s: %w", URL, err)
	}
	if err := s.fs.Move(ctx, staging, URL); err != nil {
		_ = s.fs.Delete(ctx, staging)
		return fmt.Errorf("store: commit %s: %w", URL, err)
	}
	return nil
}

// Lock is a no-op: object stores offer no portable exclusive lock.
func (s *AFSStore) Lock(context.Context, string) (Unlock, error) {
	return noUnlock, nil
}
