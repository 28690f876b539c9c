package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OSStore keeps files on the local file system. Replace writes to a
// temporary file in the target's directory, syncs it, copies the original
// permissions and renames it over the target.
type OSStore struct{}

// NewOSStore creates a new OS-backed store.
func NewOSStore() *OSStore {
	return &OSStore{}
}

// Ensure OSStore implements Store.
var _ Store = (*OSStore)(nil)

// Open opens name for reading.
func (s *OSStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Replace atomically rewrites name with the output of write.
func (s *OSStore) Replace(ctx context.Context, name string, write WriteFunc) error {
	// Rename would replace a symlink with a regular file; rewrite its target instead.
	target, err := filepath.EvalSymlinks(name)
	if err != nil {
		return fmt.Errorf("store: resolve %s: %w", name, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("store: stat %s: %w", target, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".linepatch-*")
	if err != nil {
		return fmt.Errorf("store: stage %s: %w", target, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store: sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close %s: %w", tmp.Name(), err)
	}
	// Ownership first: chown can clear mode bits the chmod below restores.
	if err := chownLike(tmp.Name(), info); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("store: chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("store: commit %s: %w", target, err)
	}
	committed = true
	return nil
}

// Lock takes an exclusive advisory lock on the directory holding name.
// The directory is locked rather than the file because the file's inode
// changes on every commit.
func (s *OSStore) Lock(_ context.Context, name string) (Unlock, error) {
	target, err := filepath.EvalSymlinks(name)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", name, err)
	}
	return lockDir(filepath.Dir(target))
}
