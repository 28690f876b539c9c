//go:build unix

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// chownLike gives name the owner and group recorded in info. Callers
// without the right to hand a file to another user keep their own
// ownership; only unexpected failures are reported.
func chownLike(name string, info fs.FileInfo) error {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}
	uid, gid := int(st.Uid), int(st.Gid)
	if uid == os.Geteuid() && gid == os.Getegid() {
		return nil
	}
	if err := os.Lchown(name, uid, gid); err != nil && !errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("store: chown %s: %w", name, err)
	}
	return nil
}
