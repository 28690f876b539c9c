package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/viant/afs"
)

// writeTempFile creates dir/name with content and mode.
func writeTempFile(t *testing.T, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return path
}

func readAll(t *testing.T, s Store, name string) string {
	t.Helper()
	rc, err := s.Open(context.Background(), name)
	if err != nil {
		t.Fatalf("Open(%s): %v", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// dirEntries lists the names in dir.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestOSStore_Replace(t *testing.T) {
	path := writeTempFile(t, "page.tsx", "old\n", 0o640)
	s := NewOSStore()

	err := s.Replace(context.Background(), path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new\n")
		return err
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := readAll(t, s, path); got != "new\n" {
		t.Errorf("content = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}
	if names := dirEntries(t, filepath.Dir(path)); len(names) != 1 {
		t.Errorf("expected only the target in dir, got %v", names)
	}
}

func TestOSStore_ReplaceFailureKeepsOriginal(t *testing.T) {
	path := writeTempFile(t, "page.tsx", "keep me\n", 0o644)
	s := NewOSStore()
	boom := errors.New("transform failed")

	err := s.Replace(context.Background(), path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if got := readAll(t, s, path); got != "keep me\n" {
		t.Errorf("original changed: %q", got)
	}
	if names := dirEntries(t, filepath.Dir(path)); len(names) != 1 {
		t.Errorf("staging file left behind: %v", names)
	}
}

func TestOSStore_ReplaceCancelled(t *testing.T) {
	path := writeTempFile(t, "a.txt", "a\n", 0o644)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewOSStore().Replace(ctx, path, func(w io.Writer) error {
		_, err := io.WriteString(w, "b\n")
		return err
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "a\n" {
		t.Errorf("original changed: %q", data)
	}
}

func TestOSStore_ReplaceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	err := NewOSStore().Replace(context.Background(), path, func(io.Writer) error { return nil })
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestOSStore_ReplaceThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	target := writeTempFile(t, "real.txt", "old\n", 0o644)
	link := filepath.Join(t.TempDir(), "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	err := NewOSStore().Replace(context.Background(), link, func(w io.Writer) error {
		_, err := io.WriteString(w, "new\n")
		return err
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	fi, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		t.Error("symlink was replaced by a regular file")
	}
	data, _ := os.ReadFile(target)
	if string(data) != "new\n" {
		t.Errorf("target content = %q", data)
	}
}

func TestOSStore_Lock(t *testing.T) {
	path := writeTempFile(t, "a.txt", "a\n", 0o644)
	s := NewOSStore()
	unlock, err := s.Lock(context.Background(), path)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	// The lock must be reacquirable once released.
	unlock, err = s.Lock(context.Background(), path)
	if err != nil {
		t.Fatalf("second Lock: %v", err)
	}
	unlock()
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantAFS  bool
	}{
		{"src/app/page.tsx", "src/app/page.tsx", false},
		{"/abs/page.tsx", "/abs/page.tsx", false},
		{"file:///abs/page.tsx", "/abs/page.tsx", false},
		{"mem://localhost/page.tsx", "mem://localhost/page.tsx", true},
		{"gs://bucket/page.tsx", "gs://bucket/page.tsx", true},
	}
	for _, tt := range tests {
		s, name := Resolve(tt.in)
		_, isAFS := s.(*AFSStore)
		if isAFS != tt.wantAFS || name != tt.wantName {
			t.Errorf("Resolve(%q) = (%T, %q), want afs=%v name=%q", tt.in, s, name, tt.wantAFS, tt.wantName)
		}
	}
}

func TestAFSStore_ReplaceInMemory(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/linepatch/store_test/page.tsx"
	if err := fs.Upload(ctx, URL, 0o644, strings.NewReader("old\n")); err != nil {
		t.Fatalf("seed upload: %v", err)
	}
	s := NewAFSStoreWith(fs)

	boom := errors.New("nope")
	if err := s.Replace(ctx, URL, func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if got := readAll(t, s, URL); got != "old\n" {
		t.Fatalf("content changed after failed replace: %q", got)
	}

	err := s.Replace(ctx, URL, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewBufferString("new\n"))
		return err
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := readAll(t, s, URL); got != "new\n" {
		t.Errorf("content = %q", got)
	}
}
