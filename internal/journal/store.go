package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// DefaultFile is the journal path used by the CLI.
const DefaultFile = ".linepatch_journal.json"

// Store abstracts journal persistence for testability.
type Store interface {
	Load() ([]Entry, error)
	Append(Entry) error
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	File string
}

func NewFileStore(file string) *FileStore {
	return &FileStore{File: file}
}

// Load returns every recorded entry. A missing or empty file is an empty journal.
func (fs *FileStore) Load() ([]Entry, error) {
	var entries []Entry
	f, err := os.Open(fs.File)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", fs.File, err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("journal: decode %s: %w", fs.File, err)
	}
	return entries, nil
}

// Append adds e to the end of the journal.
func (fs *FileStore) Append(e Entry) error {
	entries, err := fs.Load()
	if err != nil {
		return err
	}
	entries = append(entries, e)
	f, err := os.Create(fs.File)
	if err != nil {
		return fmt.Errorf("journal: create %s: %w", fs.File, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("journal: encode %s: %w", fs.File, err)
	}
	return nil
}

// InMemoryStore implements Store for testing (no disk I/O).
type InMemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (ms *InMemoryStore) Load() ([]Entry, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	// Return a copy to avoid mutation
	cpy := make([]Entry, len(ms.entries))
	copy(cpy, ms.entries)
	return cpy, nil
}

func (ms *InMemoryStore) Append(e Entry) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries = append(ms.entries, e)
	return nil
}
