package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps entries in a JSON document on disk, rewritten on every append.
type FileStore struct {
	mu       sync.Mutex
	path     string
	capacity int
}

type fileDocument struct {
	Owners map[string][]Entry `json:"owners"`
}

func NewFileStore(path string, capacity int) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("history.NewFileStore: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("history.NewFileStore: %w", err)
	}
	return &FileStore{path: path, capacity: normalizeCapacity(capacity)}, nil
}

func (f *FileStore) Append(_ context.Context, owner string, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.Owners[owner] = merge(doc.Owners[owner], e, f.capacity)
	return f.write(doc)
}

func (f *FileStore) Recent(_ context.Context, owner string) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	entries := doc.Owners[owner]
	if len(entries) > f.capacity {
		entries = entries[len(entries)-f.capacity:]
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) read() (*fileDocument, error) {
	doc := &fileDocument{Owners: make(map[string][]Entry)}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history.FileStore: read: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("history.FileStore: parse %s: %w", f.path, err)
	}
	if doc.Owners == nil {
		doc.Owners = make(map[string][]Entry)
	}
	return doc, nil
}

// write replaces the file atomically through a sibling temp file.
func (f *FileStore) write(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("history.FileStore: marshal: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("history.FileStore: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("history.FileStore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("history.FileStore: write: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("history.FileStore: rename: %w", err)
	}
	return nil
}
