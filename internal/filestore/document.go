package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Document is a JSON file that is always read and written whole.
// Read-modify-write cycles are serialised within one process only;
// separate processes writing the same file still race and the last one wins.
type Document struct {
	path string
	mu   sync.Mutex
}

func NewDocument(path string) *Document {
	return &Document{path: path}
}

func (d *Document) Path() string {
	return d.path
}

// read decodes the file into v. It reports false when the file does not exist.
func (d *Document) read(v interface{}) (bool, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", d.path, err)
	}
	return true, nil
}

// write replaces the file with v, going through a temp file in the same directory
func (d *Document) write(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", d.path, err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", d.path, err)
	}
	return nil
}

// Load decodes the whole file into v
func (d *Document) Load(v interface{}) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read(v)
}

// Save replaces the whole file with v
func (d *Document) Save(v interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(v)
}

// Update loads the file into v, applies fn and writes v back when fn returns true
func (d *Document) Update(v interface{}, fn func() (bool, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.read(v); err != nil {
		return err
	}
	write, err := fn()
	if err != nil || !write {
		return err
	}
	return d.write(v)
}
