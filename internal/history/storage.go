package history

import (
	"errors"
	"io/fs"
	"os"
)

// Storage abstracts the durable record behind the history store so tests
// can swap in an in-memory implementation.
type Storage interface {
	// ReadIfExists returns the stored bytes, or ok=false when nothing has
	// been persisted yet
	ReadIfExists() ([]byte, bool, error)

	// Write persists the given bytes, replacing any previous record
	Write(data []byte) error
}

// FileStorage persists the history document as a file on disk.
type FileStorage struct {
	path string
}

// NewFileStorage creates file-backed storage at the given path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// ReadIfExists reads the history file if it exists
func (f *FileStorage) ReadIfExists() ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Write writes the history file
func (f *FileStorage) Write(data []byte) error {
	return os.WriteFile(f.path, data, 0644)
}
