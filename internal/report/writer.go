package report

import (
	"os"
	"path/filepath"
)

// FileWriter writes dated report artifacts into a directory. Regenerating
// the same date's report within a day overwrites the previous file.
type FileWriter struct {
	dir string
}

// NewFileWriter creates a writer for the given directory
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

// Write stores the report content under a deterministic date-based name
// and returns the file path.
func (w *FileWriter) Write(date, content string) (string, error) {
	path := filepath.Join(w.dir, "price_report_"+date+".txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}
