// Package storage persists finished meeting artifacts as flat files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store writes meeting artifacts into one output directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// SaveArtifact writes the document under a timestamped name. The file is
// written to a temporary name first and renamed into place so a crash
// mid-write never leaves a partial artifact under the final name.
func (s *Store) SaveArtifact(content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("meeting_%s_%s.md",
		time.Now().UTC().Format("20060102T150405Z"), uuid.NewString()[:8])
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".meeting-*")
	if err != nil {
		return "", fmt.Errorf("creating artifact: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saving artifact: %w", err)
	}
	return path, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}
