package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"idea-miner/models"
)

// FileSink appends idea records to a flat text file. The file is opened and closed on every write.
type FileSink struct {
	path string
	mu   sync.Mutex
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Append(_ context.Context, idea models.Idea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening output file %s: %w", s.path, err)
	}

	if _, err := f.WriteString(idea.Record()); err != nil {
		f.Close()
		return fmt.Errorf("writing output file %s: %w", s.path, err)
	}
	return f.Close()
}
