package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink persists imported settings as JSON on local disk. It is the
// process-wide client state behind the CLI's settings command.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Apply(_ context.Context, settings json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, settings, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
