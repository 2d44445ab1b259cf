package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	guideout "ritualcoach/internal/modules/guide/port/out"
	apperrors "ritualcoach/internal/platform/errors"
)

// FileStore writes guide documents into a single directory.
type FileStore struct {
	dir string
}

var _ guideout.DocumentStore = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Read(_ context.Context, name string) (string, bool, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return "", false, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read guide %s: %w", name, err)
	}
	return string(content), true, nil
}

func (s *FileStore) Write(_ context.Context, name, content string) (string, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create guide dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write guide %s: %w", name, err)
	}
	return path, nil
}

func (s *FileStore) pathFor(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: guide name %q", apperrors.ErrInvalidInput, name)
	}
	return filepath.Join(s.dir, name), nil
}
