package out

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	progressout "miftah/internal/modules/progress/port/out"
)

// FileKeyValueStore writes each key to its own file under dir, so the stored
// JSON can be inspected and edited by hand.
type FileKeyValueStore struct {
	dir string
}

func NewFileKeyValueStore(dir string) progressout.KeyValueStore {
	return &FileKeyValueStore{dir: dir}
}

func (s *FileKeyValueStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *FileKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(payload), true, nil
}

// Set replaces the file through a rename so readers never see a partial value.
func (s *FileKeyValueStore) Set(_ context.Context, key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create kv dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (s *FileKeyValueStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
