package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileCache stores each key in its own file under Dir.
// The directory is created with mode 0700 and files are written with 0600.
type FileCache struct {
	Dir string
}

// NewFileCache returns a FileCache rooted at dir.
func NewFileCache(dir string) *FileCache {
	return &FileCache{Dir: dir}
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.Dir, key)
}

// Get implements Reader.
func (c *FileCache) Get(ctx context.Context, key string) (string, bool, error) {
	if !ValidKey(key) {
		return "", false, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements Cache.
// The value is written to a temp file and renamed so a crash never leaves a
// truncated credential behind.
func (c *FileCache) Set(ctx context.Context, key, value string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.Dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete implements Cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
