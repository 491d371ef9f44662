package localstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileStore persists each key as one JSON file under a directory. Writes go
// through a temp file and rename so a record is always either the old or the
// new value, never a partial write.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a FileStore
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating local store directory")
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	// Keys are well-known names, but keep the filename safe regardless
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(f.dir, safe+".json")
}

// Get reads the record stored under key
func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "reading %q", key)
	}
	return data, nil
}

// Set overwrites the record stored under key
func (f *FileStore) Set(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, "."+filepath.Base(f.path(key))+".tmp-")
	if err != nil {
		return errors.Wrapf(err, "writing %q", key)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %q", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %q", key)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %q", key)
	}
	return nil
}

// Delete removes the record stored under key. Deleting an absent key is not
// an error.
func (f *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting %q", key)
	}
	return nil
}
