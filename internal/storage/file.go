package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

type codec struct {
	marshal   func(map[string]string) ([]byte, error)
	unmarshal func([]byte, *map[string]string) error
}

var codecs = map[string]codec{
	".json": {
		marshal: func(v map[string]string) ([]byte, error) {
			return sonic.ConfigStd.MarshalIndent(v, "", "  ")
		},
		unmarshal: func(data []byte, v *map[string]string) error {
			return sonic.ConfigStd.Unmarshal(data, v)
		},
	},
	".yaml": {
		marshal:   func(v map[string]string) ([]byte, error) { return yaml.Marshal(v) },
		unmarshal: func(data []byte, v *map[string]string) error { return yaml.Unmarshal(data, v) },
	},
	".toml": {
		marshal:   func(v map[string]string) ([]byte, error) { return toml.Marshal(v) },
		unmarshal: func(data []byte, v *map[string]string) error { return toml.Unmarshal(data, v) },
	},
}

func init() {
	codecs[".yml"] = codecs[".yaml"]
}

// FileStore persists values to a single file. Each mutation rewrites the
// file atomically with mode 0600.
type FileStore struct {
	path  string
	codec codec
	mu    sync.Mutex
}

// NewFileStore creates a store backed by path. The file need not exist.
func NewFileStore(path string) (*FileStore, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c, ok := codecs[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &FileStore{path: path, codec: c}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		// Nothing in the file can be read back, so nothing in it survives.
		return s.write(make(map[string]string))
	}
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

// readForWrite is read with an undecodable file treated as empty, so a
// damaged file is replaced by the next write.
func (s *FileStore) readForWrite() (map[string]string, error) {
	values, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		return make(map[string]string), nil
	}
	return values, err
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	values := make(map[string]string)
	if len(strings.TrimSpace(string(data))) == 0 {
		return values, nil
	}
	if err := s.codec.unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := s.codec.marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
