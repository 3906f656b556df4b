package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/tokens"
)

const fileVersion = 1

var _ tokens.Repo = (*Store)(nil)

// fileData is the on-disk layout. Exactly one of Values or Sealed is set.
type fileData struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values,omitempty"`
	Salt    []byte            `json:"salt,omitempty"`
	Nonce   []byte            `json:"nonce,omitempty"`
	Sealed  []byte            `json:"sealed,omitempty"`
}

// Store keeps the tokens in a single JSON file. Every Set and Delete rewrites
// the file through a temp file and rename, so each key update is atomic.
type Store struct {
	path       string
	passphrase string
	mu         sync.Mutex
}

type Option func(*Store)

// WithPassphrase seals the stored values with a key derived from passphrase.
func WithPassphrase(passphrase string) Option {
	return func(s *Store) {
		s.passphrase = passphrase
	}
}

// New returns a file backed token store at path. The file is created lazily on
// the first write.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", tokens.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *Store) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("[filestore read] %w: %w", panelerrors.ErrTokenStore, err)
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("[filestore read] %w: %w", panelerrors.ErrInvalidPayload, err)
	}

	if len(data.Sealed) == 0 {
		if data.Values == nil {
			data.Values = make(map[string]string)
		}
		return data.Values, nil
	}

	if s.passphrase == "" {
		return nil, fmt.Errorf("[filestore read] %w: file is sealed and no passphrase is configured", panelerrors.ErrTokenStore)
	}
	values, err := open(s.passphrase, data)
	if err != nil {
		return nil, fmt.Errorf("[filestore read] %w: %w", panelerrors.ErrTokenStore, err)
	}
	return values, nil
}

func (s *Store) write(values map[string]string) error {
	data := fileData{Version: fileVersion}
	if s.passphrase == "" {
		data.Values = values
	} else {
		sealed, err := seal(s.passphrase, values)
		if err != nil {
			return fmt.Errorf("[filestore write] %w: %w", panelerrors.ErrTokenStore, err)
		}
		data = sealed
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("[filestore write] %w: %w", panelerrors.ErrTokenStore, err)
	}

	if err := writeFileAtomic(s.path, raw); err != nil {
		return fmt.Errorf("[filestore write] %w: %w", panelerrors.ErrTokenStore, err)
	}
	return nil
}

func writeFileAtomic(path string, raw []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
