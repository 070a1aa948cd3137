package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/api/metrics"
)

// FileStore keeps each key in its own JSON file under a data directory.
// Writes are serialized by a mutex; a single file write is as atomic as
// the underlying filesystem makes it.
type FileStore struct {
	dir string
	mu  sync.Mutex
	log zerolog.Logger
}

func NewFileStore(dir string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) Save(_ context.Context, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path(key), data, 0o600)
}

func (s *FileStore) Load(_ context.Context, key string, out any) (bool, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path(key))
	s.mu.Unlock()

	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt slot: fall back rather than surface the parse failure.
		s.log.Warn().Str("key", key).Err(err).Msg("discarding corrupt storage slot")
		metrics.StorageErrors.WithLabelValues("file").Inc()
		return false, nil
	}
	return true, nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path maps a key to a file name; path separators in keys are flattened so
// a key can never escape the data directory.
func (s *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(key) + ".json"
	return filepath.Join(s.dir, name)
}
