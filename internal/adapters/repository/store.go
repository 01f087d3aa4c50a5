package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
)

// Store persists each logical record collection as a pretty-printed
// JSON document inside a single data directory. Missing or corrupt
// content degrades to the caller's default value instead of failing:
// a broken file must never take the rest of the app down with it.
type Store struct {
	dir    string
	logger *logger.Logger
}

// NewStore creates the data directory if needed and returns a store
// rooted there.
func NewStore(dir string, appLogger *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: appLogger.WithComponent("store"),
	}, nil
}

// Dir returns the store's data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load reads the named document into dest. A missing file leaves dest
// at its zero value; unparseable content is logged and likewise leaves
// dest untouched, recovering per the store-corrupt policy.
func (s *Store) Load(name string, dest interface{}) error {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store %q: %w", name, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warnw("store content unreadable, using empty default",
			"store", name,
			"error", fmt.Errorf("%w: %v", entities.ErrStoreCorrupt, err).Error(),
		)
		return nil
	}
	return nil
}

// Save atomically overwrites the named document with pretty-printed
// JSON: write to a temp file in the same directory, then rename.
func (s *Store) Save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store %q: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %q: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store %q: %w", name, err)
	}
	return nil
}
