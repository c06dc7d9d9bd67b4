// Package cas implements run record storage under the project state directory.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.RunStore using a file-per-task strategy.
type Store struct{}

// NewStore creates a new run record store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the last run record of a task. It returns nil, nil if the task never ran.
func (s *Store) Get(root, taskName string) (*domain.RunRecord, error) {
	filename := s.getFilename(root, taskName)
	//nolint:gosec // Path is constructed from the project root and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var record domain.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	return &record, nil
}

// Put stores the run record, replacing the previous one.
func (s *Store) Put(root string, record domain.RunRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, record.TaskName)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from the project root and a hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(root, taskName string) string {
	hash := sha256.Sum256([]byte(taskName))
	return filepath.Join(root, domain.DefaultRunsPath(), hex.EncodeToString(hash[:])+".json")
}
