package ports

import "go.trai.ch/mutant/internal/core/domain"

// RunStore defines the interface for storing and retrieving run records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStore interface {
	// Get retrieves the last run record of a task.
	// Returns nil, nil if not found.
	Get(root, taskName string) (*domain.RunRecord, error)

	// Put stores the run record, replacing the previous one.
	Put(root string, record domain.RunRecord) error
}
