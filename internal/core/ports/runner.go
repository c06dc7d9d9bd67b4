// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/mutant/internal/core/domain"
)

// ProcessRunner launches the analysis process described by an invocation.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ProcessRunner interface {
	// Run starts the process and waits for it to exit.
	//
	// Process output is copied to stdout and stderr as it is produced.
	// It returns an error if the process cannot be launched, or if it exits
	// with a non-zero status while inv.FailOnError is set.
	Run(ctx context.Context, inv *domain.Invocation, stdout, stderr io.Writer) error
}
