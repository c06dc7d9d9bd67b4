// Package invoker turns an analysis task into a validated process invocation and runs it.
package invoker

import (
	"context"
	"io"
	"maps"

	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/mutant/internal/core/ports"
)

// Invoker validates analysis tasks, builds their invocation and hands it to a ProcessRunner.
// It keeps no state between invocations.
type Invoker struct {
	registry ports.ReferenceRegistry
	runner   ports.ProcessRunner
}

// New creates an Invoker that resolves classpath references through registry
// and launches processes through runner.
func New(registry ports.ReferenceRegistry, runner ports.ProcessRunner) *Invoker {
	return &Invoker{
		registry: registry,
		runner:   runner,
	}
}

// Run builds the invocation for task and executes it synchronously.
//
// Validation errors are returned before any process is started. An error
// from the runner is returned as is.
func (i *Invoker) Run(
	ctx context.Context,
	task *domain.AnalysisTask,
	stdout, stderr io.Writer,
) (*domain.Invocation, error) {
	inv, err := i.Build(task)
	if err != nil {
		return nil, err
	}

	if err := i.runner.Run(ctx, inv, stdout, stderr); err != nil {
		return inv, err
	}
	return inv, nil
}

// Build validates task and returns the invocation that Run would execute.
//
// The classpath is checked and resolved first, then the invocation is
// configured, and only then are the required options checked. Callers rely
// on this order to know which error is reported when several values are
// missing.
func (i *Invoker) Build(task *domain.AnalysisTask) (*domain.Invocation, error) {
	classpath, err := i.ResolveClasspath(task.Classpath)
	if err != nil {
		return nil, err
	}

	inv := &domain.Invocation{
		Classpath:   classpath,
		EntryPoint:  domain.MainEntryPoint,
		FailOnError: true,
		Fork:        true,
		Executable:  task.Java,
		Dir:         task.WorkingDir,
		Environment: maps.Clone(task.Environment),
	}

	opts := task.Options
	if opts == nil {
		opts = domain.NewOptions()
	}

	if err := ValidateRequired(opts); err != nil {
		return nil, err
	}

	for name, value := range opts.Entries() {
		inv.AddArg(domain.Option{Name: name, Value: value}.Flag())
	}

	return inv, nil
}

// ResolveClasspath resolves a classpath specifier.
//
// A specifier that names a registered reference resolves to that reference's
// value; anything else is read as a literal path list.
func (i *Invoker) ResolveClasspath(value string) (domain.Classpath, error) {
	if value == "" {
		return domain.Classpath{}, domain.ErrMissingClasspath
	}

	if i.registry != nil {
		if ref, ok := i.registry.Lookup(value); ok {
			value = ref
		}
	}

	return domain.ParseClasspath(value), nil
}

// ValidateRequired returns a MissingOptionError for the first required option
// that is not set, in RequiredOptions order.
func ValidateRequired(opts *domain.Options) error {
	for _, name := range domain.RequiredOptions {
		if !opts.Contains(name) {
			return &domain.MissingOptionError{Option: name}
		}
	}
	return nil
}
