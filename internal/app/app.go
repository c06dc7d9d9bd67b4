// Package app implements the application layer for mutant.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.trai.ch/mutant/internal/adapters/reference"
	"go.trai.ch/mutant/internal/adapters/telemetry"
	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/mutant/internal/core/ports"
	"go.trai.ch/mutant/internal/engine/invoker"
	"go.trai.ch/mutant/internal/ui/style"
	"go.trai.ch/zerr"
)

// tracerName is the instrumentation name of the run tracer.
const tracerName = "mutant"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.ProcessRunner
	logger       ports.Logger
	store        ports.RunStore
	newWatcher   ports.WatcherFactory

	workDir        string
	debounceWindow time.Duration
	now            func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner ports.ProcessRunner,
	log ports.Logger,
	store ports.RunStore,
	newWatcher ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		logger:       log,
		store:        store,
		newWatcher:   newWatcher,
		now:          time.Now,
	}
}

// WithWorkingDir sets the directory the build file is searched from.
// By default the process working directory is used.
func (a *App) WithWorkingDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithDebounceWindow sets how long watch mode waits for changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// WithClock replaces the clock used for run records.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Trace reports span timings of every task through the logger.
	Trace bool
	// NoRecord skips writing run records.
	NoRecord bool
}

// Run loads the build file and runs the named tasks one after another.
// The first failing task stops the run.
func (a *App) Run(ctx context.Context, taskNames []string, opts RunOptions) error {
	project, err := a.load()
	if err != nil {
		return err
	}

	tasks, err := selectTasks(project, taskNames)
	if err != nil {
		return err
	}

	tracer := a.newTracer(opts)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	return a.runTasks(ctx, tracer, project, tasks, opts)
}

func (a *App) runTasks(
	ctx context.Context,
	tracer ports.Tracer,
	project *domain.Project,
	tasks []*domain.AnalysisTask,
	opts RunOptions,
) error {
	inv := invoker.New(newRegistry(project), a.runner)

	for _, task := range tasks {
		if err := a.runTask(ctx, tracer, inv, project, task, opts); err != nil {
			a.logger.Error(zerr.With(zerr.Wrap(err, fmt.Sprintf("task %s failed", task.Name)), "task", task.Name))
			return errors.Join(domain.ErrAnalysisFailed, err)
		}
	}

	return nil
}

func (a *App) runTask(
	ctx context.Context,
	tracer ports.Tracer,
	inv *invoker.Invoker,
	project *domain.Project,
	task *domain.AnalysisTask,
	opts RunOptions,
) error {
	ctx, span := tracer.Start(ctx, task.Name)
	defer span.End()

	span.SetAttribute("task", task.Name)
	a.logger.Info(fmt.Sprintf("running %s", task.Name))

	started := a.now()
	invocation, err := inv.Run(ctx, task, span, span)
	elapsed := a.now().Sub(started)

	if err != nil {
		span.RecordError(err)
	}

	// Validation failures never launch a process and leave no record.
	if invocation == nil {
		return err
	}

	span.SetAttribute("fingerprint", invocation.Fingerprint())
	span.SetAttribute("exit_code", exitCode(err))

	if !opts.NoRecord {
		record := domain.RunRecord{
			TaskName:    task.Name,
			Fingerprint: invocation.Fingerprint(),
			CommandLine: invocation.CommandLine(),
			StartedAt:   started,
			Duration:    elapsed,
			ExitCode:    exitCode(err),
			Succeeded:   err == nil,
		}
		if err != nil {
			record.Error = err.Error()
		}
		if putErr := a.store.Put(project.Root, record); putErr != nil {
			a.logger.Warn(fmt.Sprintf("could not record run of %s: %v", task.Name, putErr))
		}
	}

	if err == nil {
		a.logger.Info(fmt.Sprintf("%s finished in %s", task.Name, elapsed.Round(time.Millisecond)))
	}
	return err
}

// Plan validates the named tasks and writes the command line each would run.
// No process is started.
func (a *App) Plan(_ context.Context, taskNames []string, w io.Writer) error {
	project, err := a.load()
	if err != nil {
		return err
	}

	tasks, err := selectTasks(project, taskNames)
	if err != nil {
		return err
	}

	inv := invoker.New(newRegistry(project), a.runner)
	for i, task := range tasks {
		invocation, err := inv.Build(task)
		if err != nil {
			return zerr.With(zerr.Wrap(err, fmt.Sprintf("task %s is invalid", task.Name)), "task", task.Name)
		}

		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		writePlan(w, task, invocation)
	}

	return nil
}

func writePlan(w io.Writer, task *domain.AnalysisTask, inv *domain.Invocation) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Heading(task.Name), inv.Fingerprint())
	_, _ = fmt.Fprintf(w, "  dir: %s\n", inv.Dir)
	for _, key := range slices.Sorted(maps.Keys(inv.Environment)) {
		_, _ = fmt.Fprintf(w, "  env: %s=%s\n", key, inv.Environment[key])
	}

	args := inv.CommandLine()
	_, _ = fmt.Fprintf(w, "  %s", args[0])
	for _, arg := range args[1:] {
		if strings.HasPrefix(arg, "--") || arg == inv.EntryPoint {
			_, _ = fmt.Fprintf(w, " \\\n    %s", arg)
			continue
		}
		_, _ = fmt.Fprintf(w, " %s", arg)
	}
	_, _ = fmt.Fprintln(w)
}

// Status writes the last recorded run of each named task.
// Without names every task of the build file is listed.
func (a *App) Status(_ context.Context, taskNames []string, w io.Writer) error {
	project, err := a.load()
	if err != nil {
		return err
	}

	if len(taskNames) == 0 {
		taskNames = project.TaskNames()
	}
	tasks, err := selectTasks(project, taskNames)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		record, err := a.store.Get(project.Root, task.Name)
		if err != nil {
			return zerr.With(err, "task", task.Name)
		}

		if record == nil {
			_, _ = fmt.Fprintf(w, "%s %s  never run\n", style.Circle, style.Heading(task.Name))
			continue
		}

		_, _ = fmt.Fprintf(w, "%s %s  last run at %s in %s (exit code %d)\n",
			style.Status(record.Succeeded),
			style.Heading(task.Name),
			record.StartedAt.Format(time.DateTime),
			record.Duration.Round(time.Millisecond),
			record.ExitCode,
		)
		if record.Error != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(record.Error, "\n", "\n    "))
		}
	}

	return nil
}

// Clean removes the run records of the project.
func (a *App) Clean(_ context.Context) error {
	project, err := a.load()
	if err != nil {
		return err
	}

	path := filepath.Join(project.Root, domain.DefaultRunsPath())
	a.logger.Info("removing run records...")
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove run records"), "path", path)
	}
	a.logger.Info("removed run records")

	return nil
}

func (a *App) load() (*domain.Project, error) {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	project, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

func (a *App) newTracer(opts RunOptions) ports.Tracer {
	if !opts.Trace {
		return telemetry.NewNoOpTracer()
	}

	tracer := telemetry.NewOTelTracer(tracerName, telemetry.NewBridge(a.logger))
	otel.SetTracerProvider(tracer.Provider())
	return tracer
}

// selectTasks resolves every name before anything runs.
func selectTasks(project *domain.Project, names []string) ([]*domain.AnalysisTask, error) {
	if len(names) == 0 {
		return nil, domain.ErrNoTasksSpecified
	}

	tasks := make([]*domain.AnalysisTask, 0, len(names))
	for _, name := range names {
		task, err := project.Task(name)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// newRegistry exposes the project's references and the built-in ones.
func newRegistry(project *domain.Project) *reference.Registry {
	registry := reference.NewRegistry(project.References)
	registry.Define(domain.RootReference, project.Root)
	return registry
}

type metadataer interface {
	Metadata() map[string]any
}

// exitCode extracts the exit_code recorded by the runner.
// It returns 0 for nil and -1 when no code is known.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	for current := err; current != nil; current = errors.Unwrap(current) {
		md, ok := current.(metadataer)
		if !ok {
			continue
		}
		if code, ok := md.Metadata()["exit_code"].(int); ok {
			return code
		}
	}
	return -1
}
