package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.trai.ch/mutant/internal/adapters/watcher"
	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/mutant/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch runs the named tasks once and again whenever files below the project
// root change. Failed runs are reported and watching continues. Watch returns
// when ctx is cancelled.
func (a *App) Watch(ctx context.Context, taskNames []string, opts RunOptions) error {
	project, err := a.load()
	if err != nil {
		return err
	}
	if _, err := selectTasks(project, taskNames); err != nil {
		return err
	}

	if a.newWatcher == nil {
		return zerr.New("file watching is not available")
	}
	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	if err := w.Start(ctx, project.Root); err != nil {
		return err
	}

	tracer := a.newTracer(opts)
	defer func() {
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	var current atomic.Pointer[domain.Project]
	current.Store(project)

	window := a.debounceWindow
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		select {
		case changes <- paths:
		default:
			// A re-run is already queued.
		}
	})

	a.runOnce(ctx, tracer, project, taskNames, opts)
	a.logger.Info(fmt.Sprintf("watching %s for changes", project.Root))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range w.Events() {
			if isOutput(current.Load(), event) {
				continue
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-changes:
				a.logger.Info(fmt.Sprintf("%d file(s) changed, running again", len(paths)))

				reloaded, err := a.load()
				if err != nil {
					a.logger.Error(err)
					continue
				}
				current.Store(reloaded)
				a.runOnce(ctx, tracer, reloaded, taskNames, opts)
			}
		}
	})

	return g.Wait()
}

// runOnce runs the tasks of one watch cycle. Errors are logged, not returned.
func (a *App) runOnce(
	ctx context.Context,
	tracer ports.Tracer,
	project *domain.Project,
	taskNames []string,
	opts RunOptions,
) {
	tasks, err := selectTasks(project, taskNames)
	if err != nil {
		a.logger.Error(err)
		return
	}
	// Task failures are logged by runTasks.
	_ = a.runTasks(ctx, tracer, project, tasks, opts)
}

// isOutput reports whether event concerns a file the tool writes itself:
// the state directory, VCS and IDE metadata, or a task's report directory.
func isOutput(project *domain.Project, event ports.WatchEvent) bool {
	if watcher.IsIgnored(project.Root, event.Path) {
		return true
	}

	for _, name := range project.TaskNames() {
		task, err := project.Task(name)
		if err != nil {
			continue
		}
		reportDir, ok := task.Options.Get(domain.OptReportDir)
		if !ok || reportDir == "" {
			continue
		}
		if !filepath.IsAbs(reportDir) {
			reportDir = filepath.Join(task.WorkingDir, reportDir)
		}
		if isWithin(reportDir, event.Path) {
			return true
		}
	}

	return false
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
