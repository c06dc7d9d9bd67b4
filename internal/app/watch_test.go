package app_test

import (
	"context"
	"errors"
	"io"
	"iter"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mutant/internal/app"
	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/mutant/internal/core/ports"
	"go.trai.ch/mutant/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func channelEvents(events <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range events {
			if !yield(event) {
				return
			}
		}
	}
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loader := mocks.NewMockConfigLoader(ctrl)
		runner := mocks.NewMockProcessRunner(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		store := mocks.NewMockRunStore(ctrl)
		w := mocks.NewMockWatcher(ctrl)

		events := make(chan ports.WatchEvent)

		logger.EXPECT().Info(gomock.Any()).AnyTimes()
		loader.EXPECT().Load("/work").Return(newProject(newTask("unit")), nil).Times(2)
		w.EXPECT().Start(gomock.Any(), "/work").Return(nil)
		w.EXPECT().Events().Return(channelEvents(events))
		w.EXPECT().Stop().Return(nil)
		store.EXPECT().Put("/work", gomock.Any()).Return(nil).Times(2)

		runs := 0
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, _ *domain.Invocation, _, _ io.Writer) { runs++ }).
			Return(nil).Times(2)

		a := app.New(loader, runner, logger, store, func() (ports.Watcher, error) { return w, nil }).
			WithWorkingDir("/work").
			WithDebounceWindow(50 * time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, []string{"unit"}, app.RunOptions{})
		}()

		synctest.Wait()
		assert.Equal(t, 1, runs)

		// Files the tool writes itself never trigger a run.
		events <- ports.WatchEvent{Path: "/work/.mutant/runs/unit.json", Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: "/work/report/index.html", Operation: ports.OpCreate}
		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, 1, runs)

		// A burst of source changes triggers exactly one run.
		events <- ports.WatchEvent{Path: "/work/src/Calculator.java", Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: "/work/src/CalculatorTest.java", Operation: ports.OpWrite}
		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, 2, runs)

		cancel()
		close(events)
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_KeepsWatchingAfterFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loader := mocks.NewMockConfigLoader(ctrl)
		runner := mocks.NewMockProcessRunner(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		store := mocks.NewMockRunStore(ctrl)
		w := mocks.NewMockWatcher(ctrl)

		events := make(chan ports.WatchEvent)

		logger.EXPECT().Info(gomock.Any()).AnyTimes()
		logger.EXPECT().Error(gomock.Any()).Times(1)
		loader.EXPECT().Load("/work").Return(newProject(newTask("unit")), nil).Times(2)
		w.EXPECT().Start(gomock.Any(), "/work").Return(nil)
		w.EXPECT().Events().Return(channelEvents(events))
		w.EXPECT().Stop().Return(nil)
		store.EXPECT().Put("/work", gomock.Any()).Return(nil).Times(2)

		gomock.InOrder(
			runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("exit status 1")),
			runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)

		a := app.New(loader, runner, logger, store, func() (ports.Watcher, error) { return w, nil }).
			WithWorkingDir("/work").
			WithDebounceWindow(50 * time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, []string{"unit"}, app.RunOptions{})
		}()

		synctest.Wait()
		events <- ports.WatchEvent{Path: "/work/src/Calculator.java", Operation: ports.OpWrite}
		time.Sleep(time.Second)
		synctest.Wait()

		cancel()
		close(events)
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_UnknownTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("/work").Return(newProject(newTask("unit")), nil)

	factoryCalled := false
	a := app.New(loader, nil, nil, nil, func() (ports.Watcher, error) {
		factoryCalled = true
		return nil, errors.New("unexpected")
	}).WithWorkingDir("/work")

	err := a.Watch(context.Background(), []string{"missing"}, app.RunOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrTaskNotFound.Error())
	assert.False(t, factoryCalled)
}
