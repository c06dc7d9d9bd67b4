package jvm_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mutant/internal/adapters/jvm"
	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/mutant/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeJava writes an executable script standing in for the java binary.
func fakeJava(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "java")
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700))
	return path
}

func newInvocation(java string) *domain.Invocation {
	inv := &domain.Invocation{
		EntryPoint:  domain.MainEntryPoint,
		Classpath:   domain.NewClasspath("bin", "lib/util.jar"),
		FailOnError: true,
		Fork:        true,
		Executable:  java,
	}
	inv.AddArg("--targetClasses=com.*")
	return inv
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	lg := mocks.NewMockLogger(gomock.NewController(t))
	lg.EXPECT().Info(gomock.Any()).AnyTimes()
	lg.EXPECT().Warn(gomock.Any()).AnyTimes()
	return lg
}

func TestRunner_PassesJavaArguments(t *testing.T) {
	java := fakeJava(t, `echo "$@"`)
	runner := jvm.NewRunner(quietLogger(t))

	var stdout bytes.Buffer
	err := runner.Run(context.Background(), newInvocation(java), &stdout, io.Discard)
	require.NoError(t, err)

	cp := "bin" + string(os.PathListSeparator) + "lib/util.jar"
	assert.Equal(t, "-cp "+cp+" "+domain.MainEntryPoint+" --targetClasses=com.*\n", stdout.String())
}

func TestRunner_StreamsOutputToLogger(t *testing.T) {
	java := fakeJava(t, "echo line1; echo line2; printf partial; echo oops >&2")

	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info("line1")
	lg.EXPECT().Info("line2")
	lg.EXPECT().Info("partial")
	lg.EXPECT().Warn("oops")

	var stderr bytes.Buffer
	err := jvm.NewRunner(lg).Run(context.Background(), newInvocation(java), io.Discard, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "oops\n", stderr.String())
}

func TestRunner_NonZeroExit(t *testing.T) {
	java := fakeJava(t, "exit 3")

	err := jvm.NewRunner(quietLogger(t)).Run(context.Background(), newInvocation(java), io.Discard, io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRunner_NonZeroExitIgnoredWithoutFailOnError(t *testing.T) {
	java := fakeJava(t, "exit 3")

	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Warn(gomock.Any()).Times(1)

	inv := newInvocation(java)
	inv.FailOnError = false

	require.NoError(t, jvm.NewRunner(lg).Run(context.Background(), inv, io.Discard, io.Discard))
}

func TestRunner_RequiresFork(t *testing.T) {
	inv := newInvocation("/nonexistent/java")
	inv.Fork = false

	err := jvm.NewRunner(quietLogger(t)).Run(context.Background(), inv, io.Discard, io.Discard)

	assert.ErrorIs(t, err, domain.ErrForkRequired)
}

func TestRunner_EnvironmentAndWorkingDir(t *testing.T) {
	java := fakeJava(t, `echo "$MUTANT_TEST_VAR"; pwd`)
	dir := t.TempDir()

	inv := newInvocation(java)
	inv.Dir = dir
	inv.Environment = map[string]string{"MUTANT_TEST_VAR": "value-123"}

	var stdout bytes.Buffer
	require.NoError(t, jvm.NewRunner(quietLogger(t)).Run(context.Background(), inv, &stdout, io.Discard))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "value-123", lines[0])

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(lines[1])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunner_MissingExecutable(t *testing.T) {
	inv := newInvocation("/nonexistent/dir/java")

	err := jvm.NewRunner(quietLogger(t)).Run(context.Background(), inv, io.Discard, io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start java")
}

func TestRunner_Cancelled(t *testing.T) {
	java := fakeJava(t, "sleep 5")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := jvm.NewRunner(quietLogger(t)).Run(ctx, newInvocation(java), io.Discard, io.Discard)
	require.Error(t, err)
}
