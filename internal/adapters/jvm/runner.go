// Package jvm provides a process runner that launches the analysis in a forked JVM.
package jvm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/mutant/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	logger  ports.Logger
	environ func() []string
}

// NewRunner creates a Runner that echoes process output to logger.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger:  logger,
		environ: os.Environ,
	}
}

// Run launches the JVM described by inv and waits for it to exit.
func (r *Runner) Run(ctx context.Context, inv *domain.Invocation, stdout, stderr io.Writer) error {
	if !inv.Fork {
		return domain.ErrForkRequired
	}

	env := resolveEnvironment(r.environ(), inv.Environment)

	java, err := resolveJava(inv.Executable, env)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, java, inv.JavaArgs()...) //nolint:gosec // java path comes from the build file
	cmd.Dir = inv.Dir
	cmd.Env = env

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open stdout")
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open stderr")
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start java"), "java", java)
	}

	stdoutLog := &logWriter{logger: r.logger, level: levelInfo}
	stderrLog := &logWriter{logger: r.logger, level: levelWarn}

	var g errgroup.Group
	g.Go(func() error { return copyStream(outPipe, stdoutLog, stdout) })
	g.Go(func() error { return copyStream(errPipe, stderrLog, stderr) })

	// The pipes must be drained before Wait closes them.
	copyErr := g.Wait()
	waitErr := cmd.Wait()

	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if !inv.FailOnError && exitCode > 0 {
			r.logger.Warn("analysis exited with a non-zero status, ignoring")
			return nil
		}
		return zerr.With(zerr.Wrap(waitErr, "command failed"), "exit_code", exitCode)
	}

	if copyErr != nil {
		return zerr.Wrap(copyErr, "failed to read process output")
	}
	return nil
}

func copyStream(src io.Reader, log *logWriter, w io.Writer) error {
	defer func() { _ = log.Close() }()

	dst := io.Writer(log)
	if w != nil {
		dst = io.MultiWriter(log, w)
	}
	_, err := io.Copy(dst, src)
	return err
}

type logLevel uint8

const (
	levelInfo logLevel = iota
	levelWarn
)

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	level  logLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes a trailing line without newline.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	if w.logger == nil {
		return
	}

	msg := strings.TrimSuffix(string(line), "\r")
	if w.level == levelWarn {
		w.logger.Warn(msg)
		return
	}
	w.logger.Info(msg)
}

// resolveEnvironment returns sysEnv with the task overrides applied.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))

	set := func(k, v string) {
		if _, ok := envMap[k]; !ok {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}
	for k, v := range overrides {
		set(k, v)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// resolveJava picks the java executable: the explicit executable first, then
// JAVA_HOME/bin/java, then java on PATH.
func resolveJava(executable string, env []string) (string, error) {
	if executable != "" {
		if strings.ContainsRune(executable, filepath.Separator) || strings.ContainsRune(executable, '/') {
			return executable, nil
		}
		if lp, err := lookPath(executable, env); err == nil {
			return lp, nil
		}
		return "", zerr.With(domain.ErrJavaNotFound, "java", executable)
	}

	if home := getenv(env, "JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", javaBinary())
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}

	if lp, err := lookPath(javaBinary(), env); err == nil {
		return lp, nil
	}

	return "", domain.ErrJavaNotFound
}

func getenv(env []string, key string) string {
	prefix := key + "="
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, prefix); ok {
			return v
		}
	}
	return ""
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	path := getenv(env, "PATH")
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
