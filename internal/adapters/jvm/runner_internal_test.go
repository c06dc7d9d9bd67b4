package jvm

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mutant/internal/core/domain"
)

func writeExecutable(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o700))
}

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		sysEnv    []string
		overrides map[string]string
		expected  []string
	}{
		{
			name:     "system only",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			expected: []string{"USER=test", "PATH=/bin"},
		},
		{
			name:      "override",
			sysEnv:    []string{"USER=test", "PATH=/bin"},
			overrides: map[string]string{"USER": "mutant"},
			expected:  []string{"USER=mutant", "PATH=/bin"},
		},
		{
			name:      "addition",
			sysEnv:    []string{"PATH=/bin"},
			overrides: map[string]string{"MAVEN_OPTS": "-Xmx1g"},
			expected:  []string{"PATH=/bin", "MAVEN_OPTS=-Xmx1g"},
		},
		{
			name:     "malformed entries dropped",
			sysEnv:   []string{"NOEQUALS", "A=b=c"},
			expected: []string{"A=b=c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.overrides))
		})
	}
}

func TestResolveJava_Order(t *testing.T) {
	home := t.TempDir()
	pathDir := t.TempDir()
	writeExecutable(t, filepath.Join(home, "bin", "java"))
	writeExecutable(t, filepath.Join(pathDir, "java"))

	env := []string{"JAVA_HOME=" + home, "PATH=" + pathDir}

	got, err := resolveJava("/opt/jdk/bin/java", env)
	require.NoError(t, err)
	assert.Equal(t, "/opt/jdk/bin/java", got, "explicit path wins")

	got, err = resolveJava("", env)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "bin", "java"), got, "JAVA_HOME before PATH")

	got, err = resolveJava("", []string{"PATH=" + pathDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pathDir, "java"), got)

	got, err = resolveJava("", []string{"JAVA_HOME=/nonexistent", "PATH=" + pathDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pathDir, "java"), got, "broken JAVA_HOME falls back to PATH")
}

func TestResolveJava_NamedExecutableOnPath(t *testing.T) {
	pathDir := t.TempDir()
	writeExecutable(t, filepath.Join(pathDir, "java17"))

	got, err := resolveJava("java17", []string{"PATH=" + pathDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pathDir, "java17"), got)

	_, err = resolveJava("java21", []string{"PATH=" + pathDir})
	assert.ErrorContains(t, err, domain.ErrJavaNotFound.Error())
}

func TestResolveJava_NotFound(t *testing.T) {
	_, err := resolveJava("", []string{"PATH=" + t.TempDir()})
	assert.ErrorIs(t, err, domain.ErrJavaNotFound)
}

func TestLookPath(t *testing.T) {
	_, err := lookPath("java", []string{"USER=test"})
	assert.Error(t, err, "no PATH")

	_, err = lookPath("java", []string{"PATH=/nonexistent/dir"})
	assert.Error(t, err)

	_, err = lookPath("java", []string{"PATH=:" + t.TempDir()})
	assert.Error(t, err, "empty element means the current directory")
}

func TestFindExecutable(t *testing.T) {
	assert.Error(t, findExecutable("/nonexistent/file"))
	assert.Error(t, findExecutable(t.TempDir()), "directories are not executable")

	plain := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(plain, nil, 0o600))
	assert.ErrorIs(t, findExecutable(plain), os.ErrPermission)
}

func TestLogWriter_SplitsLines(t *testing.T) {
	var got []string
	w := &logWriter{logger: recordingLogger{lines: &got}}

	_, _ = w.Write([]byte("par"))
	_, _ = w.Write([]byte("t1\r\npart2\nrest"))
	_ = w.Close()

	assert.True(t, slices.Equal([]string{"part1", "part2", "rest"}, got), got)
}

type recordingLogger struct {
	lines *[]string
}

func (r recordingLogger) Info(msg string) { *r.lines = append(*r.lines, msg) }
func (r recordingLogger) Warn(msg string) { *r.lines = append(*r.lines, msg) }
func (r recordingLogger) Error(error)     {}
