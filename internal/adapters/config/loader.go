// Package config provides the build file loader for mutant.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/mutant/internal/core/domain"
	"go.trai.ch/mutant/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the build file version this loader understands.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader for YAML and TOML build files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load finds the nearest build file at or above cwd and returns the project it declares.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var bf Buildfile
	if err := l.decode(configPath, &bf); err != nil {
		return nil, err
	}

	if bf.Version != "" && bf.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", filepath.Base(configPath), bf.Version, SupportedVersion))
	}

	project := domain.NewProject(resolveRoot(configPath, bf.Root), configPath)

	for _, name := range slices.Sorted(maps.Keys(bf.References)) {
		value, err := joinPaths(bf.References[name])
		if err != nil {
			return nil, zerr.With(domain.ErrInvalidReference, "reference", name)
		}
		project.References[name] = value
	}

	for _, name := range slices.Sorted(maps.Keys(bf.Tasks)) {
		task, err := buildTask(name, bf.Tasks[name], project.Root)
		if err != nil {
			return nil, zerr.With(err, "file", configPath)
		}
		project.AddTask(task)
	}

	return project, nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		for _, name := range domain.ConfigFileNames {
			candidate := filepath.Join(currentDir, name)
			if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) decode(configPath string, target *Buildfile) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", configPath)
	}

	switch filepath.Ext(configPath) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to the zero Buildfile.
		if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", configPath)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(target); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", configPath)
		}
	default:
		return zerr.With(domain.ErrUnsupportedConfigFormat, "file", configPath)
	}

	return nil
}

// buildTask converts a task definition into a domain.AnalysisTask.
func buildTask(name string, dto *TaskDTO, root string) (*domain.AnalysisTask, error) {
	if err := domain.ValidateTaskName(name); err != nil {
		return nil, err
	}

	task := domain.NewAnalysisTask(name)
	task.WorkingDir = root
	if dto == nil {
		return task, nil
	}

	classpath, err := joinPaths(dto.Classpath)
	if err != nil {
		return nil, zerr.With(domain.ErrInvalidClasspath, "task", name)
	}
	task.Classpath = classpath
	task.Java = dto.Java
	task.Environment = dto.Environment
	task.WorkingDir = resolveTaskWorkingDir(root, dto.WorkingDir)

	for _, key := range slices.Sorted(maps.Keys(dto.Options)) {
		option := domain.OptionName(key)
		if !option.IsRecognized() {
			err := zerr.With(domain.ErrUnknownOption, "option", key)
			return nil, zerr.With(err, "task", name)
		}

		value, err := formatValue(dto.Options[key])
		if err != nil {
			err = zerr.With(err, "option", key)
			return nil, zerr.With(err, "task", name)
		}
		task.Options.Set(option, value)
	}

	return task, nil
}

// formatValue renders an option value as it appears after the '=' of its flag.
// Lists are joined with commas, null becomes the empty string.
func formatValue(v any) (string, error) {
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if _, nested := item.([]any); nested {
				return "", domain.ErrInvalidOptionValue
			}
			s, err := formatScalar(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	}
	return formatScalar(v)
}

func formatScalar(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", zerr.With(domain.ErrInvalidOptionValue, "type", fmt.Sprintf("%T", v))
	}
}

// joinPaths accepts a path list string or a list of paths and returns a
// single path list string joined with the host separator.
func joinPaths(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return "", domain.ErrInvalidClasspath
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, string(os.PathListSeparator)), nil
	default:
		return "", domain.ErrInvalidClasspath
	}
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// resolveTaskWorkingDir resolves the working directory for a task.
// If configuredWorkingDir is empty, uses baseDir.
// If configuredWorkingDir is absolute, uses it directly.
// Otherwise, joins it with baseDir.
func resolveTaskWorkingDir(baseDir, configuredWorkingDir string) string {
	if configuredWorkingDir == "" {
		return baseDir
	}
	if filepath.IsAbs(configuredWorkingDir) {
		return filepath.Clean(configuredWorkingDir)
	}
	return filepath.Clean(filepath.Join(baseDir, configuredWorkingDir))
}
