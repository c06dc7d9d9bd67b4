package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingClasspath is returned when a task does not specify a classpath.
	ErrMissingClasspath = zerr.New("You must specify the classpath.")

	// ErrMissingOption is matched by every MissingOptionError.
	ErrMissingOption = zerr.New("missing required option")

	// ErrUnknownOption is returned when a build file sets an option the analysis tool does not accept.
	ErrUnknownOption = zerr.New("unknown option")

	// ErrInvalidOptionValue is returned when an option value cannot be rendered as a flag value.
	ErrInvalidOptionValue = zerr.New("invalid option value")

	// ErrInvalidClasspath is returned when a classpath entry in the build file is neither a string nor a list.
	ErrInvalidClasspath = zerr.New("invalid classpath, expected a string or a list of paths")

	// ErrInvalidReference is returned when a reference value is neither a string nor a list.
	ErrInvalidReference = zerr.New("invalid reference, expected a string or a list of paths")

	// ErrTaskNotFound is returned when a requested task is not declared in the build file.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrNoTasksSpecified is returned when a command needs at least one task name.
	ErrNoTasksSpecified = zerr.New("no tasks specified")

	// ErrForkRequired is returned when an invocation asks to run the analysis in-process.
	ErrForkRequired = zerr.New("the analysis can only run in a forked JVM")

	// ErrJavaNotFound is returned when no JVM executable can be located.
	ErrJavaNotFound = zerr.New("could not find a java executable, set JAVA_HOME or the task's java field")

	// ErrAnalysisFailed is returned when the analysis process of a task fails.
	ErrAnalysisFailed = zerr.New("mutation analysis failed")

	// ErrConfigNotFound is returned when no build file can be found.
	ErrConfigNotFound = zerr.New("could not find mutant.yaml or mutant.toml")

	// ErrConfigReadFailed is returned when the build file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the build file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigFormat is returned for build files with an unknown extension.
	ErrUnsupportedConfigFormat = zerr.New("unsupported config format")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrStoreCreateFailed is returned when the run record directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create run record directory")

	// ErrStoreReadFailed is returned when a run record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read run record")

	// ErrStoreUnmarshalFailed is returned when a run record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal run record")

	// ErrStoreMarshalFailed is returned when a run record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal run record")

	// ErrStoreWriteFailed is returned when a run record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write run record")
)

// MissingOptionError reports a required option that was not set on a task.
type MissingOptionError struct {
	Option OptionName
}

// Error implements the error interface.
func (e *MissingOptionError) Error() string {
	return "You must specify the " + string(e.Option) + "."
}

// Is reports whether target is ErrMissingOption.
func (e *MissingOptionError) Is(target error) bool {
	return target == ErrMissingOption
}
