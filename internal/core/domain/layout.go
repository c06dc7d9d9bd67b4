package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal project directory.
	StateDirName = ".mutant"

	// RunsDirName is the name of the run record directory.
	RunsDirName = "runs"

	// YAMLFileName is the name of the YAML build file.
	YAMLFileName = "mutant.yaml"

	// YMLFileName is the alternative name of the YAML build file.
	YMLFileName = "mutant.yml"

	// TOMLFileName is the name of the TOML build file.
	TOMLFileName = "mutant.toml"

	// RootReference names the built-in reference that resolves to the project root.
	RootReference = "mutant.root"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// ConfigFileNames lists the build file names in lookup order.
var ConfigFileNames = []string{YAMLFileName, YMLFileName, TOMLFileName}

// DefaultRunsPath returns the run record directory relative to the project root.
// It joins .mutant and runs.
func DefaultRunsPath() string {
	return filepath.Join(StateDirName, RunsDirName)
}
