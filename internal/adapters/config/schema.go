package config

// Buildfile represents the structure of mutant.yaml and mutant.toml.
type Buildfile struct {
	Version string `yaml:"version" toml:"version"`
	Root    string `yaml:"root"    toml:"root"`
	// References maps a reference name to a path string or a list of paths.
	References map[string]any      `yaml:"references" toml:"references"`
	Tasks      map[string]*TaskDTO `yaml:"tasks"      toml:"tasks"`
}

// TaskDTO represents an analysis task definition in the build file.
type TaskDTO struct {
	// Classpath is a reference name, a path list string or a list of paths.
	Classpath   any               `yaml:"classpath"   toml:"classpath"`
	Java        string            `yaml:"java"        toml:"java"`
	Environment map[string]string `yaml:"environment" toml:"environment"`
	WorkingDir  string            `yaml:"workingDir"  toml:"workingDir"`
	Options     map[string]any    `yaml:"options"     toml:"options"`
}
