package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

var validTaskNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// AnalysisTask is a mutation analysis step declared in the build file.
type AnalysisTask struct {
	Name string
	// Classpath is a reference name or a literal path list. Empty means unset.
	Classpath   string
	Options     *Options
	Java        string
	Environment map[string]string
	// WorkingDir is where the analysis process runs.
	WorkingDir string
}

// NewAnalysisTask creates a task with an empty option set.
func NewAnalysisTask(name string) *AnalysisTask {
	return &AnalysisTask{
		Name:    name,
		Options: NewOptions(),
	}
}

// ValidateTaskName checks that name can be used on the command line.
func ValidateTaskName(name string) error {
	if !validTaskNameRegex.MatchString(name) {
		return zerr.With(ErrInvalidTaskName, "task_name", name)
	}
	return nil
}

// Project is a loaded build file.
type Project struct {
	// Root is the absolute project directory. Processes run here.
	Root string
	// ConfigPath is the build file the project was loaded from.
	ConfigPath string
	// References maps reference names to their string form.
	References map[string]string

	tasks map[string]*AnalysisTask
	order []string
}

// NewProject creates an empty project rooted at root.
func NewProject(root, configPath string) *Project {
	return &Project{
		Root:       root,
		ConfigPath: configPath,
		References: make(map[string]string),
		tasks:      make(map[string]*AnalysisTask),
	}
}

// AddTask registers a task. Tasks keep the order they were added in.
func (p *Project) AddTask(task *AnalysisTask) {
	if _, ok := p.tasks[task.Name]; !ok {
		p.order = append(p.order, task.Name)
	}
	p.tasks[task.Name] = task
}

// Task returns the named task.
func (p *Project) Task(name string) (*AnalysisTask, error) {
	task, ok := p.tasks[name]
	if !ok {
		return nil, zerr.With(ErrTaskNotFound, "task", name)
	}
	return task, nil
}

// TaskNames returns the task names in declaration order.
func (p *Project) TaskNames() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
