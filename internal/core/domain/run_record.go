package domain

import "time"

// RunRecord is the outcome of the last analysis run of a task.
type RunRecord struct {
	TaskName    string        `json:"task_name"`
	Fingerprint string        `json:"fingerprint"`
	CommandLine []string      `json:"command_line"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	ExitCode    int           `json:"exit_code"`
	Succeeded   bool          `json:"succeeded"`
	Error       string        `json:"error,omitempty"`
}
