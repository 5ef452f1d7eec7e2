package domain

import "time"

// ProcessSpec describes one external command invocation.
// Keep it generic so the domain does not depend on os/exec types.
type ProcessSpec struct {
	Args     []string // argv, Args[0] is the executable
	Dir      string   // working directory; empty means caller's CWD
	ExtraEnv []string // KEY=VALUE pairs appended to the inherited environment
}

// ProcessResult is a bounded snapshot of a finished process.
type ProcessResult struct {
	ExitCode int
	Output   []byte // combined stdout/stderr
	Duration time.Duration
}

// Command returns the executable name, or "" for an empty spec.
func (s ProcessSpec) Command() string {
	if len(s.Args) == 0 {
		return ""
	}
	return s.Args[0]
}
