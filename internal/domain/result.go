package domain

import "time"

// RunResult represents the result of a single runner invocation
type RunResult struct {
	Args     []string      // Arguments passed to the runner
	Success  bool          // Whether the runner exited with code 0
	ExitCode int           // Runner exit code, -1 if it could not be started
	Output   string        // Captured runner output
	Error    error         // Error if execution failed
	Duration time.Duration // Time taken to execute
}

// RunMeta contains metadata about a picked run
type RunMeta struct {
	Mode            string  `json:"mode"`
	Picked          string  `json:"picked"`
	ParentBranch    string  `json:"parent_branch,omitempty"`
	ExitCode        int     `json:"exit_code"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	Errors          int     `json:"errors"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunReport is the complete output structure persisted after a run
type RunReport struct {
	Meta     RunMeta  `json:"meta"`
	Affected Affected `json:"affected"`
}
