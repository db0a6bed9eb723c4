package domain

import "time"

// RunStatus tracks a run through its lifecycle.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RunRecord is the persisted summary of one engine run. The engine itself
// never touches records; the runner writes one before execution starts and
// finalizes it when the run ends, so intermediate node state is never stored.
type RunRecord struct {
	ID         string     `json:"id"`
	Flow       string     `json:"flow"`
	Status     RunStatus  `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Results    Results    `json:"results,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Finished reports whether the run reached a terminal status.
func (r RunRecord) Finished() bool {
	return r.Status == RunCompleted || r.Status == RunFailed
}
