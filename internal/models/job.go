package models

// Job statuses exposed by the two-phase job contract. The emulator completes
// every batch synchronously, but the external contract stays asynchronous:
// submit returns "queued", a later fetch observes "completed".
const (
	JobQueued    = "queued"
	JobCompleted = "completed"
)

// JobResult is one per-item outcome in a batch job. The populated fields vary
// by operation: user creation fills index+id, ticket import adds account_id
// and success, ticket update adds action and status.
type JobResult struct {
	Index     int    `json:"index"`
	ID        int64  `json:"id"`
	AccountID string `json:"account_id,omitempty"`
	Action    string `json:"action,omitempty"`
	Status    string `json:"status,omitempty"`
	Success   bool   `json:"success,omitempty"`
}

// Job wraps the result of one batch mutation, retrievable indefinitely by id.
type Job struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"created_at"`
	Results   []JobResult `json:"results"`
}

// Clone returns a deep copy of the job.
func (j *Job) Clone() *Job {
	c := *j
	c.Results = append([]JobResult(nil), j.Results...)
	return &c
}
