package core

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goatkit/mockdesk/internal/apierrors"
	"github.com/goatkit/mockdesk/internal/models"
)

// JobStatus is the rendered job envelope. Total, Progress and Message are
// null while the job is queued and populated once it is observed completed,
// matching the emulated platform's bulk-operation contract.
type JobStatus struct {
	ID       string             `json:"id"`
	URL      string             `json:"url"`
	Status   string             `json:"status"`
	Total    *int               `json:"total"`
	Progress *int               `json:"progress"`
	Message  *string            `json:"message"`
	Results  []models.JobResult `json:"results,omitempty"`
}

// JobEnvelope wraps a JobStatus the way the wire format does.
type JobEnvelope struct {
	JobStatus JobStatus `json:"job_status"`
}

// SubmitJob records the per-item outcomes of a bulk mutation as a job in the
// snapshot and returns its id. The batch has already completed synchronously
// by the time this runs; the job exists so that phase two of the contract
// (fetch by id) works unchanged if submission ever becomes genuinely
// asynchronous.
func (s *Service) SubmitJob(snap *models.Snapshot, results []models.JobResult) string {
	job := &models.Job{
		ID:        uuid.NewString(),
		CreatedAt: Timestamp(),
		Results:   results,
	}
	snap.Jobs[job.ID] = job
	return job.ID
}

// RenderQueued renders the immediate response for a just-submitted job:
// status queued, no totals, no results yet.
func (s *Service) RenderQueued(jobID string) *JobEnvelope {
	return &JobEnvelope{JobStatus: JobStatus{
		ID:     jobID,
		URL:    s.jobURL(jobID),
		Status: models.JobQueued,
	}}
}

// FetchJob renders a stored job as completed, with totals and the ordered
// per-item results. Jobs are retrievable indefinitely.
func (s *Service) FetchJob(snap *models.Snapshot, jobID string) (*JobEnvelope, error) {
	job, ok := snap.Jobs[jobID]
	if !ok {
		return nil, apierrors.Newf(apierrors.CodeNotFound, "job not found: %s", jobID)
	}

	total := len(job.Results)
	progress := total
	message := fmt.Sprintf("Completed at %s", job.CreatedAt)
	return &JobEnvelope{JobStatus: JobStatus{
		ID:       job.ID,
		URL:      s.jobURL(job.ID),
		Status:   models.JobCompleted,
		Total:    &total,
		Progress: &progress,
		Message:  &message,
		Results:  job.Results,
	}}, nil
}

func (s *Service) jobURL(jobID string) string {
	return s.cfg.JobStatusURLPrefix + "/api/v2/job_statuses/" + jobID + ".json"
}
