package batch

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a Job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one input file and its outcome. A job reaches a terminal status
// exactly once and is never resubmitted.
type Job struct {
	ID         string
	InputPath  string
	OutputPath string
	Status     Status
	Attempts   int
	Bytes      int64
	Duration   time.Duration
	Err        error
}

func newJob(inputPath, outputPath string) Job {
	return Job{
		ID:         uuid.NewString(),
		InputPath:  inputPath,
		OutputPath: outputPath,
		Status:     StatusPending,
	}
}

// IsTerminal reports whether s is a final status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSkipped, StatusSucceeded, StatusFailed:
		return true
	default:
		return false
	}
}
