package scheduler

import "errors"

var (
	// ErrSchedulerRunning is returned when jobs are added after Start
	ErrSchedulerRunning = errors.New("scheduler: already running")

	// ErrDuplicateJob is returned when a job name is registered twice
	ErrDuplicateJob = errors.New("scheduler: duplicate job name")

	// ErrJobNotFound is returned for unknown job names
	ErrJobNotFound = errors.New("scheduler: job not found")
)
