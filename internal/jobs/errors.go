package jobs

import "errors"

var (
	// ErrTooManyJobs is returned by Add when every slot is taken.
	ErrTooManyJobs = errors.New("Tried to create too many jobs")

	// ErrInvalidPID is returned for a non-positive process id.
	ErrInvalidPID = errors.New("invalid process id")

	// ErrDuplicatePID is returned when the process id is already tracked.
	ErrDuplicatePID = errors.New("process id already tracked")

	// ErrInvalidState is returned when a job would be given a state it cannot hold.
	ErrInvalidState = errors.New("invalid job state")

	// ErrForegroundTaken is returned when a second job would become the foreground job.
	ErrForegroundTaken = errors.New("another job is already in the foreground")

	// ErrNoSuchJob is returned by SetState for an unknown process id.
	ErrNoSuchJob = errors.New("no such job")
)
