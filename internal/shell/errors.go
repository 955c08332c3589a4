package shell

import "errors"

var (
	// ErrQuit is returned by Execute for the quit built-in.
	ErrQuit = errors.New("quit")

	ErrNoSuchJob     = errors.New("No such job")
	ErrNoSuchProcess = errors.New("No such process")
	ErrBadTarget     = errors.New("argument must be a PID or %jobid")
	ErrMissingTarget = errors.New("command requires PID or %jobid argument")
)
