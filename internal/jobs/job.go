package jobs

import "fmt"

// State is a job's lifecycle state.
//
// The transitions are:
//
//	Foreground -> Stopped    : ctrl-z
//	Stopped    -> Foreground : fg
//	Stopped    -> Background : bg
//	Background -> Foreground : fg
//
// At most one job is in the Foreground state.
type State int

const (
	Undefined State = iota
	Foreground
	Background
	Stopped
)

// String returns the name used in the jobs report.
func (s State) String() string {
	switch s {
	case Undefined:
		return "Undefined"
	case Foreground:
		return "Foreground"
	case Background:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Valid reports whether s is a state an active job may hold.
func (s State) Valid() bool {
	return s == Foreground || s == Background || s == Stopped
}

// Job is one tracked child process. A Job with PID 0 is an empty slot.
type Job struct {
	PID     int
	JID     int
	State   State
	CmdLine string
}

func (j *Job) clear() {
	j.PID = 0
	j.JID = 0
	j.State = Undefined
	j.CmdLine = ""
}
