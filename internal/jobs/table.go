// Package jobs is the shell's job table: a fixed number of slots, each either
// empty or holding one tracked child process.
//
// Table has no lock of its own. The shell serializes every access through its
// notification gate (see internal/shell). Remove, FindByPID, FindByJID,
// ForegroundPID and SetState do not allocate, which is what lets the
// notification path call them.
package jobs

import (
	"fmt"
	"io"
)

// DefaultCapacity is the number of slots used when none is configured.
const DefaultCapacity = 16

// Table maps process ids to jobs.
type Table struct {
	slots   []Job
	nextJID int
}

// New returns an empty table with the given number of slots.
func New(capacity int) *Table {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Table{
		slots:   make([]Job, capacity),
		nextJID: 1,
	}
}

// Cap returns the number of slots.
func (t *Table) Cap() int {
	return len(t.slots)
}

// Len returns the number of active jobs.
func (t *Table) Len() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].PID != 0 {
			n++
		}
	}
	return n
}

// Full reports whether every slot is taken.
func (t *Table) Full() bool {
	return t.Len() == len(t.slots)
}

// Add records a new job in the first empty slot and assigns it a job id.
func (t *Table) Add(pid int, state State, cmdline string) (*Job, error) {
	if pid < 1 {
		return nil, ErrInvalidPID
	}
	if !state.Valid() {
		return nil, ErrInvalidState
	}
	if t.FindByPID(pid) != nil {
		return nil, ErrDuplicatePID
	}
	if state == Foreground && t.ForegroundPID() != 0 {
		return nil, ErrForegroundTaken
	}
	for i := range t.slots {
		j := &t.slots[i]
		if j.PID != 0 {
			continue
		}
		j.PID = pid
		j.State = state
		j.JID = t.allocJID()
		j.CmdLine = cmdline
		return j, nil
	}
	return nil, ErrTooManyJobs
}

// Remove clears the job with the given process id.
func (t *Table) Remove(pid int) bool {
	if pid < 1 {
		return false
	}
	for i := range t.slots {
		if t.slots[i].PID == pid {
			t.slots[i].clear()
			t.nextJID = t.maxJID() + 1
			return true
		}
	}
	return false
}

// FindByPID returns the job with the given process id, or nil.
func (t *Table) FindByPID(pid int) *Job {
	if pid < 1 {
		return nil
	}
	for i := range t.slots {
		if t.slots[i].PID == pid {
			return &t.slots[i]
		}
	}
	return nil
}

// FindByJID returns the job with the given job id, or nil.
func (t *Table) FindByJID(jid int) *Job {
	if jid < 1 {
		return nil
	}
	for i := range t.slots {
		if t.slots[i].JID == jid {
			return &t.slots[i]
		}
	}
	return nil
}

// ForegroundPID returns the process id of the foreground job, or 0.
func (t *Table) ForegroundPID() int {
	for i := range t.slots {
		if t.slots[i].State == Foreground {
			return t.slots[i].PID
		}
	}
	return 0
}

// SetState moves the job with the given process id to state.
func (t *Table) SetState(pid int, state State) error {
	j := t.FindByPID(pid)
	if j == nil {
		return ErrNoSuchJob
	}
	if !state.Valid() {
		return ErrInvalidState
	}
	if state == Foreground {
		if fg := t.ForegroundPID(); fg != 0 && fg != pid {
			return ErrForegroundTaken
		}
	}
	j.State = state
	return nil
}

// Snapshot returns a copy of the active jobs in slot order.
func (t *Table) Snapshot() []Job {
	out := make([]Job, 0, len(t.slots))
	for i := range t.slots {
		if t.slots[i].PID != 0 {
			out = append(out, t.slots[i])
		}
	}
	return out
}

// List writes one line per active job:
//
//	[jid] (pid) Running|Foreground|Stopped cmdline
func (t *Table) List(w io.Writer) error {
	for i := range t.slots {
		j := &t.slots[i]
		if j.PID == 0 {
			continue
		}
		var err error
		if j.State.Valid() {
			_, err = fmt.Fprintf(w, "[%d] (%d) %s %s\n", j.JID, j.PID, j.State, j.CmdLine)
		} else {
			_, err = fmt.Fprintf(w, "[%d] (%d) listjobs: Internal error: job[%d].state=%d %s\n",
				j.JID, j.PID, i, int(j.State), j.CmdLine)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// allocJID returns the id for a job being added. It continues from the last
// issued id and falls back to the lowest free id once that would leave the
// range [1, Cap()] or collide with an active job.
func (t *Table) allocJID() int {
	jid := t.nextJID
	if jid < 1 || jid > len(t.slots) || t.FindByJID(jid) != nil {
		jid = t.lowestFreeJID()
	}
	t.nextJID = jid + 1
	if t.nextJID > len(t.slots) {
		t.nextJID = 1
	}
	return jid
}

func (t *Table) lowestFreeJID() int {
	for jid := 1; jid <= len(t.slots); jid++ {
		if t.FindByJID(jid) == nil {
			return jid
		}
	}
	return 0
}

func (t *Table) maxJID() int {
	hi := 0
	for i := range t.slots {
		if t.slots[i].JID > hi {
			hi = t.slots[i].JID
		}
	}
	return hi
}
