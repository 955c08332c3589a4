package shell

import (
	"fmt"

	"golang.org/x/sys/unix"
	"tsh/internal/jobs"
	"tsh/internal/parser"
)

// runExternal starts cmd as a new job.
//
// The gate stays blocked from before the process exists until it has a table
// entry; otherwise a child that dies at once could be reaped before it was
// recorded.
func (s *Shell) runExternal(cmd parser.Command, cmdline string) error {
	state := jobs.Foreground
	if cmd.Background {
		state = jobs.Background
	}

	s.gate.Block()
	jid, pid, err := s.startJob(cmd.Args, state, cmdline)
	s.gate.Unblock()
	if err != nil {
		return err
	}

	s.logger.Debug("added job", "jid", jid, "pid", pid, "cmdline", cmdline)

	if cmd.Background {
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", jid, pid, cmdline)
		return nil
	}
	s.waitForeground(pid)
	return nil
}

// startJob launches and records a job. The caller holds the gate.
func (s *Shell) startJob(args []string, state jobs.State, cmdline string) (int, int, error) {
	// Refuse before launching so a full table never leaves a process running
	// untracked.
	if s.jobs.Full() {
		return 0, 0, jobs.ErrTooManyJobs
	}

	pid, err := s.launcher.Start(args)
	if err != nil {
		return 0, 0, err
	}

	job, err := s.jobs.Add(pid, state, cmdline)
	if err != nil {
		// Nothing can track it, so nothing may keep running. The reaper
		// collects it as an unknown child.
		_ = unix.Kill(-pid, unix.SIGKILL)
		return 0, 0, fmt.Errorf("recording job %d: %w", pid, err)
	}
	return job.JID, job.PID, nil
}
