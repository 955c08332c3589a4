package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
	"tsh/internal/jobs"
)

func (s *Shell) executeBuiltin(args []string) (bool, error) {
	switch args[0] {
	case "quit":
		s.logger.Debug("builtin", "name", args[0])
		return true, ErrQuit
	case "jobs":
		s.logger.Debug("builtin", "name", args[0])
		return true, s.listJobs()
	case "bg", "fg":
		s.logger.Debug("builtin", "name", args[0])
		return true, s.resumeJob(args)
	case "history":
		return true, s.showHistory()
	default:
		return false, nil
	}
}

func (s *Shell) listJobs() error {
	s.gate.Block()
	defer s.gate.Unblock()

	return s.jobs.List(s.out)
}

func (s *Shell) showHistory() error {
	return s.history.Print(s.out)
}

// resumeJob implements bg and fg. The target is %jid or a bare pid.
func (s *Shell) resumeJob(args []string) error {
	name := args[0]
	if len(args) < 2 {
		return fmt.Errorf("%s %w", name, ErrMissingTarget)
	}

	state := jobs.Background
	if name == "fg" {
		state = jobs.Foreground
	}

	s.gate.Block()
	job, err := s.resolveTarget(name, args[1])
	if err != nil {
		s.gate.Unblock()
		return err
	}
	if err := s.jobs.SetState(job.PID, state); err != nil {
		s.gate.Unblock()
		return fmt.Errorf("%s: %w", name, err)
	}
	jid, pid, cmdline := job.JID, job.PID, job.CmdLine
	if err := unix.Kill(-pid, unix.SIGCONT); err != nil && !errors.Is(err, unix.ESRCH) {
		s.gate.Unblock()
		return fmt.Errorf("%s: kill error: %w", name, err)
	}
	s.gate.Unblock()

	if state == jobs.Background {
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", jid, pid, cmdline)
		return nil
	}
	s.waitForeground(pid)
	return nil
}

// resolveTarget finds the job named by target. The caller holds the gate.
func (s *Shell) resolveTarget(name, target string) (*jobs.Job, error) {
	if rest, ok := strings.CutPrefix(target, "%"); ok {
		jid, err := parseID(rest)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, ErrNoSuchJob)
		}
		job := s.jobs.FindByJID(jid)
		if job == nil {
			return nil, fmt.Errorf("%s: %w", target, ErrNoSuchJob)
		}
		return job, nil
	}

	pid, err := parseID(target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, ErrBadTarget)
	}
	job := s.jobs.FindByPID(pid)
	if job == nil {
		return nil, fmt.Errorf("(%d): %w", pid, ErrNoSuchProcess)
	}
	return job, nil
}

// parseID accepts a positive decimal number and nothing else.
func parseID(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
