package shell

import (
	"errors"
	"os/signal"

	"golang.org/x/sys/unix"
	"tsh/internal/jobs"
)

// Everything reachable from handleSignals is the notification path: it runs
// on its own goroutine, touches the job table only with the gate blocked, and
// writes only through s.sio using the preallocated s.line.

func (s *Shell) setupSignalHandling() {
	signal.Notify(s.signalChan, unix.SIGCHLD, unix.SIGINT, unix.SIGTSTP, unix.SIGQUIT)
	go s.handleSignals()
}

func (s *Shell) stopSignalHandling() {
	signal.Stop(s.signalChan)
	close(s.signalChan)
	<-s.handlersDone
}

// handleSignals runs one handler at a time, so a handler is never interrupted
// by another.
func (s *Shell) handleSignals() {
	defer close(s.handlersDone)

	for sig := range s.signalChan {
		switch sig {
		case unix.SIGCHLD:
			s.reapChildren()
		case unix.SIGINT:
			s.forwardToForeground(unix.SIGINT)
		case unix.SIGTSTP:
			s.forwardToForeground(unix.SIGTSTP)
		case unix.SIGQUIT:
			s.terminate()
		}
	}
}

// reapChildren collects every child whose state changed. SIGCHLD deliveries
// coalesce, so one notification may stand for several children.
func (s *Shell) reapChildren() {
	s.gate.Block()
	defer s.gate.Unblock()
	defer s.gate.Broadcast()

	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG|unix.WUNTRACED, nil)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.ECHILD):
			return
		case err != nil:
			s.sio.Error("waitpid error\n")
			return
		case pid == 0:
			return
		}
		s.childChanged(pid, status)
	}
}

func (s *Shell) childChanged(pid int, status unix.WaitStatus) {
	job := s.jobs.FindByPID(pid)
	if job == nil {
		// Not ours to report.
		return
	}
	jid := job.JID

	switch {
	case status.Exited():
		s.jobs.Remove(pid)
	case status.Signaled():
		s.jobs.Remove(pid)
		s.reportSignal(jid, pid, "terminated", status.Signal())
	case status.Stopped():
		job.State = jobs.Stopped
		s.reportSignal(jid, pid, "stopped", status.StopSignal())
	}
}

// reportSignal prints "Job [jid] (pid) <what> by signal SIG<NAME>".
func (s *Shell) reportSignal(jid, pid int, what string, sig unix.Signal) {
	l := s.line.Reset().
		Str("Job [").Int(int64(jid)).
		Str("] (").Int(int64(pid)).
		Str(") ").Str(what).Str(" by signal ")
	if name := unix.SignalName(sig); name != "" {
		l.Str(name)
	} else {
		l.Str("SIG").Int(int64(sig))
	}
	s.sio.MustEmit(l.Str("\n"))
}

// forwardToForeground sends sig to the foreground job's whole process group.
func (s *Shell) forwardToForeground(sig unix.Signal) {
	s.gate.Block()
	defer s.gate.Unblock()

	pid := s.jobs.ForegroundPID()
	if pid == 0 {
		return
	}
	// ESRCH: the group is already gone and the reaper will hear about it.
	if err := unix.Kill(-pid, sig); err != nil && !errors.Is(err, unix.ESRCH) {
		s.sio.Error("kill error\n")
	}
}

// terminate is the SIGQUIT handler: a notice and an immediate exit.
func (s *Shell) terminate() {
	s.sio.Error("Terminating after receipt of SIGQUIT signal\n")
}
