package shell

// waitForeground blocks until pid is no longer the foreground job, whether it
// exited, was killed, or was stopped. The gate is held for every check and
// released only while suspended, so a state change between the check and the
// sleep still wakes us.
func (s *Shell) waitForeground(pid int) {
	if pid < 1 {
		return
	}
	s.gate.Block()
	defer s.gate.Unblock()

	for s.jobs.ForegroundPID() == pid {
		s.gate.Suspend()
	}
}
