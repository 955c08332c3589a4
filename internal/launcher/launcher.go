// Package launcher starts external programs as jobs.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

var (
	// ErrCommandNotFound is returned when no candidate path could be executed.
	ErrCommandNotFound = errors.New("Command not found.")

	// ErrNoCommand is returned for an empty argument vector.
	ErrNoCommand = errors.New("no command")
)

// Launcher starts programs in their own process group.
//
// The started process is not waited on here: its pid is handed back and the
// caller's reaper is responsible for collecting its status.
type Launcher struct {
	Path SearchPath

	// Env is the child's environment. Nil means the shell's own.
	Env []string

	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	Logger *slog.Logger
}

// New returns a Launcher bound to the shell's standard streams.
func New(path SearchPath, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Launcher{
		Path:   path,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Start runs argv[0] with argv as its arguments and returns the new process id.
//
// Each candidate from the search path is tried in order and the first one that
// executes wins. The child is placed in a new process group whose id is its own
// pid, so terminal-generated signals aimed at the shell's group do not reach it.
func (l *Launcher) Start(argv []string) (int, error) {
	if len(argv) == 0 || argv[0] == "" {
		return 0, ErrNoCommand
	}

	for _, path := range l.Path.Candidates(argv[0]) {
		cmd := &exec.Cmd{
			Path: path,
			Args: argv,
			Env:  l.Env,
			SysProcAttr: &syscall.SysProcAttr{
				Setpgid: true,
			},
		}
		// Only assign non-nil files: a typed nil would hide behind a non-nil io.Reader.
		if l.Stdin != nil {
			cmd.Stdin = l.Stdin
		}
		if l.Stdout != nil {
			cmd.Stdout = l.Stdout
		}
		if l.Stderr != nil {
			cmd.Stderr = l.Stderr
		}
		if err := cmd.Start(); err != nil {
			l.logger().Debug("exec attempt failed", "path", path, "error", err)
			continue
		}

		pid := cmd.Process.Pid
		// The reaper collects the child with wait4(-1); drop our handle to it.
		_ = cmd.Process.Release()
		l.logger().Debug("started process", "path", path, "pid", pid)
		return pid, nil
	}

	return 0, fmt.Errorf("%s: %w", argv[0], ErrCommandNotFound)
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Logger
}
