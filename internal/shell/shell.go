package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"tsh/internal/config"
	"tsh/internal/history"
	"tsh/internal/jobs"
	"tsh/internal/launcher"
	"tsh/internal/parser"
	"tsh/internal/sio"
)

type Shell struct {
	config   *config.Config
	history  *history.History
	jobs     *jobs.Table
	gate     *Gate
	launcher *launcher.Launcher
	logger   *slog.Logger

	out    io.Writer
	in     io.Reader
	reader lineReader
	exit   func(int)

	// Notification path state.
	sio          *sio.Writer
	line         sio.Line
	signalChan   chan os.Signal
	handlersDone chan struct{}
}

// Option customizes a Shell built by New.
type Option func(*Shell)

// WithOutput sends user-facing output, including job status lines, to w.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// WithInput reads command lines from r without line editing.
func WithInput(r io.Reader) Option {
	return func(s *Shell) { s.in = r }
}

func WithLauncher(l *launcher.Launcher) Option {
	return func(s *Shell) { s.launcher = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// WithExit replaces os.Exit on the fatal and SIGQUIT paths.
func WithExit(fn func(int)) Option {
	return func(s *Shell) { s.exit = fn }
}

func New(cfg *config.Config, opts ...Option) (*Shell, error) {
	hist, err := history.New(cfg.HistoryFile, cfg.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	s := &Shell{
		config:       cfg,
		history:      hist,
		jobs:         jobs.New(cfg.MaxJobs),
		gate:         NewGate(),
		out:          os.Stdout,
		exit:         os.Exit,
		signalChan:   make(chan os.Signal, 8),
		handlersDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.launcher == nil {
		s.launcher = launcher.New(launcher.NewSearchPath(os.Getenv("PATH")), s.logger)
	}
	s.sio = sio.New(s.out, s.exit)

	s.reader, err = s.newReader()
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}
	return s, nil
}

// Run is the read/eval loop. It returns nil on end of input or quit.
func (s *Shell) Run() error {
	s.setupSignalHandling()
	defer s.stopSignalHandling()
	defer s.reader.Close()

	for {
		line, err := s.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			if err := s.history.Add(line); err != nil {
				s.logger.Warn("saving history", "error", err)
			}
		}

		if err := s.Execute(line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintln(s.out, err)
		}
	}
}

// Execute evaluates one command line: a built-in runs immediately, anything
// else is started as a job and, unless it ends in "&", waited for.
func (s *Shell) Execute(input string) error {
	cmd, err := parser.Parse(input)
	if err != nil {
		return err
	}
	if cmd.Empty() {
		return nil
	}

	if ok, err := s.executeBuiltin(cmd.Args); ok {
		return err
	}
	return s.runExternal(cmd, strings.TrimRight(input, "\r\n"))
}
