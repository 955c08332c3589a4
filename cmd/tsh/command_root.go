package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"tsh/internal/config"
	"tsh/internal/shell"
)

type rootOptions struct {
	verbose    bool
	noPrompt   bool
	configFile string
}

func NewRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "tsh",
		Short:         "Tiny job-control shell",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts)
		},
	}

	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print additional diagnostic information")
	root.Flags().BoolVarP(&opts.noPrompt, "no-prompt", "p", false, "do not emit a command prompt")
	root.Flags().StringVar(&opts.configFile, "config", "", "path to a YAML or TOML config file")

	return root
}

func runShell(opts rootOptions) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	if opts.noPrompt {
		cfg.EmitPrompt = false
	}

	// A driver reading stdout sees everything the shell and its children say.
	if cfg.MergeStderr {
		if err := mergeStderr(); err != nil {
			return fmt.Errorf("dup2 error: %w", err)
		}
	}

	s, err := shell.New(cfg, shell.WithLogger(newLogger(cfg.Verbose)))
	if err != nil {
		return fmt.Errorf("error initializing shell: %w", err)
	}
	return s.Run()
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("session", uuid.NewString())
}
