// Package parser turns a command line into an argument vector.
package parser

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Command is one parsed input line.
type Command struct {
	Args       []string
	Background bool
}

// Empty reports whether the line held no words.
func (c Command) Empty() bool {
	return len(c.Args) == 0
}

// Name returns the program or built-in name, or "" for an empty line.
func (c Command) Name() string {
	if c.Empty() {
		return ""
	}
	return c.Args[0]
}

// Parse splits line into words. Quoted words keep their inner spaces with the
// quotes removed. A trailing bare "&" requests a background job and is
// dropped from the arguments.
func Parse(line string) (Command, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return Command{}, fmt.Errorf("parse error: %w", err)
	}
	var cmd Command
	if n := len(words); n > 0 && words[n-1] == "&" {
		cmd.Background = true
		words = words[:n-1]
	}
	if len(words) > 0 {
		cmd.Args = words
	}
	return cmd, nil
}
