package shell

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

type lineReader interface {
	Readline() (string, error)
	Close() error
}

func (s *Shell) prompt() string {
	if !s.config.EmitPrompt {
		return ""
	}
	return s.config.Prompt
}

// newReader uses readline on a terminal and plain line reads otherwise, which
// is what a driver feeding commands through a pipe needs.
func (s *Shell) newReader() (lineReader, error) {
	if s.in == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			s.in = os.Stdin
		} else {
			return s.newReadline()
		}
	}
	return &plainReader{r: bufio.NewReader(s.in), out: s.out, prompt: s.prompt()}, nil
}

func (s *Shell) newReadline() (lineReader, error) {
	limit := s.config.HistorySize
	if limit == 0 {
		limit = -1
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		InterruptPrompt: "^C",
		HistoryLimit:    limit,
	})
	if err != nil {
		return nil, err
	}
	for _, item := range s.history.GetAll() {
		_ = rl.SaveHistory(item)
	}
	return rl, nil
}

type plainReader struct {
	r      *bufio.Reader
	out    io.Writer
	prompt string
}

func (p *plainReader) Readline() (string, error) {
	if p.prompt != "" {
		io.WriteString(p.out, p.prompt)
	}
	line, err := p.r.ReadString('\n')
	if err == io.EOF && line != "" {
		// Last line without a newline still counts.
		err = nil
	}
	return strings.TrimSuffix(line, "\n"), err
}

func (p *plainReader) Close() error {
	return nil
}
