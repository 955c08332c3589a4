// Package history keeps the shell's command lines, bounded and file backed.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

type History struct {
	items    []string
	file     string
	maxItems int
	mu       sync.Mutex
}

// New loads the history stored in file. An empty file name keeps history in
// memory only; a maxItems of zero disables it.
func New(file string, maxItems int) (*History, error) {
	if maxItems < 0 {
		maxItems = 0
	}
	h := &History{
		file:     file,
		maxItems: maxItems,
	}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Add appends item and persists the history.
func (h *History) Add(item string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxItems == 0 {
		return nil
	}
	h.items = append(h.items, item)
	h.trim()
	return h.save()
}

func (h *History) GetAll() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string{}, h.items...)
}

// Print writes the numbered history to w.
func (h *History) Print(w io.Writer) error {
	for i, item := range h.GetAll() {
		if _, err := fmt.Fprintf(w, "%d: %s\n", i+1, item); err != nil {
			return err
		}
	}
	return nil
}

func (h *History) trim() {
	if len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
}

func (h *History) load() error {
	if h.file == "" || h.maxItems == 0 {
		return nil
	}
	file, err := os.Open(h.file)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening history %s: %w", h.file, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.items = append(h.items, scanner.Text())
	}
	h.trim()
	return scanner.Err()
}

func (h *History) save() error {
	if h.file == "" {
		return nil
	}
	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, item := range h.items {
		if _, err := writer.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
