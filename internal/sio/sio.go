// Package sio writes status lines from the notification path.
//
// A line is formatted into a fixed-size buffer and handed to the underlying
// writer in a single Write call. Nothing in this package allocates once a
// Line exists, and nothing buffers: bytes reach the writer immediately.
package sio

import (
	"io"
	"os"
	"strconv"
)

// LineMax is the longest line a Line can hold. Longer input is truncated.
const LineMax = 256

// Line is a fixed-capacity line builder.
type Line struct {
	buf [LineMax]byte
	n   int
}

// Reset empties the line.
func (l *Line) Reset() *Line {
	l.n = 0
	return l
}

// Str appends s.
func (l *Line) Str(s string) *Line {
	l.n += copy(l.buf[l.n:], s)
	return l
}

// Int appends v in decimal.
func (l *Line) Int(v int64) *Line {
	b := strconv.AppendInt(l.buf[l.n:l.n], v, 10)
	l.n += copy(l.buf[l.n:], b)
	return l
}

// Bytes returns the formatted line. The slice aliases the line's buffer.
func (l *Line) Bytes() []byte {
	return l.buf[:l.n]
}

// Writer emits lines to an unbuffered destination.
type Writer struct {
	w    io.Writer
	exit func(int)
}

// New returns a Writer on w. A nil exit terminates the process with os.Exit.
func New(w io.Writer, exit func(int)) *Writer {
	if exit == nil {
		exit = os.Exit
	}
	return &Writer{w: w, exit: exit}
}

// Stdout returns a Writer on the process's standard output.
func Stdout() *Writer {
	return New(os.Stdout, nil)
}

// Puts writes s as is.
func (w *Writer) Puts(s string) (int, error) {
	return io.WriteString(w.w, s)
}

// Putl writes v in decimal.
func (w *Writer) Putl(v int64) (int, error) {
	var l Line
	return w.Emit(l.Int(v))
}

// Emit writes the line in one call.
func (w *Writer) Emit(l *Line) (int, error) {
	return w.w.Write(l.Bytes())
}

// MustEmit is Emit, except that a failed write is fatal.
func (w *Writer) MustEmit(l *Line) int {
	n, err := w.Emit(l)
	if err != nil {
		w.Error("sio: emit error\n")
	}
	return n
}

// Error writes s and terminates the process with status 1.
func (w *Writer) Error(s string) {
	_, _ = w.Puts(s)
	w.exit(1)
}
