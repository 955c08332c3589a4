package shell

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/sys/unix"
	"tsh/internal/config"
	"tsh/internal/jobs"
	"tsh/internal/launcher"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

type exitRecorder struct {
	mu    sync.Mutex
	codes []int
}

func (e *exitRecorder) exit(code int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.codes = append(e.codes, code)
}

func (e *exitRecorder) get() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.codes...)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.EmitPrompt = false
	return cfg
}

// newTestShell builds a shell whose children write to /dev/null and whose own
// output is captured. Input is read from the given string.
func newTestShell(t *testing.T, cfg *config.Config, input string) (*Shell, *syncBuffer, *exitRecorder) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	t.Cleanup(func() { devNull.Close() })

	l := launcher.New(launcher.NewSearchPath(os.Getenv("PATH")), nil)
	l.Stdin = devNull
	l.Stdout = devNull
	l.Stderr = devNull

	out := &syncBuffer{}
	rec := &exitRecorder{}
	s, err := New(cfg,
		WithOutput(out),
		WithInput(strings.NewReader(input)),
		WithLauncher(l),
		WithExit(rec.exit),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, out, rec
}

// startNotifications runs the notification path for the test's duration and
// kills whatever jobs are left when it ends.
func startNotifications(t *testing.T, s *Shell) {
	t.Helper()
	s.setupSignalHandling()
	t.Cleanup(func() {
		for _, j := range snapshot(s) {
			_ = unix.Kill(-j.PID, unix.SIGKILL)
		}
		waitFor(t, "leftover jobs to be reaped", func() bool { return len(snapshot(s)) == 0 })
		s.stopSignalHandling()
	})
}

func snapshot(s *Shell) []jobs.Job {
	s.gate.Block()
	defer s.gate.Unblock()
	return s.jobs.Snapshot()
}

func foregroundPID(s *Shell) int {
	s.gate.Block()
	defer s.gate.Unblock()
	return s.jobs.ForegroundPID()
}

func jobState(s *Shell, pid int) jobs.State {
	s.gate.Block()
	defer s.gate.Unblock()
	if j := s.jobs.FindByPID(pid); j != nil {
		return j.State
	}
	return jobs.Undefined
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("command did not return")
		return nil
	}
}

// procState returns the state letter from /proc/<pid>/stat, or 0 when it
// cannot be read.
func procState(pid int) byte {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return 0
	}
	i := bytes.LastIndexByte(data, ')')
	if i < 0 || i+2 >= len(data) {
		return 0
	}
	return data[i+2]
}
