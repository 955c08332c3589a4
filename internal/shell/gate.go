package shell

import "sync"

// Gate defers the notification path while the main path works on the job
// table. Blocking the gate is the equivalent of masking SIGCHLD: a handler
// that arrives meanwhile runs once the gate is unblocked.
type Gate struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func NewGate() *Gate {
	g := &Gate{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Block defers notification handling until Unblock.
func (g *Gate) Block() {
	g.mu.Lock()
}

// Unblock lets deferred notifications run.
func (g *Gate) Unblock() {
	g.mu.Unlock()
}

// Suspend atomically unblocks the gate and sleeps until the next Broadcast,
// then blocks it again before returning. The caller must hold the gate.
func (g *Gate) Suspend() {
	g.cond.Wait()
}

// Broadcast wakes every suspended caller. The caller must hold the gate.
func (g *Gate) Broadcast() {
	g.cond.Broadcast()
}
