// Package process runs the game-side bridge as a child process and makes
// sure it is gone when the sidecar shuts down.
package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// Manager owns one child process from Start until Close.
type Manager struct {
	grace time.Duration

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// NewManager returns a manager that gives the child grace to exit after
// SIGTERM before killing it.
func NewManager(grace time.Duration) *Manager {
	return &Manager{grace: grace}
}

// Start launches name with args. The child is not tied to ctx: it lives
// until Close, so a cancelled request cannot orphan it half-way.
func (m *Manager) Start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cmd != nil {
		return fmt.Errorf("process already started: %s", m.cmd.Path)
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	m.cmd = cmd
	m.done = make(chan struct{})
	go func() {
		err := cmd.Wait()
		m.mu.Lock()
		m.err = err
		m.mu.Unlock()
		close(m.done)
	}()
	slog.Info("bridge started", "cmd", name, "pid", cmd.Process.Pid)
	return nil
}

// Done is closed when the child exits. Nil before Start.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// Close terminates the child: SIGTERM, then SIGKILL after the grace period.
// It is safe to call more than once and before Start.
func (m *Manager) Close() error {
	m.mu.Lock()
	cmd, done := m.cmd, m.done
	m.mu.Unlock()
	if cmd == nil {
		return nil
	}

	select {
	case <-done:
		return m.exitErr()
	default:
	}

	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		slog.Warn("bridge terminate failed", "pid", cmd.Process.Pid, "error", err)
	}
	select {
	case <-done:
		slog.Info("bridge stopped", "pid", cmd.Process.Pid)
	case <-time.After(m.grace):
		slog.Error("bridge ignored SIGTERM, killing", "pid", cmd.Process.Pid, "grace", m.grace)
		_ = cmd.Process.Kill()
		<-done
	}
	return m.exitErr()
}

// exitErr hides the error a signal we sent ourselves produces.
func (m *Manager) exitErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var exit *exec.ExitError
	if errors.As(m.err, &exit) && !exit.Exited() {
		return nil
	}
	return m.err
}
