// Package proctest provides a scripted proc.Runner for tests.
package proctest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Call records one Run or Probe invocation.
type Call struct {
	Name  string
	Args  []string
	Probe bool
}

// String renders the call as a shell-ish command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner simulates command execution. OnRun, OnProbe and OnOutput receive
// every call; nil handlers mean success. Paths lists the programs LookPath
// can find.
type Runner struct {
	OnRun    func(name string, args ...string) error
	OnProbe  func(name string, args ...string) bool
	OnOutput func(name string, args ...string) ([]byte, error)
	Paths    map[string]string

	mu    sync.Mutex
	calls []Call
}

func (r *Runner) Run(_ context.Context, name string, args ...string) error {
	r.record(Call{Name: name, Args: append([]string(nil), args...)})
	if r.OnRun == nil {
		return nil
	}
	return r.OnRun(name, args...)
}

func (r *Runner) Probe(_ context.Context, name string, args ...string) bool {
	r.record(Call{Name: name, Args: append([]string(nil), args...), Probe: true})
	if r.OnProbe == nil {
		return true
	}
	return r.OnProbe(name, args...)
}

func (r *Runner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.record(Call{Name: name, Args: append([]string(nil), args...)})
	if r.OnOutput == nil {
		return nil, nil
	}
	return r.OnOutput(name, args...)
}

func (r *Runner) LookPath(name string) (string, error) {
	if p, ok := r.Paths[name]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (r *Runner) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns the Run and Output invocations in order, excluding probes.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if !c.Probe {
			out = append(out, c)
		}
	}
	return out
}

// Probes returns the Probe invocations in order.
func (r *Runner) Probes() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if c.Probe {
			out = append(out, c)
		}
	}
	return out
}

// Notes records ui.Notifier output.
type Notes struct {
	mu       sync.Mutex
	Statuses []string
	Infos    []string
	Warnings []string
}

func (n *Notes) Status(label, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Statuses = append(n.Statuses, label+" "+msg)
}

func (n *Notes) Info(format string, a ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Infos = append(n.Infos, fmt.Sprintf(format, a...))
}

func (n *Notes) Warn(format string, a ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Warnings = append(n.Warnings, fmt.Sprintf(format, a...))
}

// HasWarning reports whether any warning contains substr.
func (n *Notes) HasWarning(substr string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, w := range n.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
