// Package proc runs external programs: the inference engine, download
// tooling and audio players.
package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ontypehq/qwen-tts/internal/logging"
)

// ExitError reports a program that launched but exited non-zero.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// IsExit reports whether err means the program ran and exited non-zero,
// as opposed to not launching at all.
func IsExit(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// Runner abstracts process execution for testability.
type Runner interface {
	// Run blocks until the program exits. Standard streams are inherited so
	// the operator sees live progress.
	Run(ctx context.Context, name string, args ...string) error
	// Probe runs a program with its output discarded and reports whether it
	// exited zero.
	Probe(ctx context.Context, name string, args ...string) bool
	// Output runs a program and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

// ExecRunner executes commands via os/exec.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the current process' streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	logging.Debug("spawn", "cmd", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return wrapExit(name, cmd.Run())
}

func (r *ExecRunner) Probe(ctx context.Context, name string, args ...string) bool {
	logging.Debug("probe", "cmd", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Run() == nil
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	logging.Debug("spawn", "cmd", name, "args", args)

	out, err := exec.CommandContext(ctx, name, args...).Output()
	return out, wrapExit(name, err)
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func wrapExit(name string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Name: name, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("launch %s: %w", name, err)
}
