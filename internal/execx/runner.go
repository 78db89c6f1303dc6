// Package execx provides the command-execution boundary used by the
// supervision core. Probe and terminate logic depends only on the Runner
// interface so tests can substitute scripted command outputs.
package execx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and captures its standard output.
// A command that ran to completion but exited non-zero is reported as an
// *ExitError; any other failure (binary missing, context cancelled) is
// returned as-is.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError describes a command that ran and exited with a non-zero status.
type ExitError struct {
	Cmd    string
	Code   int
	Stderr []byte
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Cmd, e.Code)
	if detail := firstLine(e.Stderr); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// ExitCode extracts the exit status carried by an error returned from a
// Runner. It returns -1 when the error does not describe a completed command.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

// New returns a Runner backed by os/exec.
func New() Runner {
	return execRunner{}
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return out, err
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &ExitError{Cmd: name, Code: exitErr.ExitCode(), Stderr: exitErr.Stderr}
		}
		return out, fmt.Errorf("run %s: %w", name, err)
	}
	return out, nil
}

func firstLine(b []byte) string {
	text := strings.TrimSpace(string(b))
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
