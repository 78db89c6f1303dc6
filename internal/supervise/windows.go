package supervise

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/warden/internal/execx"
)

// taskkill exits 128 when no process matches the image name.
const taskkillNotFound = 128

type windowsBackend struct {
	runner execx.Runner
}

// NewWindowsBackend constructs the backend for Windows systems.
func NewWindowsBackend(runner execx.Runner) Backend {
	return &windowsBackend{runner: runner}
}

// Probe lists processes filtered by image name in header-less CSV form. The
// first record's second field is the pid and its first field the raw image
// text. tasklist reports "no match" with a plain INFO line and a zero exit,
// so the record is only trusted when it mentions the helper name.
func (b *windowsBackend) Probe(ctx context.Context, name string) Info {
	out, err := b.runner.Output(ctx, "tasklist",
		"/NH", "/FO", "CSV", "/FI", "IMAGENAME eq "+name+".exe")
	if err != nil {
		return stopped(name)
	}

	line := firstNonEmptyLine(out)
	if line == "" || !strings.Contains(line, name) {
		return stopped(name)
	}

	record, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil || len(record) < 2 {
		return stopped(name)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return stopped(name)
	}
	return Info{Name: name, PID: pid, Running: true, Command: record[0]}
}

// Terminate issues a single taskkill against the image name, forced only
// when requested. A missing image is a benign no-op; any other failure is
// surfaced to the caller.
func (b *windowsBackend) Terminate(ctx context.Context, name string, force bool) (bool, error) {
	args := []string{"/IM", name + ".exe"}
	if force {
		args = append([]string{"/F"}, args...)
	}
	if _, err := b.runner.Output(ctx, "taskkill", args...); err != nil {
		if execx.ExitCode(err) == taskkillNotFound {
			return false, nil
		}
		return false, fmt.Errorf("supervise: taskkill %s: %w", name, err)
	}
	return true, nil
}
