package supervise

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/warden/internal/execx"
	"github.com/example/warden/internal/metrics"
)

// pgrep exits 1 when no process matched, which is a benign absence rather
// than a failure.
const pgrepNoMatch = 1

type posixBackend struct {
	runner execx.Runner
	settle time.Duration
}

// NewPosixBackend constructs the backend for Unix-family systems.
func NewPosixBackend(runner execx.Runner, opts ...Option) Backend {
	o := options{settle: DefaultSettleDelay}
	for _, opt := range opts {
		opt(&o)
	}
	return &posixBackend{runner: runner, settle: o.settle}
}

// Probe tries three matching strategies in fixed order: substring match
// against the full command line, exact match against the executable name,
// and a path-qualified suffix match. Processes are launched in too many ways
// for a single rule to find them all; the first strategy that yields a pid
// wins and its first pid is authoritative.
func (b *posixBackend) Probe(ctx context.Context, name string) Info {
	strategies := []struct {
		args []string
		raw  bool
	}{
		{args: []string{"pgrep", "-fl", name}, raw: true},
		{args: []string{"pgrep", "-x", name}},
		{args: []string{"pgrep", "-f", "/" + name + "$"}},
	}

	for _, strategy := range strategies {
		out, err := b.runner.Output(ctx, strategy.args[0], strategy.args[1:]...)
		if err != nil {
			// A failed strategy, benign or not, must not abort the rest.
			continue
		}
		line := firstNonEmptyLine(out)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		info := Info{Name: name, PID: pid, Running: true}
		if strategy.raw && len(fields) > 1 {
			info.Command = strings.Join(fields[1:], " ")
		}
		return info
	}
	return stopped(name)
}

// Terminate runs the two-phase escalation protocol. Phase one is a
// best-effort pattern kill through pkill, falling back to killall when pkill
// is unavailable. Phase two re-enumerates matching pids and signals each one
// individually. When the graceful signal was requested and the helper is
// still alive after the settle delay, the whole protocol is retried once
// with the forced signal and that attempt's outcome replaces this one.
func (b *posixBackend) Terminate(ctx context.Context, name string, force bool) (bool, error) {
	sig := "-15"
	if force {
		sig = "-9"
	}

	dispatched := false

	// Broad phase, best effort: exit status is only consulted to learn
	// whether anything was signalled.
	script := fmt.Sprintf("pkill %s -f %q || killall %s %q", sig, name, sig, name)
	if _, err := b.runner.Output(ctx, "sh", "-c", script); err == nil {
		dispatched = true
	}

	// Targeted phase: same substring pattern as the probe's first strategy.
	out, err := b.runner.Output(ctx, "pgrep", "-f", name)
	switch {
	case err == nil:
		for _, pid := range parsePIDs(out) {
			if _, err := b.runner.Output(ctx, "kill", sig, strconv.Itoa(pid)); err == nil {
				dispatched = true
			}
		}
	case execx.ExitCode(err) == pgrepNoMatch:
		// Nothing left to target.
	default:
		return false, fmt.Errorf("supervise: list %s processes: %w", name, err)
	}

	if !force {
		select {
		case <-ctx.Done():
			return dispatched, ctx.Err()
		case <-time.After(b.settle):
		}
		if b.Probe(ctx, name).Running {
			metrics.IncrementEscalation(name)
			return b.Terminate(ctx, name, true)
		}
	}
	return dispatched, nil
}

func parsePIDs(out []byte) []int {
	var pids []int
	for _, field := range strings.Fields(string(out)) {
		pid, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}

func firstNonEmptyLine(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
