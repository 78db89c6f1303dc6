// Package supervise implements probing and termination of the named helper
// processes managed on behalf of the host tool. The OS process table is the
// single source of truth: every probe re-queries it, and termination follows
// a graceful-then-forced escalation protocol on POSIX systems.
package supervise

import (
	"context"
	"runtime"
	"time"

	"github.com/example/warden/internal/execx"
)

// NoPID is the sentinel process id reported when a helper is not running.
const NoPID = -1

// DefaultSettleDelay is the interval a gracefully signalled process is given
// to exit before termination escalates to a forced signal.
const DefaultSettleDelay = 1000 * time.Millisecond

// Info describes the observed state of a single named helper process. Values
// are created fresh by every probe and never cached; staleness is bounded by
// call latency only.
type Info struct {
	// Name is the logical helper name as supplied by the caller.
	Name string
	// PID is the matched process id, or NoPID when Running is false.
	PID int
	// Running reports whether a matching process was found.
	Running bool
	// Command is the best-effort raw descriptor of the matched process. It
	// may be empty even when Running is true.
	Command string
}

// stopped returns the canonical not-running Info for a name.
func stopped(name string) Info {
	return Info{Name: name, PID: NoPID, Running: false}
}

// Backend is the platform-specific probe/terminate capability. Exactly two
// implementations exist, one per operating system family; the choice is made
// once at construction time and no platform branching leaks past it.
type Backend interface {
	// Probe queries the process table for the named helper. It never fails:
	// command errors and absent processes both collapse to a not-running
	// Info.
	Probe(ctx context.Context, name string) Info

	// Terminate attempts to stop every process matching the named helper.
	// The boolean reports whether a termination signal was dispatched to at
	// least one matching process; it is not a guarantee of death. A missing
	// process is not an error. Unexpected command failures are.
	Terminate(ctx context.Context, name string, force bool) (bool, error)
}

// Option configures backend construction.
type Option func(*options)

type options struct {
	settle time.Duration
}

// WithSettleDelay overrides the interval allowed for a gracefully signalled
// process to exit before escalation.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.settle = d
		}
	}
}

// NewBackend selects the backend matching the current operating system.
func NewBackend(runner execx.Runner, opts ...Option) Backend {
	if runtime.GOOS == "windows" {
		return NewWindowsBackend(runner)
	}
	return NewPosixBackend(runner, opts...)
}
