package supervise

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/example/warden/internal/metrics"
)

// KillResult captures the outcome of one termination attempt. Dispatched
// reports whether a signal reached at least one matching process; Err carries
// a fatal command failure, captured per name so one helper's failure never
// suppresses its siblings' results.
type KillResult struct {
	Dispatched bool
	Err        error
}

// Supervisor fans probe and terminate operations out across a fixed set of
// helper names. It holds no state beyond the backend and the name list; the
// process table is re-queried on every call.
type Supervisor struct {
	backend Backend
	names   []string
}

// NewSupervisor constructs a supervisor over the provided helper names.
func NewSupervisor(backend Backend, names []string) (*Supervisor, error) {
	if backend == nil {
		return nil, fmt.Errorf("supervise: backend is required")
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("supervise: at least one helper name is required")
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("supervise: helper names must not be empty")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("supervise: duplicate helper name %q", name)
		}
		seen[name] = struct{}{}
	}
	return &Supervisor{backend: backend, names: append([]string(nil), names...)}, nil
}

// Names returns the managed helper names in manifest order.
func (s *Supervisor) Names() []string {
	return append([]string(nil), s.names...)
}

// Check probes a single helper.
func (s *Supervisor) Check(ctx context.Context, name string) Info {
	info := s.backend.Probe(ctx, name)
	metrics.ObserveProbe(name, info.Running)
	return info
}

// Kill attempts to terminate a single helper.
func (s *Supervisor) Kill(ctx context.Context, name string, force bool) (bool, error) {
	dispatched, err := s.backend.Terminate(ctx, name, force)
	if dispatched {
		metrics.ObserveTermination(name, force)
	}
	return dispatched, err
}

// CheckAll probes every managed helper concurrently and reports exactly one
// entry per name.
func (s *Supervisor) CheckAll(ctx context.Context) map[string]Info {
	results := make([]Info, len(s.names))
	var wg sync.WaitGroup
	for i, name := range s.names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = s.Check(ctx, name)
		}(i, name)
	}
	wg.Wait()

	infos := make(map[string]Info, len(results))
	for i, name := range s.names {
		infos[name] = results[i]
	}
	return infos
}

// KillAll terminates every managed helper concurrently and reports exactly
// one entry per name regardless of individual outcomes.
func (s *Supervisor) KillAll(ctx context.Context, force bool) map[string]KillResult {
	results := make([]KillResult, len(s.names))
	var wg sync.WaitGroup
	for i, name := range s.names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			dispatched, err := s.Kill(ctx, name, force)
			results[i] = KillResult{Dispatched: dispatched, Err: err}
		}(i, name)
	}
	wg.Wait()

	outcomes := make(map[string]KillResult, len(results))
	for i, name := range s.names {
		outcomes[name] = results[i]
	}
	return outcomes
}
