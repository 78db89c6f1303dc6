package supervise

import (
	"context"
	"strings"
	"sync"

	"github.com/example/warden/internal/execx"
)

// fakeRunner scripts command outputs keyed by the full command line. Commands
// without a scripted response behave like pgrep/pkill with no match (exit 1).
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResult
	calls     []string
}

type fakeResult struct {
	out string
	err error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]fakeResult)}
}

func (r *fakeRunner) respond(command, out string) {
	r.responses[command] = fakeResult{out: out}
}

func (r *fakeRunner) failWith(command string, code int) {
	name := strings.Fields(command)[0]
	r.responses[command] = fakeResult{err: &execx.ExitError{Cmd: name, Code: code}}
}

func (r *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	r.mu.Lock()
	r.calls = append(r.calls, key)
	res, scripted := r.responses[key]
	r.mu.Unlock()
	if !scripted {
		return nil, &execx.ExitError{Cmd: name, Code: 1}
	}
	return []byte(res.out), res.err
}

func (r *fakeRunner) callCount(command string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, call := range r.calls {
		if call == command {
			count++
		}
	}
	return count
}

func (r *fakeRunner) callIndex(command string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, call := range r.calls {
		if call == command {
			return i
		}
	}
	return -1
}

// stubBackend scripts probe/terminate behaviour for orchestrator tests.
type stubBackend struct {
	probeFn func(name string) Info
	termFn  func(name string, force bool) (bool, error)
}

func (b *stubBackend) Probe(ctx context.Context, name string) Info {
	if b.probeFn != nil {
		return b.probeFn(name)
	}
	return stopped(name)
}

func (b *stubBackend) Terminate(ctx context.Context, name string, force bool) (bool, error) {
	if b.termFn != nil {
		return b.termFn(name, force)
	}
	return false, nil
}
