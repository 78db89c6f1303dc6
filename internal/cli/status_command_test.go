package cli

import (
	"bytes"
	stdcontext "context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/example/warden/internal/supervise"
)

// scriptedBackend drives CLI tests without touching the OS process table.
type scriptedBackend struct {
	running map[string]int
	killErr map[string]error

	mu     sync.Mutex
	killed []string
}

func (b *scriptedBackend) Probe(ctx stdcontext.Context, name string) supervise.Info {
	if pid, ok := b.running[name]; ok {
		return supervise.Info{Name: name, PID: pid, Running: true, Command: "/usr/libexec/" + name}
	}
	return supervise.Info{Name: name, PID: supervise.NoPID, Running: false}
}

func (b *scriptedBackend) Terminate(ctx stdcontext.Context, name string, force bool) (bool, error) {
	if err := b.killErr[name]; err != nil {
		return false, err
	}
	if _, ok := b.running[name]; !ok {
		return false, nil
	}
	b.mu.Lock()
	b.killed = append(b.killed, name)
	b.mu.Unlock()
	return true, nil
}

func newTestRoot(t *testing.T, backend supervise.Backend) (*bytes.Buffer, func(args ...string) error) {
	t.Helper()
	root, ctx := newRootCommand()
	sup, err := supervise.NewSupervisor(backend, []string{
		"language-server", "completion-server", "completion-client",
	})
	if err != nil {
		t.Fatalf("NewSupervisor returned error: %v", err)
	}
	ctx.supervisor = sup

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	return out, func(args ...string) error {
		root.SetArgs(args)
		return root.Execute()
	}
}

func TestStatusCommandTable(t *testing.T) {
	backend := &scriptedBackend{running: map[string]int{"language-server": 4242}}
	out, run := newTestRoot(t, backend)

	if err := run("status"); err != nil {
		t.Fatalf("status returned error: %v", err)
	}

	body := out.String()
	if !strings.Contains(body, "HELPER") {
		t.Fatalf("expected table header, got:\n%s", body)
	}
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus one row per helper, got:\n%s", body)
	}
	if !strings.Contains(body, "4242") {
		t.Fatalf("expected running pid in table:\n%s", body)
	}
	if !strings.Contains(body, "completion-server") || !strings.Contains(body, "stopped") {
		t.Fatalf("expected stopped helpers in table:\n%s", body)
	}
	if strings.Contains(body, supervise.GlyphRunning) {
		t.Fatalf("glyphs must be reserved for interactive terminals:\n%s", body)
	}
}

func TestStatusCommandJSON(t *testing.T) {
	backend := &scriptedBackend{running: map[string]int{"completion-client": 7}}
	out, run := newTestRoot(t, backend)

	if err := run("status", "--json"); err != nil {
		t.Fatalf("status --json returned error: %v", err)
	}

	var records []statusRecord
	if err := json.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("decode JSON output: %v\n%s", err, out.String())
	}
	if len(records) != 3 {
		t.Fatalf("expected one record per helper, got %d", len(records))
	}
	byName := make(map[string]statusRecord, len(records))
	for _, record := range records {
		byName[record.Helper] = record
	}
	if !byName["completion-client"].Running || byName["completion-client"].PID != 7 {
		t.Fatalf("unexpected record: %+v", byName["completion-client"])
	}
	if byName["language-server"].PID != 0 {
		t.Fatalf("stopped record must omit the pid: %+v", byName["language-server"])
	}
}

func TestCheckCommandRunning(t *testing.T) {
	backend := &scriptedBackend{running: map[string]int{"language-server": 99}}
	out, run := newTestRoot(t, backend)

	if err := run("check", "language-server"); err != nil {
		t.Fatalf("check returned error: %v", err)
	}
	if !strings.Contains(out.String(), "99") {
		t.Fatalf("expected pid in check output:\n%s", out.String())
	}
}

func TestCheckCommandStopped(t *testing.T) {
	backend := &scriptedBackend{}
	out, run := newTestRoot(t, backend)

	err := run("check", "language-server")
	if !errors.Is(err, errNotRunning) {
		t.Fatalf("expected errNotRunning, got %v", err)
	}
	if !strings.Contains(out.String(), "stopped") {
		t.Fatalf("expected stopped line in output:\n%s", out.String())
	}
}
