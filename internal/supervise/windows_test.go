package supervise

import (
	"context"
	"testing"
)

const (
	tasklistProc = `tasklist /NH /FO CSV /FI IMAGENAME eq proc.exe`
	taskkillProc = `taskkill /IM proc.exe`
	taskkillHard = `taskkill /F /IM proc.exe`
)

func TestWindowsProbeParsesCSVRecord(t *testing.T) {
	runner := newFakeRunner()
	runner.respond(tasklistProc, "\"proc.exe\",\"4242\",\"Services\",\"0\",\"12,345 K\"\r\n")

	info := NewWindowsBackend(runner).Probe(context.Background(), "proc")
	if !info.Running || info.PID != 4242 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.Command != "proc.exe" {
		t.Fatalf("expected raw image text, got %q", info.Command)
	}
}

func TestWindowsProbeNoTasksLine(t *testing.T) {
	runner := newFakeRunner()
	runner.respond(tasklistProc, "INFO: No tasks are running which match the specified criteria.\r\n")

	info := NewWindowsBackend(runner).Probe(context.Background(), "proc")
	want := Info{Name: "proc", PID: NoPID, Running: false}
	if info != want {
		t.Fatalf("expected %+v, got %+v", want, info)
	}
}

func TestWindowsProbeCommandFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.failWith(tasklistProc, 1)

	info := NewWindowsBackend(runner).Probe(context.Background(), "proc")
	if info.Running || info.PID != NoPID {
		t.Fatalf("command failure must collapse to not running: %+v", info)
	}
}

func TestWindowsTerminateDispatches(t *testing.T) {
	runner := newFakeRunner()
	runner.respond(taskkillProc, "SUCCESS: Sent termination signal to the process \"proc.exe\".\r\n")

	dispatched, err := NewWindowsBackend(runner).Terminate(context.Background(), "proc", false)
	if err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}
	if !dispatched {
		t.Fatalf("expected dispatched outcome")
	}
}

func TestWindowsTerminateForceFlag(t *testing.T) {
	runner := newFakeRunner()
	runner.respond(taskkillHard, "")

	dispatched, err := NewWindowsBackend(runner).Terminate(context.Background(), "proc", true)
	if err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}
	if !dispatched {
		t.Fatalf("expected dispatched outcome")
	}
	if runner.callCount(taskkillHard) != 1 {
		t.Fatalf("expected forced taskkill invocation: %v", runner.calls)
	}
}

func TestWindowsTerminateImageNotFoundIsBenign(t *testing.T) {
	runner := newFakeRunner()
	runner.failWith(taskkillProc, 128)

	dispatched, err := NewWindowsBackend(runner).Terminate(context.Background(), "proc", false)
	if err != nil {
		t.Fatalf("missing image must not error: %v", err)
	}
	if dispatched {
		t.Fatalf("expected false outcome for missing image")
	}
}

func TestWindowsTerminateUnexpectedFailureIsFatal(t *testing.T) {
	runner := newFakeRunner()
	runner.failWith(taskkillProc, 1)

	_, err := NewWindowsBackend(runner).Terminate(context.Background(), "proc", false)
	if err == nil {
		t.Fatalf("expected fatal error for unexpected taskkill failure")
	}
}
