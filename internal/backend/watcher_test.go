package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/tmux-popup-compose/internal/candidate"
	"go.uber.org/goleak"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherStopReleasesGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "candidates.yaml")
	writeFile(t, path, "- label: Name\n")
	w, err := NewWatcher(path, nil, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed after Stop")
	}
	w.Stop()
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.yaml")
	writeFile(t, path, "- label: Name\n")
	w, err := NewWatcher(path, candidate.LoadFile, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	writeFile(t, filepath.Join(dir, "unrelated.txt"), "ignored")
	writeFile(t, path, "- label: Name\n- label: Phone\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt := <-w.Events():
			if evt.Err != nil {
				t.Fatalf("unexpected error: %v", evt.Err)
			}
			if len(evt.Candidates) != 2 {
				continue
			}
			if evt.Candidates[1].Label != "Phone" {
				t.Fatalf("unexpected candidates %+v", evt.Candidates)
			}
			if evt.Path != w.Path() {
				t.Fatalf("expected path %q, got %q", w.Path(), evt.Path)
			}
			return
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}

func TestWatcherReportsLoadErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "candidates.yaml")
	writeFile(t, path, "")
	boom := errors.New("boom")
	w, err := NewWatcher(path, func(string) (candidate.Static, error) { return nil, boom }, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	writeFile(t, path, "x")
	select {
	case evt := <-w.Events():
		if !errors.Is(evt.Err, boom) {
			t.Fatalf("expected load error, got %v", evt.Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for error event")
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "c.yaml"), nil, time.Millisecond)
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
