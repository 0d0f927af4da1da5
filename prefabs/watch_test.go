package prefabs

import (
	"testing"
	"time"
)

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}

	// The watch goroutine owns the channels; both must be closed once it
	// has stopped, so a reader draining them terminates.
	deadline := time.After(2 * time.Second)
	for open := 2; open > 0; {
		select {
		case _, ok := <-w.Changed:
			if !ok {
				w.Changed = nil
				open--
			}
		case _, ok := <-w.Errors:
			if !ok {
				w.Errors = nil
				open--
			}
		case <-deadline:
			t.Fatalf("channels not closed after Close")
		}
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher("no/such/dir"); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}

func TestWatchable(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"data/clips.yaml", true},
		{"data/clips.YML", true},
		{"data/events.tengo", true},
		{"data/sheet.png", false},
		{"data/notes.txt", false},
	}

	for _, c := range cases {
		if got := watchable(c.path); got != c.want {
			t.Fatalf("watchable(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
