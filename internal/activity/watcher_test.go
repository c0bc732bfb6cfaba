package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGrowReportsDelta(t *testing.T) {
	w := &Watcher{sizes: map[string]int64{"/p/main.go": 100}}

	if d := w.grow("/p/main.go", 130); d != 30 {
		t.Fatalf("delta = %d, want 30", d)
	}
	// Size is updated, so a repeat event yields nothing.
	if d := w.grow("/p/main.go", 130); d != 0 {
		t.Fatalf("repeat delta = %d, want 0", d)
	}
}

func TestGrowIgnoresShrink(t *testing.T) {
	w := &Watcher{sizes: map[string]int64{"/p/main.go": 100}}

	if d := w.grow("/p/main.go", 40); d != 0 {
		t.Fatalf("shrink delta = %d, want 0", d)
	}
	// The new baseline is the smaller size.
	if d := w.grow("/p/main.go", 50); d != 10 {
		t.Fatalf("delta after shrink = %d, want 10", d)
	}
}

func TestGrowCapsBulkWrites(t *testing.T) {
	w := &Watcher{sizes: map[string]int64{"/p/gen.go": 0}}

	if d := w.grow("/p/gen.go", 2<<20); d != 0 {
		t.Fatalf("bulk write delta = %d, want 0", d)
	}
	// The baseline still moved to the new size.
	if d := w.grow("/p/gen.go", 2<<20+5); d != 5 {
		t.Fatalf("delta after bulk = %d, want 5", d)
	}
}

func TestGrowUnseenFileCountsFromZero(t *testing.T) {
	w := &Watcher{sizes: map[string]int64{}}

	if d := w.grow("/p/new.go", 12); d != 12 {
		t.Fatalf("delta = %d, want 12", d)
	}
}

func TestSkipDir(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{".cache", true},
		{"node_modules", true},
		{"vendor", true},
		{"target", true},
		{"dist", true},
		{"build", true},
		{"src", false},
		{"internal", false},
	}
	for _, tt := range tests {
		if got := skipDir(tt.name); got != tt.want {
			t.Errorf("skipDir(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTrackable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/p/main.go", true},
		{"/p/README.md", true},
		{"/p/Makefile", true},
		{"/p/.env", false},
		{"/p/logo.png", false},
		{"/p/demo.MP4", false},
		{"/p/state.db", false},
		{"/p/notes.txt", true},
	}
	for _, tt := range tests {
		if got := trackable(tt.path); got != tt.want {
			t.Errorf("trackable(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherEmitsOnFileGrowth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w, err := NewWatcher([]string{dir})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, err := f.WriteString(" world"); err != nil {
		t.Fatalf("grow file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	select {
	case d := <-w.Events:
		if d != 6 {
			t.Fatalf("delta = %d, want 6", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for file growth")
	}
}

func TestWatcherIgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{dir})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Start()
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, ".secret"), []byte("xx"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case d := <-w.Events:
		t.Fatalf("unexpected event %d for dotfile", d)
	case <-time.After(200 * time.Millisecond):
	}
}
