package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/tubedigest/internal/logger"
)

func TestMatches(t *testing.T) {
	w := &implWatcher{extensions: map[string]struct{}{".tmpl": {}, ".txt": {}}}

	tests := []struct {
		path string
		want bool
	}{
		{"/p/final_system.tmpl", true},
		{"/p/QUOTES.TMPL", true},
		{"/p/notes.txt", true},
		{"/p/.final_system.tmpl.swp", false},
		{"/p/.hidden.tmpl", false},
		{"/p/image.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := w.matches(tt.path); got != tt.want {
				t.Errorf("matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchesWithoutFilter(t *testing.T) {
	w := &implWatcher{extensions: map[string]struct{}{}}
	if !w.matches("/p/anything.bin") {
		t.Error("matches() = false, want true when no extensions are set")
	}
}

func TestStartDispatchesEvents(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)

	w, err := New(dir, func(ctx context.Context, path string) error {
		got <- filepath.Base(path)
		return nil
	}, logger.Nop(), Options{Extensions: []string{".tmpl"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the loop a moment to start before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "ignored.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary_system.tmpl"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-got:
		if name != "summary_system.tmpl" {
			t.Errorf("handler got %q, want summary_system.tmpl", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Nop(), Options{})
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
