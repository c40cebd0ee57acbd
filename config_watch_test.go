package salinity

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salinity.toml")
	if err := os.WriteFile(path, []byte("width = 800\nheight = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cw, err := WatchConfig(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer cw.Close()

	if _, ok := cw.Poll(); ok {
		t.Fatal("Poll before any change should report nothing")
	}

	if err := os.WriteFile(path, []byte("width = 1024\nheight = 600\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cfg, ok := cw.Poll(); ok {
			if cfg.Width != 1024 {
				t.Errorf("Width = %d, want 1024", cfg.Width)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no reload within 5s")
}

func TestConfigWatcherPublishKeepsLatest(t *testing.T) {
	cw := &ConfigWatcher{reloads: make(chan Config, 1)}
	a, b := DefaultConfig(), DefaultConfig()
	a.Width, b.Width = 1, 2
	cw.publish(a)
	cw.publish(b)

	cfg, ok := cw.Poll()
	if !ok || cfg.Width != 2 {
		t.Errorf("Poll = %d, %v; want 2, true", cfg.Width, ok)
	}
	if _, ok := cw.Poll(); ok {
		t.Error("second Poll should be empty")
	}
}
