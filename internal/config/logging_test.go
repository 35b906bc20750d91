package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetTriggerLogPath(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2026, 3, 9, 23, 30, 0, 0, loc)

	got := GetTriggerLogPath("/logs", ts)
	want := filepath.Join("/logs", "trigger-2026-03-10.log")
	if got != want {
		t.Errorf("GetTriggerLogPath() = %s, want %s", got, want)
	}
}

func TestSetupLogRotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "trigger-2026-01-01.log")
	cfg := DefaultLogRotationConfig()

	logger := SetupLogRotation(logPath, cfg)
	if logger == nil {
		t.Fatal("SetupLogRotation returned nil")
	}
	defer logger.Close()

	if logger.Filename != logPath || logger.MaxAge != cfg.MaxAge || logger.MaxSize != cfg.MaxSize {
		t.Errorf("logger = %+v", logger)
	}
	if _, err := os.Stat(filepath.Dir(logPath)); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().AddDate(0, 0, -45)

	files := map[string]bool{ // name -> expected to survive
		"trigger-2025-01-01.log":    false,
		"trigger-2025-01-02.log.gz": false,
		"trigger-today.log":         true,
		"other-2025-01-01.log":      true,
	}
	for name, survives := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if !survives || name == "other-2025-01-01.log" {
			if err := os.Chtimes(path, old, old); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := CleanupOldLogs(dir, 30); err != nil {
		t.Fatalf("CleanupOldLogs error: %v", err)
	}

	for name, survives := range files {
		_, err := os.Stat(filepath.Join(dir, name))
		if exists := err == nil; exists != survives {
			t.Errorf("%s exists = %v, want %v", name, exists, survives)
		}
	}

	if err := CleanupOldLogs(filepath.Join(dir, "missing"), 30); err != nil {
		t.Errorf("missing directory should be ignored, got %v", err)
	}
}
