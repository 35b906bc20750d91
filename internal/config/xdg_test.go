package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewXDGConfig(t *testing.T) {
	testConfigHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", testConfigHome)

	xdg := NewXDGConfig()
	expectedBaseDir := filepath.Join(testConfigHome, "ccgadget")
	if xdg.BaseDir != expectedBaseDir {
		t.Errorf("Expected BaseDir %s, got %s", expectedBaseDir, xdg.BaseDir)
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)
	xdg = NewXDGConfig()
	expectedBaseDir = filepath.Join(home, ".config", "ccgadget")
	if xdg.BaseDir != expectedBaseDir {
		t.Errorf("Expected BaseDir %s, got %s", expectedBaseDir, xdg.BaseDir)
	}
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	xdg := &XDGConfig{BaseDir: t.TempDir()}

	cfg, source, err := xdg.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if source != "" {
		t.Errorf("expected empty source, got %s", source)
	}

	bindings := cfg.Bindings()
	if len(bindings) != 4 {
		t.Fatalf("expected 4 default bindings, got %d", len(bindings))
	}
	for i, ev := range []string{"UserPromptSubmit", "PreToolUse", "PostToolUse", "Notification"} {
		if bindings[i].Event != ev || bindings[i].Command != "ccgadget trigger" {
			t.Errorf("binding %d = %+v", i, bindings[i])
		}
	}
	if cfg.LogRotation != DefaultLogRotationConfig() {
		t.Errorf("log rotation = %+v, want defaults", cfg.LogRotation)
	}
	if cfg.Device.ScanSeconds != DefaultScanSeconds {
		t.Errorf("scan seconds = %d", cfg.Device.ScanSeconds)
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `hooks:
  - event: Stop
    command: ccgadget trigger --quiet
device:
  address: AA:BB:CC:DD:EE:FF
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `[[hooks]]
event = "Stop"
command = "ccgadget trigger --quiet"

[device]
address = "AA:BB:CC:DD:EE:FF"
`,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"hooks":[{"event":"Stop","command":"ccgadget trigger --quiet"}],"device":{"address":"AA:BB:CC:DD:EE:FF"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			cfg, source, err := (&XDGConfig{BaseDir: dir}).Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if source != path {
				t.Errorf("source = %s, want %s", source, path)
			}
			if len(cfg.Hooks) != 1 || cfg.Hooks[0].Event != "Stop" || cfg.Hooks[0].Command != "ccgadget trigger --quiet" {
				t.Errorf("hooks = %+v", cfg.Hooks)
			}
			if cfg.Device.Address != "AA:BB:CC:DD:EE:FF" {
				t.Errorf("device address = %q", cfg.Device.Address)
			}
			// unset values keep their defaults
			if cfg.Device.ScanSeconds != DefaultScanSeconds {
				t.Errorf("scan seconds = %d, want default", cfg.Device.ScanSeconds)
			}
			if cfg.LogRotation.MaxAge != 30 {
				t.Errorf("maxAge = %d, want default 30", cfg.LogRotation.MaxAge)
			}
		})
	}
}

func TestLoadYAMLWinsOverJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("device:\n  scanSeconds: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := (&XDGConfig{BaseDir: dir}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if filepath.Base(source) != "config.yaml" {
		t.Errorf("source = %s, want config.yaml", source)
	}
	if cfg.Device.ScanSeconds != 3 {
		t.Errorf("scan seconds = %d, want 3", cfg.Device.ScanSeconds)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad yaml", "hooks: [", "failed to parse YAML"},
		{"missing command", "hooks:\n  - event: Stop\n", "command is required"},
		{"missing event", "hooks:\n  - command: x\n", "event is required"},
		{"duplicate event", "hooks:\n  - {event: Stop, command: a}\n  - {event: Stop, command: b}\n", "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, _, err := (&XDGConfig{BaseDir: dir}).Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			xdg := &XDGConfig{BaseDir: filepath.Join(t.TempDir(), "ccgadget")}
			cfg := DefaultAppConfig()
			cfg.Device.Address = "11:22:33:44:55:66"

			path, err := xdg.Save(cfg, format, false)
			if err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			if filepath.Ext(path) != "."+format {
				t.Errorf("path = %s", path)
			}

			loaded, source, err := xdg.Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if source != path {
				t.Errorf("source = %s, want %s", source, path)
			}
			if loaded.Device.Address != cfg.Device.Address || len(loaded.Hooks) != len(cfg.Hooks) {
				t.Errorf("loaded = %+v", loaded)
			}

			if _, err := xdg.Save(cfg, format, false); err == nil {
				t.Error("second Save() without force should fail")
			}
			if _, err := xdg.Save(cfg, format, true); err != nil {
				t.Errorf("Save() with force error: %v", err)
			}
		})
	}
}

func TestEncodeConfigUnsupported(t *testing.T) {
	if _, err := EncodeConfig(DefaultAppConfig(), "ini"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
