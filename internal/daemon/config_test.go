package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7575 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7575)
	}
	if cfg.Chat.HistoryLimit != 50 {
		t.Errorf("Chat.HistoryLimit = %d, want 50", cfg.Chat.HistoryLimit)
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus should default to true")
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("MEMOCLARITY_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 7575 {
		t.Errorf("API.Port = %d, want default 7575", cfg.API.Port)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MEMOCLARITY_HOME", home)

	body := "[api]\nport = 9000\n\n[chat]\nhistory_limit = 20\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}
	if cfg.Chat.HistoryLimit != 20 {
		t.Errorf("Chat.HistoryLimit = %d, want 20", cfg.Chat.HistoryLimit)
	}
	// Untouched sections keep defaults
	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want default", cfg.API.Host)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("MEMOCLARITY_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 8123
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.API.Port != 8123 {
		t.Errorf("API.Port = %d, want 8123", loaded.API.Port)
	}
}
