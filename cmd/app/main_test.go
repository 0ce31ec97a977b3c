package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig_ContentFlagSatisfiesWatch(t *testing.T) {
	p := writeConfig(t, "content:\n  watch: true\n")
	dir := t.TempDir()

	cfg, err := loadConfig(p, dir)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Content.Path != dir || !cfg.Content.Watch {
		t.Errorf("content = %+v", cfg.Content)
	}
}

func TestLoadConfig_WatchWithoutPathFails(t *testing.T) {
	p := writeConfig(t, "content:\n  watch: true\n")
	_, err := loadConfig(p, "")
	if err == nil || !strings.Contains(err.Error(), "content.path") {
		t.Errorf("err = %v, want content.path validation error", err)
	}
}

func TestLoadConfig_KeepsDefaultsWithoutOverride(t *testing.T) {
	p := writeConfig(t, "content:\n  latency: 10ms\n")
	cfg, err := loadConfig(p, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Content.Path != "" {
		t.Errorf("path = %q, want empty", cfg.Content.Path)
	}

	_, err = loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), "")
	if err != nil {
		t.Errorf("missing config file: %v", err)
	}
}
