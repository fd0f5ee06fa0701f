package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingDefaultIsEmpty(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TICKETDESK_CONFIG_DIR", dir)
	t.Setenv("TICKETDESK_CONFIG", "")

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != filepath.Join(dir, "config.yaml") {
		t.Fatalf("unexpected path %q", path)
	}
	if cfg.Data != "" || cfg.QuickEdit.ClearSelection {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_MissingExplicitIsError(t *testing.T) {
	t.Setenv("TICKETDESK_CONFIG", "")
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	body := `data: ./tickets.jsonc
log:
  file: /tmp/td.log
  level: debug
quickEdit:
  clearSelection: true
tickets:
  touchUpdatedAt: true
table:
  sort: created
  desc: true
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TICKETDESK_CONFIG", p)

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != p {
		t.Fatalf("expected env path, got %q", path)
	}
	if cfg.Data != "./tickets.jsonc" || cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/td.log" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.QuickEdit.ClearSelection || !cfg.Tickets.TouchUpdatedAt || cfg.Table.Sort != "created" || !cfg.Table.Desc {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("table: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TICKETDESK_DATA", "seed.yaml")
	t.Setenv("TICKETDESK_LOG_FILE", "")
	t.Setenv("TICKETDESK_LOG_LEVEL", "warn")
	cfg := &Config{Data: "file.yaml", Log: LogConfig{File: "keep.log", Level: "info"}}
	cfg.ApplyEnv()
	if cfg.Data != "seed.yaml" || cfg.Log.File != "keep.log" || cfg.Log.Level != "warn" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestSave_RoundTripKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sub", "config.yaml")
	if err := Save(p, &Config{Table: TableConfig{Sort: "title"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(p, &Config{Table: TableConfig{Sort: "status", Desc: true}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg, _, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Table.Sort != "status" || !cfg.Table.Desc {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	bak, err := os.ReadFile(p + ".bak")
	if err != nil {
		t.Fatalf("expected backup: %v", err)
	}
	if !strings.Contains(string(bak), "sort: title") {
		t.Fatalf("backup should hold the previous config, got %q", bak)
	}
}
