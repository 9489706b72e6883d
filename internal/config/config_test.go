package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Template != DefaultTemplate {
		t.Errorf("Template = %q", cfg.Template)
	}
	if len(cfg.Extensions) == 0 {
		t.Error("expected default extensions")
	}
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
template = "{name} - {id}{originalExt}"
extensions = ["PDF", " docx ", ""]
journal_path = "` + filepath.Join(dir, "journal.db") + `"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ROLLCALL_TEMPLATE", "{id}{originalExt}")
	t.Setenv("ROLLCALL_ROSTER", filepath.Join(dir, "roster.csv"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// env beats file
	if cfg.Template != "{id}{originalExt}" {
		t.Errorf("Template = %q", cfg.Template)
	}
	if cfg.RosterPath != filepath.Join(dir, "roster.csv") {
		t.Errorf("RosterPath = %q", cfg.RosterPath)
	}
	// file extensions normalized: lowercase, dotted, blanks dropped
	want := []string{".pdf", ".docx"}
	if len(cfg.Extensions) != len(want) {
		t.Fatalf("Extensions = %v", cfg.Extensions)
	}
	for i := range want {
		if cfg.Extensions[i] != want[i] {
			t.Errorf("Extensions[%d] = %q, want %q", i, cfg.Extensions[i], want[i])
		}
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_EnvExtensionList(t *testing.T) {
	t.Setenv("ROLLCALL_EXTENSIONS", "pdf, .docx ,txt")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []string{".pdf", ".docx", ".txt"}
	if len(cfg.Extensions) != 3 {
		t.Fatalf("Extensions = %v", cfg.Extensions)
	}
	for i := range want {
		if cfg.Extensions[i] != want[i] {
			t.Errorf("Extensions[%d] = %q, want %q", i, cfg.Extensions[i], want[i])
		}
	}
}
