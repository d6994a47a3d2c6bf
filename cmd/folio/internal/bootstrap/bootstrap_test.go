package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildModuleAppliesOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("FOLIO_SESSION_SECRET", "0123456789abcdef0123456789abcdef")

	var logs bytes.Buffer
	resources, err := BuildModule(Options{SiteRoot: root, LogLevel: "debug", LogWriter: &logs})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module == nil || resources.Logger == nil {
		t.Fatal("expected module and logger to be initialised")
	}
	cfg := resources.Module.Container().Config
	if cfg.Site.Root != root {
		t.Fatalf("expected site root %s, got %s", root, cfg.Site.Root)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Logging.Level)
	}
	if !strings.Contains(logs.String(), "di.container.ready") {
		t.Fatalf("expected debug output on the log writer, got %q", logs.String())
	}
}

func TestBuildModuleReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := "[site]\nroot = \"" + filepath.ToSlash(dir) + "\"\nowner = \"Ada\"\n\n[server]\nsession_secret = \"0123456789abcdef0123456789abcdef\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	resources, err := BuildModule(Options{ConfigPath: path, LogWriter: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if owner := resources.Module.Container().Config.Site.Owner; owner != "Ada" {
		t.Fatalf("expected owner Ada, got %q", owner)
	}
}

func TestBuildModuleRejectsMissingConfigFile(t *testing.T) {
	if _, err := BuildModule(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
