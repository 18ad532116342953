package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/incatools/odkctl/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project-odk.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadNoConfigPath(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load("", Overrides{ID: "my-ont", Imports: []string{"pato", "ro"}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ID != "my-ont" {
		t.Fatalf("id: got %q", cfg.ID)
	}
	if cfg.EditFormat != "owl" || cfg.GitMainBranch != "main" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Repo != "my-ont" || cfg.Title != "my-ont" {
		t.Fatalf("derived fields: repo=%q title=%q", cfg.Repo, cfg.Title)
	}
	ids := make([]string, 0, len(cfg.Imports))
	for _, imp := range cfg.Imports {
		ids = append(ids, imp.ID)
	}
	if !reflect.DeepEqual(ids, []string{"pato", "ro"}) {
		t.Fatalf("imports: %v", ids)
	}
	if cfg.Imports[0].BaseIRI != "http://purl.obolibrary.org/obo/PATO" {
		t.Fatalf("base iri: %q", cfg.Imports[0].BaseIRI)
	}
	if cfg.ConfigHash != "" {
		t.Fatalf("no-config path should have empty hash, got %q", cfg.ConfigHash)
	}
}

func TestLoadNoConfigRequiresID(t *testing.T) {
	testlog.Start(t)
	if _, err := Load("", Overrides{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFileWithOverridePrecedence(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
id = "fileont"
title = "From the file"
edit_format = "obo"
imports = ["pato"]
`)
	cfg, err := Load(path, Overrides{ID: "cliont", Imports: []string{"ro"}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ID != "cliont" {
		t.Fatalf("override should win: got %q", cfg.ID)
	}
	if cfg.Title != "From the file" {
		t.Fatalf("file value should survive: got %q", cfg.Title)
	}
	if cfg.EditFormat != "obo" {
		t.Fatalf("edit_format: got %q", cfg.EditFormat)
	}
	if len(cfg.Imports) != 2 || cfg.Imports[0].ID != "pato" || cfg.Imports[1].ID != "ro" {
		t.Fatalf("imports: %+v", cfg.Imports)
	}
	if cfg.ConfigHash == "" {
		t.Fatalf("expected config hash for file-backed load")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
id = "my-ont"
not_a_real_option = true
`)
	if _, err := Load(path, Overrides{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `id = [unclosed`)
	if _, err := Load(path, Overrides{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidationFailures(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		body string
	}{
		{"bad id", `id = "My Ontology"`},
		{"duplicate import", "id = \"my-ont\"\nimports = [\"pato\", \"pato\"]"},
		{"bad import id", "id = \"my-ont\"\nimports = [\"PATO!\"]"},
		{"bad edit format", "id = \"my-ont\"\nedit_format = \"ttl\""},
		{"unknown workflow", "id = \"my-ont\"\nworkflows = [\"qc\", \"nope\"]"},
		{"unknown ci", "id = \"my-ont\"\nci = [\"jenkins\"]"},
		{"unknown export format", "id = \"my-ont\"\nexport_formats = [\"pdf\"]"},
	}
	for _, tc := range cases {
		path := writeConfig(t, tc.body)
		if _, err := Load(path, Overrides{}); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load("", Overrides{ID: "my-ont", Imports: []string{"pato", "ro"}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	path := filepath.Join(t.TempDir(), "my-ont-odk.toml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ID != cfg.ID || reloaded.EditFormat != cfg.EditFormat {
		t.Fatalf("round trip mismatch: %+v vs %+v", reloaded, cfg)
	}
	if !reflect.DeepEqual(reloaded.Imports, cfg.Imports) {
		t.Fatalf("imports mismatch: %+v vs %+v", reloaded.Imports, cfg.Imports)
	}
	if !reflect.DeepEqual(reloaded.Workflows, cfg.Workflows) {
		t.Fatalf("workflows mismatch: %v vs %v", reloaded.Workflows, cfg.Workflows)
	}
}

func TestWorkflowAndCIQueries(t *testing.T) {
	testlog.Start(t)
	cfg, err := Load("", Overrides{ID: "my-ont"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.HasWorkflow("qc") || cfg.HasWorkflow("diff") {
		t.Fatalf("workflow defaults: %v", cfg.Workflows)
	}
	if !cfg.HasCI("github_actions") || cfg.HasCI("gitlab-ci") {
		t.Fatalf("ci defaults: %v", cfg.CI)
	}
}
