package template

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/incatools/odkctl/internal/config"
	"github.com/incatools/odkctl/internal/testutil/testlog"
)

func testConfig(t *testing.T, imports ...string) *config.ProjectConfig {
	t.Helper()
	cfg, err := config.Load("", config.Overrides{ID: "my-ont", Imports: imports})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[rel] = readFile(t, path)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}

func TestRenderCreateLaysOutTree(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, "pato", "ro")
	root := t.TempDir()

	tree, err := NewEngine().Render(cfg, root, ModeCreate)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(tree.Files) == 0 {
		t.Fatalf("no files rendered")
	}

	for _, rel := range []string{
		"src/ontology/Makefile",
		"src/ontology/run.sh",
		"src/ontology/my-ont-edit.owl",
		"src/ontology/catalog-v001.xml",
		"src/ontology/imports/pato_terms.txt",
		"src/ontology/imports/ro_terms.txt",
		"src/sparql/my-ont_terms.sparql",
		"README.md",
		".gitignore",
		"LICENSE",
		".github/workflows/qc.yml",
		".github/workflows/docs.yml",
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}

	info, err := os.Stat(filepath.Join(root, "src/ontology/run.sh"))
	if err != nil {
		t.Fatalf("stat run.sh: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("run.sh not executable: %v", info.Mode())
	}

	makefile := readFile(t, filepath.Join(root, "src/ontology/Makefile"))
	for _, want := range []string{"IMPORTS = pato ro", "imports/pato_import.owl", "imports/ro_import.owl"} {
		if !strings.Contains(makefile, want) {
			t.Fatalf("makefile missing %q", want)
		}
	}
	if strings.Contains(makefile, "cl_import") {
		t.Fatalf("makefile references an unconfigured import")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, "pato", "ro")
	rootA := t.TempDir()
	rootB := t.TempDir()

	if _, err := NewEngine().Render(cfg, rootA, ModeCreate); err != nil {
		t.Fatalf("render A: %v", err)
	}
	if _, err := NewEngine().Render(cfg, rootB, ModeCreate); err != nil {
		t.Fatalf("render B: %v", err)
	}

	filesA := snapshot(t, rootA)
	filesB := snapshot(t, rootB)
	if len(filesA) != len(filesB) {
		t.Fatalf("file count differs: %d vs %d", len(filesA), len(filesB))
	}
	for rel, body := range filesA {
		if filesB[rel] != body {
			t.Fatalf("%s differs between renders", rel)
		}
	}
}

func TestRenderCreateConflictWritesNothing(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, "pato")
	root := t.TempDir()

	conflict := filepath.Join(root, "src", "ontology", "Makefile")
	if err := os.MkdirAll(filepath.Dir(conflict), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(conflict, []byte("precious\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewEngine().Render(cfg, root, ModeCreate)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if got := readFile(t, conflict); got != "precious\n" {
		t.Fatalf("colliding file was touched: %q", got)
	}
	if _, err := os.Stat(filepath.Join(root, "README.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("conflict detection should precede all writes")
	}
}

func TestRenderUpdatePolicies(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, "pato", "ro")
	root := t.TempDir()
	engine := NewEngine()

	if _, err := engine.Render(cfg, root, ModeCreate); err != nil {
		t.Fatalf("initial render: %v", err)
	}

	editFile := filepath.Join(root, "src/ontology/my-ont-edit.owl")
	if err := os.WriteFile(editFile, []byte("hand-edited ontology\n"), 0o644); err != nil {
		t.Fatalf("edit: %v", err)
	}
	makefile := filepath.Join(root, "src/ontology/Makefile")
	if err := os.WriteFile(makefile, []byte("local change\n"), 0o644); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if _, err := engine.Render(cfg, root, ModeUpdate); err != nil {
		t.Fatalf("update render: %v", err)
	}

	if got := readFile(t, editFile); got != "hand-edited ontology\n" {
		t.Fatalf("if-missing file was overwritten: %q", got)
	}
	if got := readFile(t, makefile); got == "local change\n" {
		t.Fatalf("overwrite-always file was not re-rendered")
	}
}

func TestRenderUpdateIsIdempotent(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, "pato", "ro")
	root := t.TempDir()
	engine := NewEngine()

	if _, err := engine.Render(cfg, root, ModeCreate); err != nil {
		t.Fatalf("initial render: %v", err)
	}
	if _, err := engine.Render(cfg, root, ModeUpdate); err != nil {
		t.Fatalf("first update: %v", err)
	}
	before := snapshot(t, root)
	if _, err := engine.Render(cfg, root, ModeUpdate); err != nil {
		t.Fatalf("second update: %v", err)
	}
	after := snapshot(t, root)
	for rel, body := range before {
		if after[rel] != body {
			t.Fatalf("%s changed on a no-op update", rel)
		}
	}
}

func TestRenderUpdateExtendsImports(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	engine := NewEngine()

	if _, err := engine.Render(testConfig(t, "pato", "ro"), root, ModeCreate); err != nil {
		t.Fatalf("initial render: %v", err)
	}

	patoTerms := filepath.Join(root, "src/ontology/imports/pato_terms.txt")
	if err := os.WriteFile(patoTerms, []byte("PATO:0000001\n"), 0o644); err != nil {
		t.Fatalf("edit terms: %v", err)
	}

	if _, err := engine.Render(testConfig(t, "pato", "ro", "cl"), root, ModeUpdate); err != nil {
		t.Fatalf("update render: %v", err)
	}

	makefile := readFile(t, filepath.Join(root, "src/ontology/Makefile"))
	if !strings.Contains(makefile, "imports/cl_import.owl") {
		t.Fatalf("makefile not extended with new import")
	}
	if _, err := os.Stat(filepath.Join(root, "src/ontology/imports/cl_terms.txt")); err != nil {
		t.Fatalf("terms file for new import missing: %v", err)
	}
	if got := readFile(t, patoTerms); got != "PATO:0000001\n" {
		t.Fatalf("hand-edited terms file was overwritten: %q", got)
	}
}

func TestWorkflowTogglesGateCIFiles(t *testing.T) {
	testlog.Start(t)
	cfg, err := config.Load("", config.Overrides{ID: "my-ont"})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Workflows = []string{"docs"}
	root := t.TempDir()

	if _, err := NewEngine().Render(cfg, root, ModeCreate); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".github/workflows/qc.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("qc workflow rendered despite toggle off")
	}
	if _, err := os.Stat(filepath.Join(root, ".github/workflows/docs.yml")); err != nil {
		t.Fatalf("docs workflow missing: %v", err)
	}
}

func TestEditFileFormatFollowsConfig(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, "pato")
	cfg.EditFormat = "obo"
	root := t.TempDir()

	if _, err := NewEngine().Render(cfg, root, ModeCreate); err != nil {
		t.Fatalf("render: %v", err)
	}
	body := readFile(t, filepath.Join(root, "src/ontology/my-ont-edit.obo"))
	if !strings.Contains(body, "format-version: 1.2") {
		t.Fatalf("obo stub not rendered: %q", body)
	}
}
