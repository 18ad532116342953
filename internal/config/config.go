package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	knownCI        = []string{"github_actions", "gitlab-ci"}
	knownWorkflows = []string{"docs", "qc", "diff", "release-diff"}
	knownFormats   = []string{"owl", "obo", "json", "ttl"}
)

// ImportProduct is one term source the generated workflows pull modules from.
type ImportProduct struct {
	ID      string
	BaseIRI string
}

// ProjectConfig is the validated, normalized description of one ontology
// project. Immutable once returned by Load; owned by a single seeding run.
type ProjectConfig struct {
	ID            string
	Title         string
	Description   string
	License       string
	EditFormat    string
	GithubOrg     string
	Repo          string
	GitMainBranch string
	URIBase       string
	OutDir        string

	Imports       []ImportProduct
	CI            []string
	Workflows     []string
	ExportFormats []string

	UseDosdps                bool
	UseTemplates             bool
	ManageImportDeclarations bool
	ExportProjectConfig      bool

	// ConfigHash is the sha256 of the raw configuration file, empty on the
	// no-config path. Recorded in generated files so a checkout can be
	// matched to the configuration that produced it.
	ConfigHash string
}

// Overrides carries command-line values that take precedence over the
// configuration file, field by field.
type Overrides struct {
	ID      string
	Title   string
	Org     string
	Repo    string
	OutDir  string
	Imports []string
}

// fileConfig is the accepted surface of the configuration document. Any key
// outside this struct is rejected.
type fileConfig struct {
	ID            string   `toml:"id"`
	Title         string   `toml:"title"`
	Description   string   `toml:"description"`
	License       string   `toml:"license"`
	EditFormat    string   `toml:"edit_format"`
	GithubOrg     string   `toml:"github_org"`
	Repo          string   `toml:"repo"`
	GitMainBranch string   `toml:"git_main_branch"`
	URIBase       string   `toml:"uribase"`
	OutDir        string   `toml:"outdir"`
	Imports       []string `toml:"imports"`
	CI            []string `toml:"ci"`
	Workflows     []string `toml:"workflows"`
	ExportFormats []string `toml:"export_formats"`

	UseDosdps                bool `toml:"use_dosdps"`
	UseTemplates             bool `toml:"use_templates"`
	ManageImportDeclarations bool `toml:"manage_import_declarations"`
	ExportProjectConfig      bool `toml:"export_project_config"`
}

func defaultConfig() ProjectConfig {
	return ProjectConfig{
		EditFormat:               "owl",
		License:                  "https://creativecommons.org/licenses/by/4.0/",
		GitMainBranch:            "main",
		URIBase:                  "http://purl.obolibrary.org/obo",
		CI:                       []string{"github_actions"},
		Workflows:                []string{"docs", "qc"},
		ExportFormats:            []string{"owl", "obo"},
		ManageImportDeclarations: true,
	}
}

// Load parses the configuration file at path, applies command-line overrides
// on top of it and validates the result. An empty path is the no-config
// seeding path and requires at least ov.ID. Load reads the file and nothing
// else; it never mutates the filesystem.
func Load(path string, ov Overrides) (*ProjectConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
		}
		sum := sha256.Sum256(data)
		cfg.ConfigHash = hex.EncodeToString(sum[:])

		var raw fileConfig
		meta, err := toml.Decode(string(data), &raw)
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, fmt.Errorf("%w: unknown keys in %s: %s",
				ErrInvalidConfig, path, strings.Join(keys, ", "))
		}
		applyFile(&cfg, raw, meta)
	}

	applyOverrides(&cfg, ov)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	deriveFields(&cfg)
	return &cfg, nil
}

func applyFile(cfg *ProjectConfig, raw fileConfig, meta toml.MetaData) {
	if meta.IsDefined("id") {
		cfg.ID = strings.TrimSpace(raw.ID)
	}
	if meta.IsDefined("title") {
		cfg.Title = raw.Title
	}
	if meta.IsDefined("description") {
		cfg.Description = raw.Description
	}
	if meta.IsDefined("license") {
		cfg.License = strings.TrimSpace(raw.License)
	}
	if meta.IsDefined("edit_format") {
		cfg.EditFormat = strings.TrimSpace(raw.EditFormat)
	}
	if meta.IsDefined("github_org") {
		cfg.GithubOrg = strings.TrimSpace(raw.GithubOrg)
	}
	if meta.IsDefined("repo") {
		cfg.Repo = strings.TrimSpace(raw.Repo)
	}
	if meta.IsDefined("git_main_branch") {
		cfg.GitMainBranch = strings.TrimSpace(raw.GitMainBranch)
	}
	if meta.IsDefined("uribase") {
		cfg.URIBase = strings.TrimRight(strings.TrimSpace(raw.URIBase), "/")
	}
	if meta.IsDefined("outdir") {
		cfg.OutDir = strings.TrimSpace(raw.OutDir)
	}
	if meta.IsDefined("imports") {
		cfg.Imports = stubImports(raw.Imports)
	}
	if meta.IsDefined("ci") {
		cfg.CI = raw.CI
	}
	if meta.IsDefined("workflows") {
		cfg.Workflows = raw.Workflows
	}
	if meta.IsDefined("export_formats") {
		cfg.ExportFormats = raw.ExportFormats
	}
	if meta.IsDefined("use_dosdps") {
		cfg.UseDosdps = raw.UseDosdps
	}
	if meta.IsDefined("use_templates") {
		cfg.UseTemplates = raw.UseTemplates
	}
	if meta.IsDefined("manage_import_declarations") {
		cfg.ManageImportDeclarations = raw.ManageImportDeclarations
	}
	if meta.IsDefined("export_project_config") {
		cfg.ExportProjectConfig = raw.ExportProjectConfig
	}
}

func applyOverrides(cfg *ProjectConfig, ov Overrides) {
	if v := strings.TrimSpace(ov.ID); v != "" {
		cfg.ID = v
	}
	if v := strings.TrimSpace(ov.Title); v != "" {
		cfg.Title = v
	}
	if v := strings.TrimSpace(ov.Org); v != "" {
		cfg.GithubOrg = v
	}
	if v := strings.TrimSpace(ov.Repo); v != "" {
		cfg.Repo = v
	}
	if v := strings.TrimSpace(ov.OutDir); v != "" {
		cfg.OutDir = v
	}
	if len(ov.Imports) > 0 {
		cfg.Imports = append(cfg.Imports, stubImports(ov.Imports)...)
	}
}

func stubImports(ids []string) []ImportProduct {
	out := make([]ImportProduct, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		out = append(out, ImportProduct{ID: id})
	}
	return out
}

func validate(cfg *ProjectConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("%w: missing project id", ErrInvalidConfig)
	}
	if !idPattern.MatchString(cfg.ID) {
		return fmt.Errorf("%w: invalid project id %q", ErrInvalidConfig, cfg.ID)
	}
	if cfg.EditFormat != "owl" && cfg.EditFormat != "obo" {
		return fmt.Errorf("%w: edit_format must be owl or obo, got %q",
			ErrInvalidConfig, cfg.EditFormat)
	}
	seen := make(map[string]struct{}, len(cfg.Imports))
	for _, imp := range cfg.Imports {
		if !idPattern.MatchString(imp.ID) {
			return fmt.Errorf("%w: invalid import id %q", ErrInvalidConfig, imp.ID)
		}
		if _, dup := seen[imp.ID]; dup {
			return fmt.Errorf("%w: duplicate import %q", ErrInvalidConfig, imp.ID)
		}
		seen[imp.ID] = struct{}{}
	}
	if err := checkMembers("ci", cfg.CI, knownCI); err != nil {
		return err
	}
	if err := checkMembers("workflows", cfg.Workflows, knownWorkflows); err != nil {
		return err
	}
	if err := checkMembers("export_formats", cfg.ExportFormats, knownFormats); err != nil {
		return err
	}
	return nil
}

func checkMembers(key string, values []string, known []string) error {
	for _, v := range values {
		ok := false
		for _, k := range known {
			if v == k {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: unknown %s value %q (supported: %s)",
				ErrInvalidConfig, key, v, strings.Join(known, ", "))
		}
	}
	return nil
}

func deriveFields(cfg *ProjectConfig) {
	if cfg.Repo == "" {
		cfg.Repo = cfg.ID
	}
	if cfg.Title == "" {
		cfg.Title = cfg.ID
	}
	for i := range cfg.Imports {
		if cfg.Imports[i].BaseIRI == "" {
			cfg.Imports[i].BaseIRI = cfg.URIBase + "/" + strings.ToUpper(cfg.Imports[i].ID)
		}
	}
}

// HasWorkflow reports whether a workflow feature is enabled.
func (c *ProjectConfig) HasWorkflow(name string) bool {
	for _, w := range c.Workflows {
		if w == name {
			return true
		}
	}
	return false
}

// HasCI reports whether a CI system is enabled.
func (c *ProjectConfig) HasCI(name string) bool {
	for _, ci := range c.CI {
		if ci == name {
			return true
		}
	}
	return false
}
