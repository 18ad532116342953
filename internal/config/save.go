package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Save writes the normalized configuration back out as TOML. Used on the
// no-config seeding path so the rendered tree still carries a configuration
// file that can drive later updates.
func Save(cfg *ProjectConfig, path string) error {
	raw := fileConfig{
		ID:                       cfg.ID,
		Title:                    cfg.Title,
		Description:              cfg.Description,
		License:                  cfg.License,
		EditFormat:               cfg.EditFormat,
		GithubOrg:                cfg.GithubOrg,
		Repo:                     cfg.Repo,
		GitMainBranch:            cfg.GitMainBranch,
		URIBase:                  cfg.URIBase,
		CI:                       cfg.CI,
		Workflows:                cfg.Workflows,
		ExportFormats:            cfg.ExportFormats,
		UseDosdps:                cfg.UseDosdps,
		UseTemplates:             cfg.UseTemplates,
		ManageImportDeclarations: cfg.ManageImportDeclarations,
		ExportProjectConfig:      cfg.ExportProjectConfig,
	}
	for _, imp := range cfg.Imports {
		raw.Imports = append(raw.Imports, imp.ID)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
