// Package provision builds a native environment: a self-contained directory
// of external tool binaries, ROBOT plugins and resources, plus an activation
// script a shell can source.
package provision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/incatools/odkctl/internal/catalog"
	"github.com/incatools/odkctl/internal/platform"
)

var (
	ErrDownload  = errors.New("provision: download failed")
	ErrIntegrity = errors.New("provision: integrity check failed")
)

// ActivationScript is the file a shell sources to use the environment.
const ActivationScript = "activate-odk-environment.sh"

// Environment is the on-disk result of one install run.
type Environment struct {
	Root         string
	BinDir       string
	ToolsDir     string
	ResourcesDir string
	PluginsDir   string
	// Activation is the path of the generated activation script.
	Activation string
	// Installed lists the catalog entries installed, in catalog order.
	Installed []string
}

func newEnvironment(root string) *Environment {
	resources := filepath.Join(root, "resources")
	return &Environment{
		Root:         root,
		BinDir:       filepath.Join(root, "bin"),
		ToolsDir:     filepath.Join(root, "tools"),
		ResourcesDir: resources,
		PluginsDir:   filepath.Join(resources, "robot", "plugins"),
	}
}

// Provisioner downloads, verifies and lays out tool artifacts.
type Provisioner struct {
	client *http.Client
}

func NewProvisioner(client *http.Client) *Provisioner {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Provisioner{client: client}
}

// Install provisions every catalog entry for the given platform under
// targetDir, sequentially. The first failing entry aborts the run with that
// entry named; the activation script is written only after every entry has
// succeeded, so a partially populated directory is never activatable.
// Re-running on a populated target re-installs every artifact in place and
// is idempotent.
func (p *Provisioner) Install(ctx context.Context, targetDir string, cat *catalog.Catalog, plat platform.ID) (*Environment, error) {
	root, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, err
	}
	env := newEnvironment(root)
	for _, dir := range []string{env.BinDir, env.ToolsDir, env.PluginsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	for _, entry := range cat.Tools {
		if err := p.installEntry(ctx, env, entry, plat); err != nil {
			return nil, fmt.Errorf("tool %q: %w", entry.Name, err)
		}
		env.Installed = append(env.Installed, entry.Name)
	}

	if err := writeActivationScript(env); err != nil {
		return nil, err
	}
	log.Info().Str("root", env.Root).Int("tools", len(env.Installed)).
		Str("catalog", cat.Version).Msg("provision: environment ready")
	return env, nil
}

func (p *Provisioner) installEntry(ctx context.Context, env *Environment, entry catalog.Entry, plat platform.ID) error {
	art, err := entry.ArtifactFor(plat)
	if err != nil {
		return err
	}
	log.Info().Str("tool", entry.Name).Str("version", entry.Version).
		Str("url", art.URL).Msg("provision: installing")

	data, err := p.download(ctx, art.URL)
	if err != nil {
		return err
	}
	if err := verifyDigest(data, art.SHA256); err != nil {
		return err
	}

	switch entry.Kind {
	case catalog.KindJar:
		return installJar(env, entry, data)
	case catalog.KindArchive:
		return installArchive(env, entry, data)
	case catalog.KindPlugin:
		path := filepath.Join(env.PluginsDir, entry.Name+".jar")
		return os.WriteFile(path, data, 0o644)
	case catalog.KindResource:
		path := filepath.Join(env.ResourcesDir, entry.Name)
		return os.WriteFile(path, data, 0o644)
	default:
		return fmt.Errorf("%w: unknown kind %q", catalog.ErrInvalidCatalog, entry.Kind)
	}
}

func verifyDigest(data []byte, want string) error {
	sum := sha256.Sum256(data)
	got := hex.EncodeToString(sum[:])
	if got != strings.ToLower(want) {
		return fmt.Errorf("%w: sha256 mismatch, want %s got %s", ErrIntegrity, want, got)
	}
	return nil
}

func installJar(env *Environment, entry catalog.Entry, data []byte) error {
	jar := filepath.Join(env.ToolsDir, entry.Name+".jar")
	if err := os.WriteFile(jar, data, 0o644); err != nil {
		return err
	}
	return writeLauncher(env, entry.Name, fmt.Sprintf("exec java -jar %s \"$@\"\n", jar))
}

func installArchive(env *Environment, entry catalog.Entry, data []byte) error {
	libDir := filepath.Join(env.ToolsDir, entry.Name)
	jars, err := extractJars(data, libDir)
	if err != nil {
		return err
	}
	if len(jars) == 0 {
		return fmt.Errorf("%w: archive for %q contains no jars", ErrIntegrity, entry.Name)
	}
	classpath := strings.Join(jars, ":")
	return writeLauncher(env, entry.Name,
		fmt.Sprintf("exec java -cp %s %s \"$@\"\n", classpath, entry.MainClass))
}

func writeLauncher(env *Environment, name string, command string) error {
	launcher := filepath.Join(env.BinDir, name)
	return os.WriteFile(launcher, []byte("#!/bin/sh\n"+command), 0o755)
}

func writeActivationScript(env *Environment) error {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "PATH=%s:$PATH\n", env.BinDir)
	fmt.Fprintf(&b, "ODK_RESOURCES_DIR=%s\n", env.ResourcesDir)
	fmt.Fprintf(&b, "ROBOT_PLUGINS_DIRECTORY=%s\n", env.PluginsDir)
	b.WriteString("export PATH\n")
	b.WriteString("export ODK_RESOURCES_DIR\n")
	b.WriteString("export ROBOT_PLUGINS_DIRECTORY\n")

	env.Activation = filepath.Join(env.BinDir, ActivationScript)
	return os.WriteFile(env.Activation, []byte(b.String()), 0o644)
}
