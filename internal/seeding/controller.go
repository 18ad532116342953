// Package seeding orchestrates the creation and update of ontology project
// repositories: configuration, template rendering, git bootstrap and the
// optional first build of the generated workflow.
package seeding

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/incatools/odkctl/internal/config"
	"github.com/incatools/odkctl/internal/template"
	"github.com/incatools/odkctl/internal/tools"
)

var ErrSeeding = errors.New("seeding: operation failed")

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Options controls one seeding run.
type Options struct {
	Mode       Mode
	TargetRoot string
	// ConfigPath is the configuration file the run was loaded from; when
	// set it is copied verbatim into the rendered tree, otherwise the
	// normalized configuration is exported there.
	ConfigPath string
	SkipGit    bool
	// SkipFirstBuild skips invoking the generated build workflow after
	// rendering. This is the default in test and CI contexts, which do
	// not carry the external toolchain.
	SkipFirstBuild bool
	GitName        string
	GitEmail       string
	// Runner defaults to local execution.
	Runner tools.CommandRunner
}

// Result reports what one seeding run produced.
type Result struct {
	TargetRoot string
	Rendered   *template.RenderedTree
}

type Controller struct {
	engine *template.Engine
}

func NewController() *Controller {
	return &Controller{engine: template.NewEngine()}
}

// Seed renders the template catalog for cfg into the target root and runs
// the optional git and first-build side effects. Failures after rendering
// leave the tree on disk as rendered, so the user can inspect and fix.
func (c *Controller) Seed(ctx context.Context, cfg *config.ProjectConfig, opts Options) (*Result, error) {
	runner := opts.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	root := opts.TargetRoot
	if root == "" {
		root = cfg.OutDir
	}
	if root == "" {
		root = filepath.Join("target", cfg.ID)
	}

	gitName, gitEmail, err := gitIdentity(opts)
	if err != nil {
		return nil, err
	}

	switch opts.Mode {
	case ModeCreate:
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSeeding, err)
		}
	case ModeUpdate:
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("%w: update target %s does not exist", ErrSeeding, root)
		}
		if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
			return nil, fmt.Errorf("%w: update target %s is not a git checkout", ErrSeeding, root)
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrSeeding, opts.Mode)
	}

	tree, err := c.engine.Render(cfg, root, renderMode(opts.Mode))
	if err != nil {
		if errors.Is(err, template.ErrConflict) {
			return nil, fmt.Errorf("%w: %v", ErrSeeding, err)
		}
		return nil, err
	}

	if err := writeConfigCopy(cfg, opts.ConfigPath, root, tree); err != nil {
		return nil, err
	}

	result := &Result{TargetRoot: root, Rendered: tree}

	if opts.Mode == ModeCreate && !opts.SkipGit {
		if err := c.initRepository(ctx, runner, root, cfg, gitName, gitEmail); err != nil {
			return result, err
		}
	}
	if !opts.SkipFirstBuild {
		if err := c.firstBuild(ctx, runner, root, opts); err != nil {
			return result, err
		}
	}

	log.Info().Str("root", root).Int("files", len(tree.Files)).Msg("seeding: done")
	return result, nil
}

func renderMode(m Mode) template.Mode {
	if m == ModeUpdate {
		return template.ModeUpdate
	}
	return template.ModeCreate
}

// gitIdentity resolves the commit identity before any filesystem mutation,
// falling back to the conventional environment variables.
func gitIdentity(opts Options) (string, string, error) {
	if opts.SkipGit {
		return "", "", nil
	}
	name := opts.GitName
	if name == "" {
		name = os.Getenv("GIT_AUTHOR_NAME")
	}
	email := opts.GitEmail
	if email == "" {
		email = os.Getenv("GIT_AUTHOR_EMAIL")
	}
	if opts.Mode == ModeCreate {
		if name == "" {
			return "", "", fmt.Errorf("%w: missing git username; set GIT_AUTHOR_NAME or use --gitname", ErrSeeding)
		}
		if email == "" {
			return "", "", fmt.Errorf("%w: missing git email; set GIT_AUTHOR_EMAIL or use --gitemail", ErrSeeding)
		}
	}
	return name, email, nil
}

// writeConfigCopy places the project configuration inside the rendered tree
// so the checkout can drive later updates. The source file is copied
// verbatim, unless export_project_config asks for the normalized form.
// Always overwritten: the copy is a catalog-managed file.
func writeConfigCopy(cfg *config.ProjectConfig, configPath string, root string, tree *template.RenderedTree) error {
	rel := filepath.Join("src", "ontology", cfg.ID+"-odk.toml")
	dest := filepath.Join(root, rel)
	if configPath != "" && !cfg.ExportProjectConfig {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSeeding, err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("%w: %v", ErrSeeding, err)
		}
	} else {
		if err := config.Save(cfg, dest); err != nil {
			return fmt.Errorf("%w: %v", ErrSeeding, err)
		}
	}
	tree.Files = append(tree.Files, template.RenderedFile{Path: rel, Source: "project-config"})
	return nil
}

func (c *Controller) initRepository(ctx context.Context, runner tools.CommandRunner, root string, cfg *config.ProjectConfig, name string, email string) error {
	steps := [][]string{
		{"git", "init", "-b", cfg.GitMainBranch},
		{"git", "config", "user.name", name},
		{"git", "config", "user.email", email},
		{"git", "add", "-A"},
		{"git", "commit", "-m", "initial commit"},
	}
	for _, step := range steps {
		if err := runCommand(ctx, runner, root, step[0], step[1:]...); err != nil {
			return err
		}
	}
	return nil
}

// firstBuild runs the generated workflow once and, when git is in play,
// commits whatever assets the build produced.
func (c *Controller) firstBuild(ctx context.Context, runner tools.CommandRunner, root string, opts Options) error {
	ontDir := filepath.Join(root, "src", "ontology")
	if err := runCommand(ctx, runner, ontDir, "make", "all_assets", "copy_release_files"); err != nil {
		return err
	}
	if opts.Mode != ModeCreate || opts.SkipGit {
		return nil
	}
	status, _, _, err := runner.Run(ctx, root, "git", "status", "--porcelain")
	if err != nil {
		return wrapCommandError("git status --porcelain", nil, nil, 1, err)
	}
	if len(strings.TrimSpace(string(status))) == 0 {
		return nil
	}
	return runCommand(ctx, runner, root, "git", "commit", "-a", "-m", "initial build")
}

func runCommand(ctx context.Context, runner tools.CommandRunner, dir string, name string, args ...string) error {
	log.Info().Str("cmd", name).Str("args", strings.Join(args, " ")).Str("dir", dir).Msg("seeding: exec")
	stdout, stderr, exitCode, err := runner.Run(ctx, dir, name, args...)
	if err == nil {
		return nil
	}
	return wrapCommandError(name+" "+strings.Join(args, " "), stdout, stderr, exitCode, err)
}

func wrapCommandError(cmd string, stdout []byte, stderr []byte, exitCode int32, err error) error {
	return fmt.Errorf(
		"%w: command failed cmd=%q exit=%d stdout=%q stderr=%q: %v",
		ErrSeeding,
		cmd,
		exitCode,
		strings.TrimSpace(string(stdout)),
		strings.TrimSpace(string(stderr)),
		err,
	)
}
