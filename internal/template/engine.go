package template

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/rs/zerolog/log"

	"github.com/incatools/odkctl/internal/config"
)

var (
	ErrRender   = errors.New("template: render failed")
	ErrConflict = errors.New("template: destination already exists")
)

type Mode int

const (
	// ModeCreate renders every catalog entry into a fresh tree; a
	// pre-existing destination is a fatal conflict.
	ModeCreate Mode = iota
	// ModeUpdate merges into an existing tree according to each entry's
	// policy, preserving user edits on if-missing files.
	ModeUpdate
)

// Context is the substitution context every template is rendered against.
type Context struct {
	Project *config.ProjectConfig
	// Import is set only for per-import specs.
	Import         *config.ImportProduct
	CatalogVersion string
}

// RenderedFile is one file written by a rendering run, tagged with the
// catalog entry that produced it.
type RenderedFile struct {
	Path   string
	Source string
}

// RenderedTree is the set of files written by one run. Diagnostic only;
// discarded after the run.
type RenderedTree struct {
	Root  string
	Files []RenderedFile
}

var funcs = texttemplate.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// Engine renders the template catalog against a project configuration.
type Engine struct {
	specs []Spec
}

func NewEngine() *Engine {
	return &Engine{specs: Catalog()}
}

type job struct {
	spec Spec
	rel  string
	ctx  Context
}

// Render writes the catalog into root. Rendering is deterministic: the same
// configuration and catalog version produce byte-identical output. In create
// mode all destinations are checked before the first write, so a conflict
// leaves the target untouched.
func (e *Engine) Render(cfg *config.ProjectConfig, root string, mode Mode) (*RenderedTree, error) {
	jobs, err := e.expand(cfg)
	if err != nil {
		return nil, err
	}

	if mode == ModeCreate {
		for _, j := range jobs {
			dest := filepath.Join(root, j.rel)
			if _, err := os.Stat(dest); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrConflict, dest)
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: stat %s: %v", ErrRender, dest, err)
			}
		}
	}

	tree := &RenderedTree{Root: root}
	for _, j := range jobs {
		dest := filepath.Join(root, j.rel)
		if mode == ModeUpdate && j.spec.Policy == PolicyIfMissing {
			if _, err := os.Stat(dest); err == nil {
				log.Debug().Str("path", j.rel).Msg("template: exists, skipped")
				continue
			}
		}

		body, err := render(j.spec.Source, j.spec.Body, j.ctx)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		if err := os.WriteFile(dest, body, j.spec.fileMode()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
		log.Info().Str("path", j.rel).Str("source", j.spec.Source).Msg("template: rendered")
		tree.Files = append(tree.Files, RenderedFile{Path: j.rel, Source: j.spec.Source})
	}
	return tree, nil
}

// expand turns the catalog into the concrete list of files to render for
// this configuration, in catalog order with per-import entries expanded in
// import order.
func (e *Engine) expand(cfg *config.ProjectConfig) ([]job, error) {
	var jobs []job
	for _, spec := range e.specs {
		if spec.When != nil && !spec.When(cfg) {
			continue
		}
		if spec.PerImport {
			for i := range cfg.Imports {
				ctx := Context{Project: cfg, Import: &cfg.Imports[i], CatalogVersion: Version}
				rel, err := renderPath(spec, ctx)
				if err != nil {
					return nil, err
				}
				jobs = append(jobs, job{spec: spec, rel: rel, ctx: ctx})
			}
			continue
		}
		ctx := Context{Project: cfg, CatalogVersion: Version}
		rel, err := renderPath(spec, ctx)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{spec: spec, rel: rel, ctx: ctx})
	}
	return jobs, nil
}

func renderPath(spec Spec, ctx Context) (string, error) {
	out, err := render(spec.Source+":path", spec.Path, ctx)
	if err != nil {
		return "", err
	}
	rel := filepath.Clean(string(out))
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: path %q escapes target root", ErrRender, rel)
	}
	return rel, nil
}

func render(name string, body string, ctx Context) ([]byte, error) {
	tmpl, err := texttemplate.New(name).Funcs(funcs).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRender, name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRender, name, err)
	}
	return buf.Bytes(), nil
}
