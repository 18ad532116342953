// Package catalog holds the manifest of external tools a native environment
// is built from. The manifest is a versioned data table keyed by tool and
// platform; adding a tool or platform is a data change, not a code change.
package catalog

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/incatools/odkctl/internal/platform"
)

var ErrInvalidCatalog = errors.New("catalog: invalid manifest")

type Kind string

const (
	// KindJar is a self-contained executable jar, installed under tools/
	// with a launcher in bin/.
	KindJar Kind = "jar"
	// KindArchive is a tarball of jars, extracted under tools/<name>/
	// with a classpath launcher in bin/.
	KindArchive Kind = "archive"
	// KindPlugin is a ROBOT plugin jar, installed under the plugins
	// directory.
	KindPlugin Kind = "plugin"
	// KindResource is a plain data file, installed under resources/.
	KindResource Kind = "resource"
)

// Artifact is one downloadable binary for one platform.
type Artifact struct {
	URL    string `toml:"url"`
	SHA256 string `toml:"sha256"`
}

// Entry describes one tool: what it is, which version, and where to get it
// for each supported platform.
type Entry struct {
	Name      string              `toml:"name"`
	Version   string              `toml:"version"`
	Kind      Kind                `toml:"kind"`
	MainClass string              `toml:"main_class"`
	Artifacts map[string]Artifact `toml:"artifacts"`
}

// Catalog is the parsed, validated manifest.
type Catalog struct {
	Version string  `toml:"version"`
	Tools   []Entry `toml:"tools"`
}

var digestPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Load parses and validates the built-in manifest. Every entry must define
// an artifact for every supported platform; a gap fails here rather than
// being silently skipped at install time.
func Load() (*Catalog, error) {
	return Parse(defaultManifest)
}

// Parse decodes a manifest document and validates it.
func Parse(doc string) (*Catalog, error) {
	var cat Catalog
	meta, err := toml.Decode(doc, &cat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrInvalidCatalog, undecoded[0].String())
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	if c.Version == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidCatalog)
	}
	if len(c.Tools) == 0 {
		return fmt.Errorf("%w: no tools declared", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(c.Tools))
	for _, entry := range c.Tools {
		if entry.Name == "" {
			return fmt.Errorf("%w: entry without name", ErrInvalidCatalog)
		}
		if _, dup := seen[entry.Name]; dup {
			return fmt.Errorf("%w: duplicate tool %q", ErrInvalidCatalog, entry.Name)
		}
		seen[entry.Name] = struct{}{}
		if entry.Version == "" {
			return fmt.Errorf("%w: tool %q missing version", ErrInvalidCatalog, entry.Name)
		}
		switch entry.Kind {
		case KindJar, KindPlugin, KindResource:
		case KindArchive:
			if entry.MainClass == "" {
				return fmt.Errorf("%w: tool %q needs main_class", ErrInvalidCatalog, entry.Name)
			}
		default:
			return fmt.Errorf("%w: tool %q has unknown kind %q", ErrInvalidCatalog, entry.Name, entry.Kind)
		}
		for _, plat := range platform.All() {
			art, ok := entry.Artifacts[string(plat)]
			if !ok {
				return fmt.Errorf("%w: tool %q has no artifact for %s", ErrInvalidCatalog, entry.Name, plat)
			}
			if art.URL == "" {
				return fmt.Errorf("%w: tool %q artifact for %s has no url", ErrInvalidCatalog, entry.Name, plat)
			}
			if !digestPattern.MatchString(art.SHA256) {
				return fmt.Errorf("%w: tool %q artifact for %s has malformed sha256", ErrInvalidCatalog, entry.Name, plat)
			}
		}
	}
	return nil
}

// ArtifactFor returns the artifact descriptor for a platform. Validation
// guarantees presence for catalog-loaded entries; the error covers
// hand-built entries in tests.
func (e Entry) ArtifactFor(plat platform.ID) (Artifact, error) {
	art, ok := e.Artifacts[string(plat)]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: tool %q has no artifact for %s", ErrInvalidCatalog, e.Name, plat)
	}
	return art, nil
}
