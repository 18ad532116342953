package template

import (
	"io/fs"

	"github.com/incatools/odkctl/internal/config"
)

// Version identifies the template catalog. It is stamped into generated
// files so version-control diffs can be traced to a catalog change.
const Version = "0.3.0"

type Policy int

const (
	// PolicyAlways re-renders the file on every run, replacing any
	// existing copy. Reserved for files fully managed by the catalog.
	PolicyAlways Policy = iota
	// PolicyIfMissing renders the file only when it does not already
	// exist, preserving user edits on update.
	PolicyIfMissing
)

// Spec is one entry of the template catalog: a relative destination path
// (itself a template), the body to render and the update policy.
type Spec struct {
	// Path is the destination relative to the target root, rendered
	// against the same context as the body.
	Path string
	// Source names the entry in logs and RenderedTree tags.
	Source string
	Body   string
	Policy Policy
	// PerImport expands the spec once per configured import.
	PerImport bool
	// When gates the spec on config toggles; nil means always included.
	When func(*config.ProjectConfig) bool
	// Mode is the file mode of the rendered file; zero means 0644.
	Mode fs.FileMode
}

func (s Spec) fileMode() fs.FileMode {
	if s.Mode == 0 {
		return 0o644
	}
	return s.Mode
}

// Catalog is the fixed template catalog, loaded once per process. Order is
// part of the contract: rendering walks it front to back.
func Catalog() []Spec {
	return catalog
}

var catalog = []Spec{
	{
		Path:   "src/ontology/Makefile",
		Source: "makefile",
		Body:   makefileTemplate,
		Policy: PolicyAlways,
	},
	{
		Path:   "src/ontology/run.sh",
		Source: "run-script",
		Body:   runScriptTemplate,
		Policy: PolicyAlways,
		Mode:   0o755,
	},
	{
		Path:   "LICENSE",
		Source: "license",
		Body:   licenseTemplate,
		Policy: PolicyAlways,
	},
	{
		Path:   "src/ontology/{{ .Project.ID }}-edit.{{ .Project.EditFormat }}",
		Source: "edit-file",
		Body:   editFileTemplate,
		Policy: PolicyIfMissing,
	},
	{
		Path:   "src/ontology/catalog-v001.xml",
		Source: "xml-catalog",
		Body:   xmlCatalogTemplate,
		Policy: PolicyIfMissing,
	},
	{
		Path:      "src/ontology/imports/{{ .Import.ID }}_terms.txt",
		Source:    "import-terms",
		Body:      importTermsTemplate,
		Policy:    PolicyIfMissing,
		PerImport: true,
	},
	{
		Path:   "src/sparql/{{ .Project.ID }}_terms.sparql",
		Source: "terms-query",
		Body:   termsQueryTemplate,
		Policy: PolicyAlways,
	},
	{
		Path:   "README.md",
		Source: "readme",
		Body:   readmeTemplate,
		Policy: PolicyIfMissing,
	},
	{
		Path:   ".gitignore",
		Source: "gitignore",
		Body:   gitignoreTemplate,
		Policy: PolicyIfMissing,
	},
	{
		Path:   ".github/workflows/qc.yml",
		Source: "ci-qc",
		Body:   ciQCTemplate,
		Policy: PolicyAlways,
		When: func(c *config.ProjectConfig) bool {
			return c.HasCI("github_actions") && c.HasWorkflow("qc")
		},
	},
	{
		Path:   ".github/workflows/docs.yml",
		Source: "ci-docs",
		Body:   ciDocsTemplate,
		Policy: PolicyAlways,
		When: func(c *config.ProjectConfig) bool {
			return c.HasCI("github_actions") && c.HasWorkflow("docs")
		},
	},
}

const makefileTemplate = `# Build orchestration for the {{ .Project.ID }} ontology.
# Generated from template catalog {{ .CatalogVersion }} -- DO NOT EDIT.
# Regenerate with: odkctl seed --update
{{- if .Project.ConfigHash }}
# Configuration: sha256 {{ .Project.ConfigHash }}
{{- end }}

ONT = {{ .Project.ID }}
EDIT_FORMAT = {{ .Project.EditFormat }}
SRC = $(ONT)-edit.$(EDIT_FORMAT)
CATALOG = catalog-v001.xml
URIBASE = {{ .Project.URIBase }}
MAIN_BRANCH = {{ .Project.GitMainBranch }}

ROBOT = robot --catalog $(CATALOG)

IMPORTS = {{ range $i, $imp := .Project.Imports }}{{ if $i }} {{ end }}{{ $imp.ID }}{{ end }}
IMPORT_FILES = $(patsubst %, imports/%_import.owl, $(IMPORTS))

RELEASE_ASSETS = {{ range $i, $fmt := .Project.ExportFormats }}{{ if $i }} {{ end }}$(ONT).{{ $fmt }}{{ end }}

.PHONY: all all_assets test clean copy_release_files show_release_assets

all: all_assets

all_assets: $(RELEASE_ASSETS)

$(ONT).owl: $(SRC) $(IMPORT_FILES)
	$(ROBOT) merge -i $< reason --reasoner ELK annotate --ontology-iri $(URIBASE)/$(ONT).owl -o $@

$(ONT).obo: $(ONT).owl
	$(ROBOT) convert -i $< --check false -f obo -o $@

$(ONT).json: $(ONT).owl
	$(ROBOT) convert -i $< -f json -o $@

$(ONT).ttl: $(ONT).owl
	$(ROBOT) convert -i $< -f ttl -o $@
{{ range .Project.Imports }}
imports/{{ .ID }}_import.owl: mirror/{{ .ID }}.owl imports/{{ .ID }}_terms.txt
	$(ROBOT) extract --method BOT -i $< --term-file imports/{{ .ID }}_terms.txt \
		annotate --ontology-iri $(URIBASE)/$(ONT)/imports/{{ .ID }}_import.owl -o $@

mirror/{{ .ID }}.owl:
	mkdir -p mirror && $(ROBOT) convert -I {{ .BaseIRI }}.owl -o $@
{{ end }}
{{- if .Project.UseDosdps }}
patterns: ../patterns/definitions.owl

../patterns/definitions.owl:
	dosdp-tools generate --obo-prefixes=true --outfile=$@
{{ end }}
{{- if .Project.UseTemplates }}
templates: components/$(ONT)-templates.owl

components/$(ONT)-templates.owl: ../templates/$(ONT).tsv
	mkdir -p components && $(ROBOT) template --input $(SRC) --template $< -o $@
{{ end }}
test: $(SRC)
	$(ROBOT) report -i $< --fail-on ERROR -o reports/$(ONT)-report.tsv

copy_release_files: all_assets
	mkdir -p ../../release && cp $(RELEASE_ASSETS) ../../release/

show_release_assets:
	@echo $(RELEASE_ASSETS)

clean:
	rm -f $(RELEASE_ASSETS) $(IMPORT_FILES)
`

const runScriptTemplate = `#!/bin/sh
# Wrapper for running {{ .Project.ID }} workflow targets inside the native
# environment. Generated from template catalog {{ .CatalogVersion }}.
set -e

if [ -n "$ODK_RESOURCES_DIR" ]; then
    ROBOT_PLUGINS_DIRECTORY="$ODK_RESOURCES_DIR/robot/plugins"
    export ROBOT_PLUGINS_DIRECTORY
fi

exec make "$@"
`

const licenseTemplate = `The {{ .Project.ID }} ontology is distributed under the terms of

    {{ .Project.License }}

See the URL above for the detailed conditions.
`

const editFileTemplate = `{{ if eq .Project.EditFormat "obo" -}}
format-version: 1.2
ontology: {{ .Project.ID }}

[Term]
id: {{ .Project.ID | upper }}:0000000
name: root node
{{- else -}}
Prefix(:=<{{ .Project.URIBase }}/{{ .Project.ID }}.owl#>)
Prefix(owl:=<http://www.w3.org/2002/07/owl#>)
Prefix(rdfs:=<http://www.w3.org/2000/01/rdf-schema#>)

Ontology(<{{ .Project.URIBase }}/{{ .Project.ID }}.owl>
{{- range .Project.Imports }}
Import(<{{ $.Project.URIBase }}/{{ $.Project.ID }}/imports/{{ .ID }}_import.owl>)
{{- end }}

Annotation(rdfs:label "{{ .Project.Title }}")
)
{{- end }}
`

const xmlCatalogTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<catalog prefer="public" xmlns="urn:oasis:names:tc:entity:xmlns:xml:catalog">
  <group id="odk-managed-catalog" prefer="public" xml:base="">
{{- range .Project.Imports }}
    <uri name="{{ $.Project.URIBase }}/{{ $.Project.ID }}/imports/{{ .ID }}_import.owl" uri="imports/{{ .ID }}_import.owl"/>
{{- end }}
  </group>
</catalog>
`

const importTermsTemplate = `# Terms to import from {{ .Import.ID }} ({{ .Import.BaseIRI }}).
# Add one term identifier per line; lines starting with # are ignored.
`

const termsQueryTemplate = `# Lists every term at home in the {{ .Project.ID }} namespace.
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>

SELECT ?term ?label WHERE {
  ?term rdfs:label ?label .
  FILTER(STRSTARTS(STR(?term), "{{ .Project.URIBase }}/{{ .Project.ID | upper }}_"))
}
ORDER BY ?term
`

const readmeTemplate = `# {{ .Project.Title }}

{{ if .Project.Description }}{{ .Project.Description }}{{ else }}An ontology repository for {{ .Project.ID }}.{{ end }}

## Versions

### Stable release versions

The latest version of the ontology can always be found at:

    {{ .Project.URIBase }}/{{ .Project.ID }}.owl

### Editors' version

Editors of this ontology should use the edit version,
[src/ontology/{{ .Project.ID }}-edit.{{ .Project.EditFormat }}](src/ontology/{{ .Project.ID }}-edit.{{ .Project.EditFormat }}).

## Contact

Please use this GitHub repository's [Issue tracker](https://github.com/{{ if .Project.GithubOrg }}{{ .Project.GithubOrg }}{{ else }}OWNER{{ end }}/{{ .Project.Repo }}/issues) to request new terms or report errors.
`

const gitignoreTemplate = `# Managed rules, template catalog {{ .CatalogVersion }}
*.tmp
*.log
release/
src/ontology/mirror/
src/ontology/reports/
src/ontology/{{ .Project.ID }}.owl
src/ontology/{{ .Project.ID }}.obo
`

const ciQCTemplate = `# Quality-control checks for {{ .Project.ID }}.
# Generated from template catalog {{ .CatalogVersion }} -- DO NOT EDIT.
name: QC

on:
  push:
    branches: [{{ .Project.GitMainBranch }}]
  pull_request:
    branches: [{{ .Project.GitMainBranch }}]

jobs:
  qc:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Run ontology QC checks
        run: cd src/ontology && ./run.sh test
`

const ciDocsTemplate = `# Documentation build for {{ .Project.ID }}.
# Generated from template catalog {{ .CatalogVersion }} -- DO NOT EDIT.
name: Docs

on:
  push:
    branches: [{{ .Project.GitMainBranch }}]

jobs:
  docs:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Build documentation
        run: pip install mkdocs && mkdocs build
`
