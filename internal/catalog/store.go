// Package catalog holds the canned replies sent by the action handlers.
// Replies live in a YAML document (embedded by default, optionally replaced
// from disk), are schema-checked on load and looked up by typed ID.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/template"

	domerrors "github.com/vasptech/vaspx-actions/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// EmbeddedSource is the source name reported for the built-in catalog.
const EmbeddedSource = "embedded"

// Data is the parameter set of interpolated replies.
type Data struct {
	Products string
}

// document mirrors catalog.yaml.
type document struct {
	Version   int               `yaml:"version"`
	Templates map[string]string `yaml:"templates"`
}

// Store is an immutable set of replies. Safe for concurrent use.
type Store struct {
	source    string
	version   int
	texts     map[ID]string
	templates map[ID]*template.Template
}

// Default loads the embedded catalog.
func Default() (*Store, error) {
	return Load(EmbeddedSource, embeddedCatalog)
}

// MustDefault is Default for tests and tools; it panics on a broken build.
func MustDefault() *Store {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}

// LoadFile reads a catalog from path. An empty path loads the embedded catalog.
func LoadFile(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Load(path, data)
}

// Load parses, validates and compiles a catalog document.
// Every ID in Required must be present and every parameterized reply must
// render with sample data, so lookups cannot miss after a successful load.
func Load(source string, data []byte) (*Store, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, domerrors.NewCatalogError(source, domerrors.ErrCatalogInvalid, []string{err.Error()})
	}
	if problems, err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("validate catalog %s: %w", source, err)
	} else if len(problems) > 0 {
		return nil, domerrors.NewCatalogError(source, domerrors.ErrCatalogInvalid, problems)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domerrors.NewCatalogError(source, domerrors.ErrCatalogInvalid, []string{err.Error()})
	}

	s := &Store{
		source:    source,
		version:   doc.Version,
		texts:     make(map[ID]string, len(doc.Templates)),
		templates: make(map[ID]*template.Template),
	}
	for key, text := range doc.Templates {
		s.texts[ID(key)] = text
	}

	if missing := s.Missing(); len(missing) > 0 {
		problems := make([]string, len(missing))
		for i, id := range missing {
			problems[i] = "missing reply " + string(id)
		}
		return nil, domerrors.NewCatalogError(source, domerrors.ErrTemplateMissing, problems)
	}

	var problems []string
	for id := range parameterized {
		tmpl, err := template.New(string(id)).Option("missingkey=error").Parse(s.texts[id])
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		var sb strings.Builder
		if err := tmpl.Execute(&sb, Data{Products: "Ednect"}); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		s.templates[id] = tmpl
	}
	if len(problems) > 0 {
		slices.Sort(problems)
		return nil, domerrors.NewCatalogError(source, domerrors.ErrCatalogInvalid, problems)
	}

	return s, nil
}

// Text returns the verbatim reply for id.
func (s *Store) Text(id ID) (string, bool) {
	text, ok := s.texts[id]
	return text, ok
}

// Render returns the reply for id with data interpolated. Replies without
// parameters are returned verbatim.
func (s *Store) Render(id ID, data Data) (string, error) {
	tmpl, ok := s.templates[id]
	if !ok {
		text, found := s.texts[id]
		if !found {
			return "", fmt.Errorf("render %s: %w", id, domerrors.ErrTemplateMissing)
		}
		return text, nil
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", id, err)
	}
	return sb.String(), nil
}

// Missing lists the required replies absent from the store, sorted.
func (s *Store) Missing() []ID {
	var missing []ID
	for _, id := range Required() {
		if text, ok := s.texts[id]; !ok || text == "" {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)
	return missing
}

// IDs returns every reply identifier in the store, sorted.
func (s *Store) IDs() []ID {
	ids := make([]ID, 0, len(s.texts))
	for id := range s.texts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of replies.
func (s *Store) Len() int {
	return len(s.texts)
}

// Source returns where the catalog was loaded from.
func (s *Store) Source() string {
	return s.source
}

// Version returns the catalog document version.
func (s *Store) Version() int {
	return s.version
}
