// Package manifest describes a component in a JSON or YAML file: where its
// template comes from, its initial state and the static data used to
// preprocess the template.
//
//	name: greeting
//	templateFile: greeting.html
//	state:
//	  who: world
//	globals:
//	  title: Welcome
//	sanitize: true
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-binder/pkg/component"
	"github.com/goliatone/go-binder/pkg/sanitize"
	"github.com/goliatone/go-binder/pkg/source"
	"github.com/goliatone/go-binder/pkg/template"
	"github.com/goliatone/go-binder/pkg/template/pongo"
)

// ErrNoTemplate is returned when a manifest names no template.
var ErrNoTemplate = errors.New("manifest: no template, templateFile or templateUrl")

// Manifest is the decoded component description.
type Manifest struct {
	Name         string         `json:"name" yaml:"name"`
	Template     string         `json:"template,omitempty" yaml:"template,omitempty"`
	TemplateFile string         `json:"templateFile,omitempty" yaml:"templateFile,omitempty"`
	TemplateURL  string         `json:"templateUrl,omitempty" yaml:"templateUrl,omitempty"`
	State        map[string]any `json:"state,omitempty" yaml:"state,omitempty"`
	Globals      map[string]any `json:"globals,omitempty" yaml:"globals,omitempty"`
	Sanitize     bool           `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`

	// Dir resolves relative templateFile paths. Load sets it to the
	// manifest's directory.
	Dir string `json:"-" yaml:"-"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes data as JSON, falling back to YAML. source names the input in
// error messages.
func Parse(data []byte, source string) (*Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("manifest: %s is empty", source)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		m = Manifest{}
		if yerr := yaml.Unmarshal(data, &m); yerr != nil {
			return nil, fmt.Errorf("manifest: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", source, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	count := 0
	for _, v := range []string{m.Template, m.TemplateFile, m.TemplateURL} {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	switch count {
	case 0:
		return ErrNoTemplate
	case 1:
		return nil
	default:
		return errors.New("template, templateFile and templateUrl are mutually exclusive")
	}
}

// Source returns the template source the manifest names.
func (m *Manifest) Source() (source.Source, error) {
	switch {
	case strings.TrimSpace(m.Template) != "":
		return source.Inline(m.Template), nil
	case strings.TrimSpace(m.TemplateFile) != "":
		path := m.TemplateFile
		if !filepath.IsAbs(path) && m.Dir != "" {
			path = filepath.Join(m.Dir, path)
		}
		return source.FromFile(path), nil
	case strings.TrimSpace(m.TemplateURL) != "":
		return source.FromURL(m.TemplateURL)
	default:
		return nil, ErrNoTemplate
	}
}

// Options converts the manifest into component options: the template source,
// initial state, a pongo2 preprocessor seeded with the globals and, when
// requested, the sanitiser.
func (m *Manifest) Options() ([]component.Option, error) {
	src, err := m.Source()
	if err != nil {
		return nil, err
	}

	var engineOpts []pongo.Option
	if m.Dir != "" {
		engineOpts = append(engineOpts, pongo.WithBaseDir(m.Dir))
	}
	engine, err := pongo.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("manifest: preprocessor: %w", err)
	}

	opts := []component.Option{
		component.WithSource(src),
		component.WithState(m.State),
		component.WithGlobals(m.Globals),
		component.WithPreprocessor(template.Preprocessor(engine)),
	}
	if m.Sanitize {
		opts = append(opts, component.WithSanitizer(sanitize.Template))
	}
	return opts, nil
}
