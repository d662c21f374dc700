// Package presets loads the catalogue of ready-made expressions shown by
// the CLI and the HTTP API.
package presets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/boolstep/pkg/parser"
)

//go:embed presets.yaml
var builtin []byte

// Kind says how a preset is meant to be shown.
type Kind string

// Preset kinds.
const (
	KindTrace   Kind = "trace"
	KindTable   Kind = "table"
	KindCompare Kind = "compare"
)

// Preset is a named expression, or a pair of expressions for KindCompare.
type Preset struct {
	Name    string `yaml:"name" json:"name"`
	Kind    Kind   `yaml:"kind" json:"kind"`
	Title   string `yaml:"title,omitempty" json:"title,omitempty"`
	Expr    string `yaml:"expr" json:"expr"`
	Compare string `yaml:"compare,omitempty" json:"compare,omitempty"`
}

// Catalog is an ordered set of presets with unique names.
type Catalog struct {
	Presets []Preset `yaml:"presets" json:"presets"`
}

// InvalidPresetError reports a preset that failed validation.
type InvalidPresetError struct {
	Name    string
	Message string
	Err     error
}

func (e *InvalidPresetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("preset %q: %s: %v", e.Name, e.Message, e.Err)
	}
	return fmt.Sprintf("preset %q: %s", e.Name, e.Message)
}

func (e *InvalidPresetError) Unwrap() error {
	return e.Err
}

// Default returns the built-in catalogue.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("presets: built-in catalogue is invalid: %v", err))
	}
	return c
}

// Load reads a catalogue from path. An empty path yields the built-in one.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalogue. Unknown fields are errors.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid presets YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names, kinds and that every expression parses.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if p.Name == "" {
			return &InvalidPresetError{Message: "name is required"}
		}
		if seen[p.Name] {
			return &InvalidPresetError{Name: p.Name, Message: "duplicate name"}
		}
		seen[p.Name] = true

		switch p.Kind {
		case KindTrace, KindTable:
			if p.Compare != "" {
				return &InvalidPresetError{Name: p.Name, Message: "compare is only valid for kind compare"}
			}
		case KindCompare:
			if p.Compare == "" {
				return &InvalidPresetError{Name: p.Name, Message: "compare expression is required"}
			}
			if _, err := parser.ParseString(p.Compare); err != nil {
				return &InvalidPresetError{Name: p.Name, Message: "invalid compare expression", Err: err}
			}
		default:
			return &InvalidPresetError{Name: p.Name, Message: fmt.Sprintf("unknown kind %q", p.Kind)}
		}

		if _, err := parser.ParseString(p.Expr); err != nil {
			return &InvalidPresetError{Name: p.Name, Message: "invalid expression", Err: err}
		}
	}
	return nil
}

// Get returns the preset called name.
func (c *Catalog) Get(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Names returns the preset names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Presets))
	for i, p := range c.Presets {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

// ByKind returns the presets of one kind in catalogue order.
func (c *Catalog) ByKind(kind Kind) []Preset {
	var out []Preset
	for _, p := range c.Presets {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
