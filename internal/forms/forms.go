// Package forms holds a catalog of fixed poetic forms and matches analyses
// against it.
package forms

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/prosody/internal/meter"
	"github.com/pthm/prosody/internal/rhyme"
)

//go:embed configs/*.yaml
var configFS embed.FS

// Form describes a fixed form by its line count, rhyme scheme and
// optionally its meter
type Form struct {
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Lines       int    `yaml:"lines" json:"lines"`
	Scheme      string `yaml:"scheme" json:"scheme"`
	Meter       string `yaml:"meter,omitempty" json:"meter,omitempty"`
}

// Validate checks that the form is self-consistent
func (f *Form) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("form has no name")
	}
	if f.Lines <= 0 {
		return fmt.Errorf("form %s: lines must be positive", f.Name)
	}
	if len(f.Scheme) != f.Lines {
		return fmt.Errorf("form %s: scheme %q has %d symbols for %d lines", f.Name, f.Scheme, len(f.Scheme), f.Lines)
	}
	for _, r := range f.Scheme {
		if (r < 'A' || r > 'Z') && string(r) != rhyme.Unrhymed {
			return fmt.Errorf("form %s: invalid scheme symbol %q", f.Name, r)
		}
	}
	return nil
}

// Catalog is a set of forms keyed by name
type Catalog struct {
	forms map[string]*Form
}

// NewCatalog builds a catalog, validating each form
func NewCatalog(forms ...*Form) (*Catalog, error) {
	c := &Catalog{forms: make(map[string]*Form, len(forms))}
	for _, f := range forms {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		c.forms[f.Name] = f
	}
	return c, nil
}

var builtin = mustLoadBuiltin()

func mustLoadBuiltin() *Catalog {
	entries, err := configFS.ReadDir("configs")
	if err != nil {
		panic(fmt.Sprintf("forms: read embedded catalog: %v", err))
	}

	var list []*Form
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := configFS.ReadFile(path.Join("configs", entry.Name()))
		if err != nil {
			panic(fmt.Sprintf("forms: read %s: %v", entry.Name(), err))
		}
		var f Form
		if err := yaml.Unmarshal(data, &f); err != nil {
			panic(fmt.Sprintf("forms: parse %s: %v", entry.Name(), err))
		}
		list = append(list, &f)
	}

	c, err := NewCatalog(list...)
	if err != nil {
		panic(fmt.Sprintf("forms: %v", err))
	}
	return c
}

// Builtin returns the embedded catalog
func Builtin() *Catalog {
	return builtin
}

// Load returns a builtin form by name
func Load(name string) (*Form, error) {
	return builtin.Get(name)
}

// Available returns the names of all builtin forms, sorted
func Available() []string {
	return builtin.Names()
}

// LoadFromFile reads extra forms from a YAML file of the shape
// `forms: [...]` and returns them merged over the builtin catalog
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Forms []*Form `yaml:"forms"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	extra, err := NewCatalog(file.Forms...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return builtin.Merge(extra), nil
}

// Get returns a form by name
func (c *Catalog) Get(name string) (*Form, error) {
	if f, ok := c.forms[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown form: %s", name)
}

// Names returns the sorted form names
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.forms))
	for name := range c.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Forms returns the forms sorted by name
func (c *Catalog) Forms() []*Form {
	out := make([]*Form, 0, len(c.forms))
	for _, name := range c.Names() {
		out = append(out, c.forms[name])
	}
	return out
}

// Merge returns a new catalog with other's forms replacing same-named ones
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{forms: make(map[string]*Form, len(c.forms)+len(other.forms))}
	for name, f := range c.forms {
		merged.forms[name] = f
	}
	for name, f := range other.forms {
		merged.forms[name] = f
	}
	return merged
}

// Match is a form whose scheme fits an analysis
type Match struct {
	Form       *Form  `json:"form"`
	Meter      string `json:"meter,omitempty"`
	MeterMatch bool   `json:"meter_match"`
}

// Match finds the form whose canonical scheme equals the assignment's.
// Forms whose meter also agrees with the dominant meter win; ties go to
// name order. Returns nil when nothing fits.
func (c *Catalog) Match(a rhyme.Assignment, meters []meter.Result) *Match {
	if a.Status != rhyme.StatusDetected || a.HasOverflow() {
		return nil
	}

	scheme := Canonicalize(a.Scheme)
	dominant, _ := meter.Dominant(meters)

	var fallback *Match
	for _, f := range c.Forms() {
		if f.Lines != len(a.Letters) || Canonicalize(f.Scheme) != scheme {
			continue
		}
		m := &Match{
			Form:       f,
			Meter:      dominant,
			MeterMatch: f.Meter == "" || f.Meter == dominant,
		}
		if m.MeterMatch && f.Meter != "" {
			return m
		}
		if fallback == nil || (m.MeterMatch && !fallback.MeterMatch) {
			fallback = m
		}
	}
	return fallback
}

// Canonicalize relabels scheme letters in order of first occurrence so
// that equivalent schemes compare equal. Unrhymed and overflow symbols
// are kept.
func Canonicalize(scheme string) string {
	relabel := map[rune]rune{}
	next := 'A'

	var b strings.Builder
	for _, r := range scheme {
		if r < 'A' || r > 'Z' || string(r) == rhyme.Unrhymed {
			b.WriteRune(r)
			continue
		}
		mapped, ok := relabel[r]
		if !ok {
			mapped = next
			relabel[r] = mapped
			next++
		}
		b.WriteRune(mapped)
	}
	return b.String()
}
