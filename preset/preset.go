// Package preset maps common libraries to the location of their
// documentation sources.
package preset

import (
	"bytes"
	_ "embed"
	"io"
	"slices"
	"strings"

	"github.com/fwojciec/libdoc"
	"gopkg.in/yaml.v3"
)

// DefaultBranch is used when a preset names no branch.
const DefaultBranch = "main"

// DefaultExtensions are the file extensions indexed when a preset lists none.
var DefaultExtensions = []string{".md", ".mdx"}

//go:embed presets.yaml
var builtin []byte

// Preset describes where a library's documentation lives.
type Preset struct {
	Name       string   `yaml:"-" json:"name"`
	Repo       string   `yaml:"repo" json:"repo"`
	DocsPath   string   `yaml:"docs_path" json:"docsPath"`
	BaseURL    string   `yaml:"base_url" json:"baseUrl"`
	Branch     string   `yaml:"branch" json:"branch"`
	Extensions []string `yaml:"extensions" json:"extensions"`
}

// RepoURL returns the GitHub URL of the preset's repository.
func (p *Preset) RepoURL() string {
	return "https://github.com/" + p.Repo
}

// Matches reports whether path has one of the preset's extensions.
func (p *Preset) Matches(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range p.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// file is the on-disk layout of a presets file.
type file struct {
	Presets map[string]*Preset `yaml:"presets"`
}

// Registry holds presets by lowercase name.
type Registry struct {
	presets map[string]*Preset
}

// Default returns the registry of built-in presets.
func Default() (*Registry, error) {
	return Load(bytes.NewReader(builtin))
}

// Load parses a presets file. Every preset needs a repo and a base URL;
// branch and extensions fall back to DefaultBranch and DefaultExtensions.
func Load(r io.Reader) (*Registry, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, libdoc.Errorf(libdoc.EINVALID, "parse presets: %v", err)
	}

	reg := &Registry{presets: make(map[string]*Preset, len(f.Presets))}
	for name, p := range f.Presets {
		if p == nil {
			return nil, libdoc.Errorf(libdoc.EINVALID, "preset %q is empty", name)
		}
		if p.Repo == "" {
			return nil, libdoc.Errorf(libdoc.EINVALID, "preset %q: repo required", name)
		}
		if p.BaseURL == "" {
			return nil, libdoc.Errorf(libdoc.EINVALID, "preset %q: base_url required", name)
		}
		p.Name = strings.ToLower(name)
		if p.DocsPath == "" {
			p.DocsPath = "."
		}
		if p.Branch == "" {
			p.Branch = DefaultBranch
		}
		if len(p.Extensions) == 0 {
			p.Extensions = slices.Clone(DefaultExtensions)
		}
		reg.presets[p.Name] = p
	}
	return reg, nil
}

// Merge adds the presets of other to r, replacing presets with the same name.
func (r *Registry) Merge(other *Registry) {
	for name, p := range other.presets {
		r.presets[name] = p
	}
}

// Lookup returns the preset with the given name, ignoring case.
func (r *Registry) Lookup(name string) (*Preset, bool) {
	p, ok := r.presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Get is like Lookup but returns ENOTFOUND for unknown names.
func (r *Registry) Get(name string) (*Preset, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, libdoc.Errorf(libdoc.ENOTFOUND, "no preset found for %q", name)
	}
	return p, nil
}

// Names returns the preset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
