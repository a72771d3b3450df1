package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// manifestName is the manifest file every template module must carry.
const manifestName = "module.yaml"

// bundlesDir holds bundle definition files under the templates root.
const bundlesDir = "bundles"

// Registry is the set of modules and bundles found under a templates root.
type Registry struct {
	Root    string
	modules map[string]*Module
	bundles map[string]*Bundle
}

// Discover walks the kind directories under root, parses every module
// manifest, and loads bundle definitions. A missing kind directory is
// fine; a module directory without a parseable manifest is an error so
// broken templates surface early rather than silently dropping out.
func Discover(root string) (*Registry, error) {
	reg := &Registry{
		Root:    root,
		modules: make(map[string]*Module),
		bundles: make(map[string]*Bundle),
	}

	for _, kind := range ValidKinds {
		kindDir := filepath.Join(root, kindDirs[kind])
		entries, err := os.ReadDir(kindDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(kindDir, entry.Name())
			mod, err := loadModule(dir, kind)
			if err != nil {
				return nil, err
			}
			reg.modules[mod.Ref] = mod
		}
	}

	if err := reg.loadBundles(filepath.Join(root, bundlesDir)); err != nil {
		return nil, err
	}

	return reg, nil
}

// loadModule parses the manifest in a module directory.
func loadModule(dir, kind string) (*Module, error) {
	manifestPath := filepath.Join(dir, manifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}

	var m ModuleManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}
	if m.Name == "" {
		m.Name = filepath.Base(dir)
	}
	if m.Kind == "" {
		m.Kind = kind
	}
	if m.Kind != kind {
		return nil, fmt.Errorf("manifest %s: kind %q does not match directory %s", manifestPath, m.Kind, kindDirs[kind])
	}

	return &Module{
		Ref:      kindDirs[kind] + "/" + filepath.Base(dir),
		Dir:      dir,
		Manifest: m,
	}, nil
}

// loadBundles reads every *.yaml file in the bundles directory.
func (r *Registry) loadBundles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil // bundles are optional
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading bundle %s: %w", path, err)
		}

		var m BundleManifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("parsing bundle %s: %w", path, err)
		}
		if m.Name == "" {
			m.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		r.bundles[m.Name] = &Bundle{Path: path, Manifest: m}
	}
	return nil
}

// Find returns the module for a ref like "agents/code-reviewer".
func (r *Registry) Find(ref string) (*Module, bool) {
	m, ok := r.modules[ref]
	return m, ok
}

// FindBundle returns the bundle with the given name.
func (r *Registry) FindBundle(name string) (*Bundle, bool) {
	b, ok := r.bundles[name]
	return b, ok
}

// Modules returns all modules sorted by ref.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out
}

// ByKind returns the modules of one kind sorted by ref.
func (r *Registry) ByKind(kind string) []*Module {
	var out []*Module
	for _, m := range r.Modules() {
		if m.Manifest.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Bundles returns all bundles sorted by name.
func (r *Registry) Bundles() []*Bundle {
	out := make([]*Bundle, 0, len(r.bundles))
	for _, b := range r.bundles {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Manifest.Name < out[j].Manifest.Name })
	return out
}
