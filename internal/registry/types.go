package registry

// Module kind constants for the kind discriminator field.
const (
	KindAgent   = "agent"
	KindCommand = "command"
	KindSkill   = "skill"
	KindDoc     = "doc"
)

// ValidKinds contains all valid module kind values.
var ValidKinds = []string{KindAgent, KindCommand, KindSkill, KindDoc}

// kindDirs maps a module kind to its directory under the templates root.
var kindDirs = map[string]string{
	KindAgent:   "agents",
	KindCommand: "commands",
	KindSkill:   "skills",
	KindDoc:     "docs",
}

// ModuleManifest is the module.yaml file at the root of a template module.
type ModuleManifest struct {
	Name        string    `yaml:"name"`
	Kind        string    `yaml:"kind"`
	Version     string    `yaml:"version"`
	Description string    `yaml:"description,omitempty"`
	Tags        []string  `yaml:"tags,omitempty"`
	Requires    *Requires `yaml:"requires,omitempty"`
}

// Requires declares compatibility constraints for a module.
type Requires struct {
	CLI string `yaml:"cli,omitempty"` // semver constraint, e.g. ">= 0.3.0"
}

// BundleManifest is a bundle definition file under <root>/bundles/.
type BundleManifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Modules     []string `yaml:"modules"` // module refs, e.g. "agents/code-reviewer"
}

// Module is a discovered template module.
type Module struct {
	Ref      string // e.g. "agents/code-reviewer"
	Dir      string // absolute path to the module directory
	Manifest ModuleManifest
}

// Bundle is a discovered bundle.
type Bundle struct {
	Path     string // absolute path to the bundle file
	Manifest BundleManifest
}
