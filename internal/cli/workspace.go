package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qazuor/claude-code-config-sub001/internal/branding"
	"github.com/qazuor/claude-code-config-sub001/internal/config"
	"github.com/qazuor/claude-code-config-sub001/internal/registry"
	"github.com/qazuor/claude-code-config-sub001/internal/scaffold"
	"github.com/qazuor/claude-code-config-sub001/internal/settings"
	"github.com/qazuor/claude-code-config-sub001/internal/template"
)

// kindDirOrder is the display and persistence order for module kinds.
var kindDirOrder = []string{"agents", "commands", "skills", "docs"}

// openRegistry discovers modules under the configured templates root.
func openRegistry() (*registry.Registry, error) {
	root := config.TemplatesRoot()
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("templates root %s not found; run '%s init' first", root, branding.CLIName())
	}
	return registry.Discover(root)
}

// splitModuleRef splits "agents/code-reviewer" into its kind directory and
// module name.
func splitModuleRef(ref string) (kindDir, name string, err error) {
	kindDir, name, ok := strings.Cut(ref, "/")
	if !ok || kindDir == "" || name == "" {
		return "", "", fmt.Errorf("invalid module reference %q: expected <kind>/<name>", ref)
	}
	return kindDir, name, nil
}

// moduleList returns the settings list holding modules of the given kind
// directory, or nil for an unknown kind.
func moduleList(s *settings.Settings, kindDir string) *[]string {
	switch kindDir {
	case "agents":
		return &s.Modules.Agents
	case "commands":
		return &s.Modules.Commands
	case "skills":
		return &s.Modules.Skills
	case "docs":
		return &s.Modules.Docs
	}
	return nil
}

// settingsRefs rebuilds full module references from the per-kind name
// lists, in kind order.
func settingsRefs(s *settings.Settings) []string {
	var refs []string
	for _, kindDir := range kindDirOrder {
		for _, name := range *moduleList(s, kindDir) {
			refs = append(refs, kindDir+"/"+name)
		}
	}
	return refs
}

// addRef records a module reference in settings. It reports false when
// the module was already present.
func addRef(s *settings.Settings, ref string) (bool, error) {
	kindDir, name, err := splitModuleRef(ref)
	if err != nil {
		return false, err
	}
	list := moduleList(s, kindDir)
	if list == nil {
		return false, fmt.Errorf("unknown module kind %q in %q", kindDir, ref)
	}
	for _, existing := range *list {
		if existing == name {
			return false, nil
		}
	}
	*list = append(*list, name)
	return true, nil
}

// removeRef drops a module reference from settings. It reports false when
// the module was not present.
func removeRef(s *settings.Settings, ref string) (bool, error) {
	kindDir, name, err := splitModuleRef(ref)
	if err != nil {
		return false, err
	}
	list := moduleList(s, kindDir)
	if list == nil {
		return false, fmt.Errorf("unknown module kind %q in %q", kindDir, ref)
	}
	for i, existing := range *list {
		if existing == name {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// moduleDest is where a module's rendered files land inside the project.
func moduleDest(projectRoot, ref string) string {
	return filepath.Join(projectRoot, branding.TargetDir(), filepath.FromSlash(ref))
}

// renderModules renders each referenced module into the project's managed
// directory. Files whose templates have structural errors are reported
// and left unchanged; the function returns an error if any module is
// missing from the registry or any file failed to render.
func renderModules(w io.Writer, reg *registry.Registry, refs []string, projectRoot string, ctx *template.Context, force bool) error {
	var failures []string

	for _, ref := range refs {
		m, ok := reg.Find(ref)
		if !ok {
			failures = append(failures, fmt.Sprintf("%s: not found in templates root", ref))
			continue
		}
		if err := registry.CheckModule(m, buildVersion); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", ref, err))
			continue
		}

		res, err := scaffold.Render(m.Dir, moduleDest(projectRoot, ref), ctx, scaffold.Options{Force: force})
		if err != nil {
			return fmt.Errorf("rendering %s: %w", ref, err)
		}

		line := fmt.Sprintf("  %s: %d file(s) written", ref, res.Written())
		if n := res.WarningCount(); n > 0 {
			line += fmt.Sprintf(", %d warning(s)", n)
		}
		fmt.Fprintln(w, line)

		for _, f := range res.Files {
			for _, warn := range f.Warnings {
				fmt.Fprintf(w, "    warning: %s: %s\n", f.Path, warn)
			}
			if f.Skipped {
				fmt.Fprintf(w, "    skipped (exists): %s\n", f.Path)
			}
		}
		for _, e := range res.Errors() {
			failures = append(failures, fmt.Sprintf("%s: %s (file left unchanged)", ref, e))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("rendering failed:\n  %s", strings.Join(failures, "\n  "))
	}
	return nil
}
