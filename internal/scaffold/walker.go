package scaffold

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// renderableExtensions are the file types run through the template
// engine. Everything else is copied verbatim; the engine itself is
// content-agnostic.
var renderableExtensions = map[string]bool{
	".md":   true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".txt":  true,
}

// IsRenderable reports whether a file should go through the engine based
// on its extension.
func IsRenderable(path string) bool {
	return renderableExtensions[strings.ToLower(filepath.Ext(path))]
}

// CompileIgnores compiles glob patterns matched against slash-separated
// paths relative to the source root (e.g. "*.bak", "drafts/**").
func CompileIgnores(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func ignored(globs []glob.Glob, relPath string) bool {
	for _, g := range globs {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// listFiles returns the regular files under root as sorted slash-relative
// paths, minus ignored paths and the module manifest itself.
func listFiles(root string, ignores []glob.Glob) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == manifestFileName || ignored(ignores, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
