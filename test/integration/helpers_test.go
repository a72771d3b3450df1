//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	TemplatesDir string // templates root with module and bundle definitions
	ProjectDir   string // a mock project directory
}

// setupTestEnv creates isolated temp directories and populates a
// synthetic templates root covering every module kind plus a bundle.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		TemplatesDir: t.TempDir(),
		ProjectDir:   t.TempDir(),
	}

	writeModule(t, env.TemplatesDir, "agents/reviewer", "agent", map[string]string{
		"agent.md": "# Reviewer for {{project.name}}\n\n" +
			"{{#each techStack.languages}}- knows {{item}}\n{{/each}}",
	})
	writeModule(t, env.TemplatesDir, "commands/ship", "command", map[string]string{
		"command.md": "{{#if project.repository}}Push to {{project.repository}}{{/if}}\n" +
			"{{#unless project.repository}}No remote configured.{{/unless}}\n",
	})
	writeModule(t, env.TemplatesDir, "docs/overview", "doc", map[string]string{
		"overview.md": "# {{project.name | title}}\n\n{{project.description}}\n",
		"logo.svg":    "<svg>{{untouched}}</svg>",
	})

	bundle := "name: base\ndescription: Baseline set\nmodules:\n  - agents/reviewer\n  - docs/overview\n"
	writeFile(t, filepath.Join(env.TemplatesDir, "bundles", "base.yaml"), bundle)

	return env
}

// writeModule creates a module directory with its manifest and files.
func writeModule(t *testing.T, root, ref, kind string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(ref))
	manifest := "name: " + filepath.Base(ref) + "\nkind: " + kind + "\nversion: \"1.0.0\"\n"
	writeFile(t, filepath.Join(dir, "module.yaml"), manifest)
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
