package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qazuor/claude-code-config-sub001/internal/template"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func renderCtx() *template.Context {
	return template.NewContext(template.NewMap().
		Set("project", template.MapValue(template.NewMap().
			Set("name", template.String("demo")))))
}

func TestRender_ProcessesRenderableFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "module.yaml", "name: x\nkind: agent\n")
	writeFile(t, src, "agent.md", "Hello {{project.name}}\n")
	writeFile(t, src, "nested/notes.txt", "{{#if project.name}}yes{{/if}}\n")

	res, err := Render(src, dst, renderCtx(), Options{})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.Written() != 2 {
		t.Errorf("Written = %d, want 2", res.Written())
	}
	if got := readFile(t, dst, "agent.md"); got != "Hello demo\n" {
		t.Errorf("agent.md = %q", got)
	}
	if got := readFile(t, dst, "nested/notes.txt"); got != "yes\n" {
		t.Errorf("notes.txt = %q", got)
	}
	// The manifest is registry metadata, not project content.
	if _, err := os.Stat(filepath.Join(dst, "module.yaml")); !os.IsNotExist(err) {
		t.Error("module.yaml should not be copied")
	}
}

func TestRender_CopiesNonRenderableVerbatim(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "logo.svg", "<svg>{{not.a.variable}}</svg>")

	res, err := Render(src, dst, renderCtx(), Options{})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.Files[0].Rendered {
		t.Error("svg should not be rendered")
	}
	if got := readFile(t, dst, "logo.svg"); got != "<svg>{{not.a.variable}}</svg>" {
		t.Errorf("logo.svg = %q", got)
	}
}

func TestRender_StructuralErrorBlocksWrite(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "bad.md", "{{#if project.name}}never closed")
	writeFile(t, dst, "bad.md", "previous good content")

	res, err := Render(src, dst, renderCtx(), Options{Force: true})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.Written() != 0 {
		t.Errorf("Written = %d, want 0", res.Written())
	}
	if len(res.Errors()) == 0 {
		t.Fatal("expected blocking errors")
	}
	if !strings.Contains(res.Errors()[0], "bad.md") {
		t.Errorf("error %q should name the file", res.Errors()[0])
	}
	// The existing destination file must survive untouched.
	if got := readFile(t, dst, "bad.md"); got != "previous good content" {
		t.Errorf("destination overwritten: %q", got)
	}
}

func TestRender_WarningsDoNotBlock(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "doc.md", "value: {{missing.path}}\n")

	res, err := Render(src, dst, renderCtx(), Options{})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.Written() != 1 {
		t.Errorf("Written = %d, want 1", res.Written())
	}
	if res.WarningCount() != 1 {
		t.Errorf("WarningCount = %d, want 1", res.WarningCount())
	}
	if got := readFile(t, dst, "doc.md"); got != "value: \n" {
		t.Errorf("doc.md = %q", got)
	}
}

func TestRender_SkipsExistingWithoutForce(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "doc.md", "new content {{project.name}}")
	writeFile(t, dst, "doc.md", "old content")

	res, err := Render(src, dst, renderCtx(), Options{})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.Written() != 0 || !res.Files[0].Skipped {
		t.Errorf("files = %+v, want skipped", res.Files)
	}
	if got := readFile(t, dst, "doc.md"); got != "old content" {
		t.Errorf("doc.md = %q, want untouched", got)
	}

	res, err = Render(src, dst, renderCtx(), Options{Force: true})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.Written() != 1 {
		t.Errorf("forced Written = %d, want 1", res.Written())
	}
	if got := readFile(t, dst, "doc.md"); got != "new content demo" {
		t.Errorf("doc.md = %q", got)
	}
}

func TestRender_IgnorePatterns(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "keep.md", "kept")
	writeFile(t, src, "draft.bak", "dropped")
	writeFile(t, src, "drafts/wip.md", "dropped")

	res, err := Render(src, dst, renderCtx(), Options{Ignore: []string{"*.bak", "drafts/**"}})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if res.Written() != 1 || res.Files[0].Path != "keep.md" {
		t.Errorf("files = %+v", res.Files)
	}
}

func TestRender_BadIgnorePattern(t *testing.T) {
	src := t.TempDir()
	if _, err := Render(src, t.TempDir(), renderCtx(), Options{Ignore: []string{"[unterminated"}}); err == nil {
		t.Fatal("expected error for bad glob")
	}
}

func TestIsRenderable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"a.MD", true},
		{"settings.json", true},
		{"a.yaml", true},
		{"a.yml", true},
		{"a.txt", true},
		{"a.svg", false},
		{"a.png", false},
		{"Makefile", false},
	}
	for _, tt := range tests {
		if got := IsRenderable(tt.path); got != tt.want {
			t.Errorf("IsRenderable(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
