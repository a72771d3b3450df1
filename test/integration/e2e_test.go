//go:build integration

package integration_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/qazuor/claude-code-config-sub001/internal/registry"
	"github.com/qazuor/claude-code-config-sub001/internal/scaffold"
	"github.com/qazuor/claude-code-config-sub001/internal/settings"
)

// TestFullFlowInitAndApply tests the complete flow:
// write settings -> discover templates -> expand bundles -> render modules
// -> change settings -> re-render.
func TestFullFlowInitAndApply(t *testing.T) {
	env := setupTestEnv(t)

	// Step 1: Create and persist project settings.
	s := &settings.Settings{
		Project: settings.Project{
			Name:        "demo-app",
			Description: "A demo application.",
		},
		TechStack: map[string]interface{}{
			"languages": []interface{}{"go", "sql"},
		},
		Bundles: []string{"base"},
	}
	if err := settings.Save(env.ProjectDir, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	assertFileExists(t, settings.Path(env.ProjectDir))

	res, err := settings.ValidateFile(settings.Path(env.ProjectDir))
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !res.Valid {
		t.Fatalf("settings invalid: %+v", res.Issues)
	}

	// Step 2: Discover templates and expand the bundle plus one extra.
	reg, err := registry.Discover(env.TemplatesDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	refs, err := reg.ExpandBundles([]string{"base"}, []string{"commands/ship"})
	if err != nil {
		t.Fatalf("ExpandBundles: %v", err)
	}
	want := []string{"agents/reviewer", "docs/overview", "commands/ship"}
	if len(refs) != len(want) {
		t.Fatalf("refs = %v, want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Fatalf("refs = %v, want %v", refs, want)
		}
	}

	// Step 3: Render every module into the managed directory.
	ctx := settings.BuildContext(s)
	for _, ref := range refs {
		m, ok := reg.Find(ref)
		if !ok {
			t.Fatalf("module %s not found", ref)
		}
		dest := filepath.Join(env.ProjectDir, ".claude", filepath.FromSlash(ref))
		rres, err := scaffold.Render(m.Dir, dest, ctx, scaffold.Options{})
		if err != nil {
			t.Fatalf("Render(%s): %v", ref, err)
		}
		if errs := rres.Errors(); len(errs) > 0 {
			t.Fatalf("Render(%s) errors: %v", ref, errs)
		}
	}

	// Step 4: Verify rendered content.
	agent := readFile(t, filepath.Join(env.ProjectDir, ".claude", "agents", "reviewer", "agent.md"))
	if !strings.Contains(agent, "# Reviewer for demo-app") {
		t.Errorf("agent.md = %q", agent)
	}
	if !strings.Contains(agent, "- knows go\n- knows sql\n") {
		t.Errorf("agent.md loop output = %q", agent)
	}

	ship := readFile(t, filepath.Join(env.ProjectDir, ".claude", "commands", "ship", "command.md"))
	if strings.Contains(ship, "Push to") {
		t.Errorf("command.md should not render the repository branch: %q", ship)
	}
	if !strings.Contains(ship, "No remote configured.") {
		t.Errorf("command.md = %q", ship)
	}

	overview := readFile(t, filepath.Join(env.ProjectDir, ".claude", "docs", "overview", "overview.md"))
	if !strings.Contains(overview, "A demo application.") {
		t.Errorf("overview.md = %q", overview)
	}

	logo := readFile(t, filepath.Join(env.ProjectDir, ".claude", "docs", "overview", "logo.svg"))
	if logo != "<svg>{{untouched}}</svg>" {
		t.Errorf("logo.svg should be copied verbatim: %q", logo)
	}

	// Step 5: Change settings and re-render the affected module.
	updated, err := settings.Update(env.ProjectDir, []byte(`{"project":{"repository":"git@example.com:demo.git"}}`))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Project.Name != "demo-app" {
		t.Errorf("merge lost project name: %+v", updated.Project)
	}

	m, _ := reg.Find("commands/ship")
	dest := filepath.Join(env.ProjectDir, ".claude", "commands", "ship")
	rres, err := scaffold.Render(m.Dir, dest, settings.BuildContext(updated), scaffold.Options{Force: true})
	if err != nil {
		t.Fatalf("re-render: %v", err)
	}
	if rres.Written() != 1 {
		t.Fatalf("re-render wrote %d files", rres.Written())
	}

	ship = readFile(t, filepath.Join(dest, "command.md"))
	if !strings.Contains(ship, "Push to git@example.com:demo.git") {
		t.Errorf("command.md after update = %q", ship)
	}
	if strings.Contains(ship, "No remote configured.") {
		t.Errorf("unless branch should be suppressed now: %q", ship)
	}
}

// TestBrokenTemplateLeavesFilesUntouched ensures a structurally invalid
// template never replaces a previously rendered file.
func TestBrokenTemplateLeavesFilesUntouched(t *testing.T) {
	env := setupTestEnv(t)

	writeModule(t, env.TemplatesDir, "skills/notes", "skill", map[string]string{
		"SKILL.md": "{{#each modules.skills}}open forever\n",
	})

	reg, err := registry.Discover(env.TemplatesDir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	m, ok := reg.Find("skills/notes")
	if !ok {
		t.Fatal("skills/notes not discovered")
	}

	dest := filepath.Join(env.ProjectDir, ".claude", "skills", "notes")
	writeFile(t, filepath.Join(dest, "SKILL.md"), "previous content")

	s := &settings.Settings{Project: settings.Project{Name: "demo"}}
	rres, err := scaffold.Render(m.Dir, dest, settings.BuildContext(s), scaffold.Options{Force: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(rres.Errors()) == 0 {
		t.Fatal("expected structural errors")
	}
	if got := readFile(t, filepath.Join(dest, "SKILL.md")); got != "previous content" {
		t.Errorf("file overwritten: %q", got)
	}
}
