package template

import (
	"strings"
	"testing"
)

func TestParseDirectives_PlainText(t *testing.T) {
	nodes, errs := parseDirectives("no markers here")
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(nodes) != 1 || nodes[0].kind != nodeText {
		t.Fatalf("want a single text node, got %d nodes", len(nodes))
	}
	if nodes[0].text != "no markers here" {
		t.Errorf("text = %q", nodes[0].text)
	}
}

func TestParseDirectives_SingleBlock(t *testing.T) {
	nodes, errs := parseDirectives("before {{#if project.name}}inside{{/if}} after")
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(nodes))
	}
	block := nodes[1]
	if block.kind != nodeIf {
		t.Fatalf("kind = %v, want nodeIf", block.kind)
	}
	if block.expr != "project.name" {
		t.Errorf("expr = %q", block.expr)
	}
	if len(block.children) != 1 || block.children[0].text != "inside" {
		t.Errorf("children = %+v", block.children)
	}
}

func TestParseDirectives_Nesting(t *testing.T) {
	content := "{{#if a}}x{{#each items}}{{item}}{{/each}}y{{#if b}}z{{/if}}{{/if}}"
	nodes, errs := parseDirectives(content)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(nodes) != 1 {
		t.Fatalf("top-level nodes = %d, want 1", len(nodes))
	}
	outer := nodes[0]
	kinds := []nodeKind{}
	for _, c := range outer.children {
		kinds = append(kinds, c.kind)
	}
	want := []nodeKind{nodeText, nodeEach, nodeText, nodeIf}
	if len(kinds) != len(want) {
		t.Fatalf("child kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("child kinds = %v, want %v", kinds, want)
		}
	}
	// The interpolation inside the each body is plain text to the block scanner.
	each := outer.children[1]
	if len(each.children) != 1 || each.children[0].text != "{{item}}" {
		t.Errorf("each children = %+v", each.children)
	}
}

func TestParseDirectives_SameKindNesting(t *testing.T) {
	content := "{{#if a}}outer{{#if b}}inner{{/if}}tail{{/if}}"
	nodes, errs := parseDirectives(content)
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	outer := nodes[0]
	if len(outer.children) != 3 {
		t.Fatalf("outer children = %d, want 3", len(outer.children))
	}
	inner := outer.children[1]
	if inner.kind != nodeIf || inner.expr != "b" {
		t.Errorf("inner = %+v", inner)
	}
}

func TestParseDirectives_Siblings(t *testing.T) {
	nodes, errs := parseDirectives("{{#if a}}x{{/if}} {{#if b}}y{{/if}}")
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if len(nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(nodes))
	}
	if nodes[0].expr != "a" || nodes[2].expr != "b" {
		t.Errorf("sibling exprs = %q, %q", nodes[0].expr, nodes[2].expr)
	}
}

func TestParseDirectives_Unclosed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"unclosed if", "{{#if x}}text", "Unclosed directive {{#if}}"},
		{"unclosed each", "a {{#each items}}b", "Unclosed directive {{#each}}"},
		{"unclosed outer", "{{#if a}}{{#each b}}x{{/each}}", "Unclosed directive {{#if}}"},
		{"stray close", "text {{/if}} more", "Unexpected {{/if}}"},
		{"mismatched", "{{#if a}}x{{/each}}", "Mismatched {{/each}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseDirectives(tt.content)
			if len(errs) == 0 {
				t.Fatalf("expected a structural error for %q", tt.content)
			}
			if !strings.Contains(errs[0], tt.wantIn) {
				t.Errorf("error %q does not contain %q", errs[0], tt.wantIn)
			}
		})
	}
}

func TestParseDirectives_ErrorOffsets(t *testing.T) {
	_, errs := parseDirectives("abcd{{#if x}}text")
	if len(errs) != 1 {
		t.Fatalf("errs = %v", errs)
	}
	if !strings.Contains(errs[0], "offset 4") {
		t.Errorf("error %q should report offset 4", errs[0])
	}
}

func TestParseDirectives_NonMarkersAreText(t *testing.T) {
	tests := []string{
		"{{#if}}no space means no marker",
		"{{#unknown thing}}text",
		"{{项目}} non-ascii stays literal",
		"lonely {{ braces",
	}
	for _, content := range tests {
		t.Run(content, func(t *testing.T) {
			nodes, errs := parseDirectives(content)
			if len(errs) != 0 {
				t.Fatalf("errors: %v", errs)
			}
			joined := ""
			for _, n := range nodes {
				if n.kind != nodeText {
					t.Fatalf("non-text node %v", n.kind)
				}
				joined += n.text
			}
			if joined != content {
				t.Errorf("text = %q, want original", joined)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"plain", "hello", true},
		{"balanced", "{{#if a}}{{#each b}}x{{/each}}{{/if}}", true},
		{"interpolations only", "{{a}} {{b | uppercase}}", true},
		{"unclosed", "{{#section docs}}body", false},
		{"mismatched", "{{#unless a}}x{{/if}}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.content)
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (errors: %v)", res.Valid, tt.valid, res.Errors)
			}
			if !tt.valid && len(res.Errors) == 0 {
				t.Error("invalid result must carry errors")
			}
		})
	}
}
