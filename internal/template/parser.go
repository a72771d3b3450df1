package template

import (
	"fmt"
	"strings"
)

// nodeKind tags a directive tree node.
type nodeKind int

const (
	nodeText nodeKind = iota
	nodeIf
	nodeUnless
	nodeEach
	nodeSection
)

// directiveName maps block node kinds to the tag name used in markers.
var directiveName = map[nodeKind]string{
	nodeIf:      "if",
	nodeUnless:  "unless",
	nodeEach:    "each",
	nodeSection: "section",
}

// kindForName is the inverse of directiveName.
var kindForName = map[string]nodeKind{
	"if":      nodeIf,
	"unless":  nodeUnless,
	"each":    nodeEach,
	"section": nodeSection,
}

// node is one element of the parsed directive tree. Block nodes carry the
// directive's expression and a children list interleaving text segments
// with nested blocks, in document order.
type node struct {
	kind     nodeKind
	expr     string // condition, iteration path, or section name
	text     string // literal text for nodeText
	pos      int    // byte offset of the opening marker
	children []*node
}

// parseDirectives scans content for block markers and builds the directive
// tree. Matching is a strict stack machine: every close marker must match
// the innermost open block, and every open block must be closed before end
// of input. The first structural problem aborts the parse; errors name the
// offending directive and its byte offset. Interpolation markers are not
// tokens here; they are handled by a separate pass after block
// resolution.
func parseDirectives(content string) ([]*node, []string) {
	root := &node{kind: nodeSection}
	stack := []*node{root}
	top := func() *node { return stack[len(stack)-1] }

	pos := 0       // scan position
	textStart := 0 // start of the pending literal text segment

	flushText := func(end int) {
		if end > textStart {
			top().children = append(top().children, &node{
				kind: nodeText,
				text: content[textStart:end],
				pos:  textStart,
			})
		}
	}

	for pos < len(content) {
		rel := strings.Index(content[pos:], "{{")
		if rel < 0 {
			break
		}
		start := pos + rel
		rest := content[start+2:]

		switch {
		case strings.HasPrefix(rest, "#"):
			name, expr, end, ok := scanOpenMarker(rest[1:])
			if !ok {
				pos = start + 2
				continue
			}
			flushText(start)
			child := &node{kind: kindForName[name], expr: expr, pos: start}
			top().children = append(top().children, child)
			stack = append(stack, child)
			pos = start + 3 + end
			textStart = pos

		case strings.HasPrefix(rest, "/"):
			name, end, ok := scanCloseMarker(rest[1:])
			if !ok {
				pos = start + 2
				continue
			}
			flushText(start)
			if len(stack) == 1 {
				return nil, []string{fmt.Sprintf("Unexpected {{/%s}} at offset %d: no open directive", name, start)}
			}
			open := top()
			if directiveName[open.kind] != name {
				return nil, []string{fmt.Sprintf("Mismatched {{/%s}} at offset %d: expected {{/%s}}", name, start, directiveName[open.kind])}
			}
			stack = stack[:len(stack)-1]
			pos = start + 3 + end
			textStart = pos

		default:
			// Interpolation or stray braces; not a block token.
			pos = start + 2
		}
	}

	if len(stack) > 1 {
		// Report the earliest directive left open.
		open := stack[1]
		return nil, []string{fmt.Sprintf("Unclosed directive {{#%s}} at offset %d", directiveName[open.kind], open.pos)}
	}

	flushText(len(content))
	return root.children, nil
}

// scanOpenMarker reads "name expr}}" from the text following "{{#". It
// returns the tag name, the trimmed expression, and the offset just past
// the closing braces. ok is false when the text is not a well-formed open
// marker for a known directive.
func scanOpenMarker(s string) (name, expr string, end int, ok bool) {
	space := strings.IndexByte(s, ' ')
	if space < 0 {
		return "", "", 0, false
	}
	name = s[:space]
	if _, known := kindForName[name]; !known {
		return "", "", 0, false
	}
	close := strings.Index(s[space:], "}}")
	if close < 0 {
		return "", "", 0, false
	}
	expr = strings.TrimSpace(s[space : space+close])
	return name, expr, space + close + 2, true
}

// scanCloseMarker reads "name}}" from the text following "{{/".
func scanCloseMarker(s string) (name string, end int, ok bool) {
	close := strings.Index(s, "}}")
	if close < 0 {
		return "", 0, false
	}
	name = s[:close]
	if _, known := kindForName[name]; !known {
		return "", 0, false
	}
	return name, close + 2, true
}

// ValidationResult is the outcome of a structural template check.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks that every block directive in content is well formed and
// balanced. It needs no context, so it can lint templates before they
// ship.
func Validate(content string) *ValidationResult {
	_, errs := parseDirectives(content)
	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
