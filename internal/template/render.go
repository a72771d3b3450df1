package template

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of one render pass over one file's content.
// Modified is false iff no directive or interpolation marker was touched,
// so callers can use it as an idempotence guarantee. Errors are structural
// (the content is returned unmodified); warnings are advisory.
type Result struct {
	Content             string
	Modified            bool
	DirectivesProcessed int
	Warnings            []string
	Errors              []string
}

// interpRe matches {{path}} and {{path | transform}} interpolation
// markers. Block markers never match: paths cannot start with '#' or '/'.
// At most one transform is allowed, so {{v | a | b}} stays literal.
var interpRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.-]*)\s*(?:\|\s*([A-Za-z]+)\s*)?\}\}`)

// loopNames are the variables an {{#each}} iteration adds to its scope.
var loopNames = map[string]bool{
	"item":  true,
	"index": true,
	"key":   true,
	"value": true,
}

// loopFrame layers one iteration's variables over the enclosing scope.
// Frames chain outward, so an inner loop shadows the loop names of an
// outer one while everything else still resolves through it.
type loopFrame struct {
	vars   *Map
	parent *loopFrame
}

type renderer struct {
	ctx      *Context
	count    int
	warnings []string
}

// Process renders content against ctx: block directives are resolved
// top-down in document order, then a final pass substitutes the remaining
// interpolations. On a structural parse error the original content is
// returned untouched so callers never persist a mangled file.
func Process(content string, ctx *Context) *Result {
	if ctx == nil {
		ctx = NewContext(nil)
	}

	nodes, errs := parseDirectives(content)
	if len(errs) > 0 {
		return &Result{Content: content, Errors: errs}
	}

	r := &renderer{ctx: ctx}
	out := r.renderNodes(nodes, nil)
	out = r.substituteFinal(out)
	if r.count > 0 {
		out = collapseBlankLines(out)
	}

	return &Result{
		Content:             out,
		Modified:            r.count > 0,
		DirectivesProcessed: r.count,
		Warnings:            r.warnings,
	}
}

func (r *renderer) warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// renderNodes walks a node list in document order and concatenates the
// rendered output.
func (r *renderer) renderNodes(nodes []*node, frame *loopFrame) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)
		case nodeIf:
			r.count++
			if r.evalCondition(n.expr, frame) {
				b.WriteString(r.renderNodes(n.children, frame))
			}
		case nodeUnless:
			r.count++
			ok, valid := r.evalConditionChecked(n.expr, frame)
			// An invalid condition suppresses the block; it is never inverted.
			if valid && !ok {
				b.WriteString(r.renderNodes(n.children, frame))
			}
		case nodeEach:
			r.count++
			b.WriteString(r.renderEach(n, frame))
		case nodeSection:
			// A named boundary marker with no conditional effect.
			r.count++
			b.WriteString(r.renderNodes(n.children, frame))
		}
	}
	return b.String()
}

func (r *renderer) evalCondition(expr string, frame *loopFrame) bool {
	ok, valid := r.evalConditionChecked(expr, frame)
	return valid && ok
}

// evalConditionChecked parses and evaluates a directive condition. An
// unparseable condition is a warning, not an error; the second return
// reports whether the expression was valid at all.
func (r *renderer) evalConditionChecked(expr string, frame *loopFrame) (result, valid bool) {
	parsed, err := parseExpression(expr)
	if err != nil {
		r.warn("Invalid expression %q: %v", expr, err)
		return false, false
	}
	return parsed.eval(func(path string) (Value, bool) {
		return r.resolveScoped(frame, path)
	}), true
}

// resolveScoped resolves a path, giving the loop-variable chain first shot
// at the leading segment before falling back to the root context. Only
// the reserved loop names live in frames, so unrelated top-level keys are
// never shadowed.
func (r *renderer) resolveScoped(frame *loopFrame, path string) (Value, bool) {
	seg, rest, _ := strings.Cut(path, ".")
	for f := frame; f != nil; f = f.parent {
		if base, ok := f.vars.Get(seg); ok {
			if rest == "" {
				return base, true
			}
			return lookupPath(base, rest)
		}
	}
	return r.ctx.Lookup(path)
}

// renderEach expands an {{#each}} block once per entry of the resolved
// iterable. A missing target silently yields zero iterations (the
// optional-content idiom); a present but non-iterable target additionally
// warns. Loop variables are substituted per iteration; everything else is
// left for an enclosing loop or the final pass.
func (r *renderer) renderEach(n *node, frame *loopFrame) string {
	target, found := r.resolveScoped(frame, n.expr)
	if !found {
		return ""
	}
	entries, ok := target.Items()
	if !ok {
		r.warn("Each target is not iterable: %s", n.expr)
		return ""
	}

	var b strings.Builder
	for _, entry := range entries {
		vars := NewMap()
		if entry.IsMap {
			vars.Set("key", String(entry.Key))
			vars.Set("value", entry.Value)
		} else {
			vars.Set("item", entry.Value)
			vars.Set("index", Number(float64(entry.Index)))
		}
		iter := &loopFrame{vars: vars, parent: frame}
		out := r.renderNodes(n.children, iter)
		b.WriteString(r.substituteLoop(out, iter))
	}
	return b.String()
}

// substituteLoop replaces interpolations whose leading segment is a loop
// name resolvable in the frame chain. Other references pass through
// untouched for later passes.
func (r *renderer) substituteLoop(s string, frame *loopFrame) string {
	return interpRe.ReplaceAllStringFunc(s, func(match string) string {
		path, transform := splitRef(match)
		seg, rest, _ := strings.Cut(path, ".")
		if !loopNames[seg] {
			return match
		}

		var base Value
		haveBase := false
		for f := frame; f != nil; f = f.parent {
			if v, ok := f.vars.Get(seg); ok {
				base = v
				haveBase = true
				break
			}
		}
		if !haveBase {
			return match
		}

		r.count++
		v := base
		if rest != "" {
			var ok bool
			if v, ok = lookupPath(base, rest); !ok {
				r.warn("Variable not found: %s", path)
				return ""
			}
		}
		return r.stringify(v, transform)
	})
}

// substituteFinal resolves every remaining interpolation against the root
// context. Missing variables become the empty string plus a warning.
func (r *renderer) substituteFinal(s string) string {
	return interpRe.ReplaceAllStringFunc(s, func(match string) string {
		path, transform := splitRef(match)
		r.count++
		v, ok := r.ctx.Lookup(path)
		if !ok {
			r.warn("Variable not found: %s", path)
			return ""
		}
		return r.stringify(v, transform)
	})
}

// stringify renders a value, applying the optional transform. An unknown
// transform is a no-op plus a warning.
func (r *renderer) stringify(v Value, transform string) string {
	if transform == "" {
		return v.String()
	}
	out, known := ApplyTransform(v, transform)
	if !known {
		r.warn("Unknown transform: %s", transform)
	}
	return out
}

// splitRef extracts the path and optional transform from a matched
// interpolation marker.
func splitRef(match string) (path, transform string) {
	groups := interpRe.FindStringSubmatch(match)
	return groups[1], groups[2]
}

// collapseBlankLines caps runs of blank lines at two, so removed blocks do
// not leave large gaps. Lines containing only whitespace count as blank.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
