package template

import (
	"fmt"
	"strconv"
	"strings"
)

// exprKind identifies the shape of a parsed condition.
type exprKind int

const (
	exprTruthy exprKind = iota
	exprCompare
	exprAnd
	exprOr
)

// expression is a parsed directive condition. Built fresh per evaluation;
// contexts differ per file, so nothing is cached across calls.
type expression struct {
	kind    exprKind
	path    string
	negated bool
	op      string // "==" or "!="
	literal string
	quoted  bool
	left    *expression
	right   *expression
}

// parseExpression turns a condition string into a structured predicate.
// The grammar has no parentheses and no precedence: an expression is
// either [!]path, [!]path followed by ==/!= and a literal, or two
// sub-expressions joined by a single logical operator. Mixing && with ||,
// or combining ! with a comparison, is ambiguous and rejected.
func parseExpression(s string) (*expression, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty expression")
	}

	hasAnd := strings.Contains(s, "&&")
	hasOr := strings.Contains(s, "||")
	if hasAnd && hasOr {
		return nil, fmt.Errorf("mixing && and || in %q is not supported", s)
	}
	if hasAnd || hasOr {
		op := "&&"
		kind := exprAnd
		if hasOr {
			op = "||"
			kind = exprOr
		}
		idx := strings.Index(s, op)
		left, err := parseExpression(s[:idx])
		if err != nil {
			return nil, err
		}
		right, err := parseExpression(s[idx+len(op):])
		if err != nil {
			return nil, err
		}
		return &expression{kind: kind, op: op, left: left, right: right}, nil
	}

	negated := false
	if strings.HasPrefix(s, "!") {
		negated = true
		s = strings.TrimSpace(s[1:])
		if s == "" {
			return nil, fmt.Errorf("nothing to negate")
		}
	}

	// != before ==: the former contains "=".
	for _, op := range []string{"!=", "=="} {
		idx := strings.Index(s, op)
		if idx < 0 {
			continue
		}
		if negated {
			return nil, fmt.Errorf("negation combined with %s in %q is not supported", op, s)
		}
		path := strings.TrimSpace(s[:idx])
		lit := strings.TrimSpace(s[idx+len(op):])
		if path == "" || lit == "" {
			return nil, fmt.Errorf("malformed comparison %q", s)
		}
		if !validPath(path) {
			return nil, fmt.Errorf("invalid variable path %q", path)
		}
		quoted := false
		if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
			lit = lit[1 : len(lit)-1]
			quoted = true
		}
		return &expression{kind: exprCompare, path: path, op: op, literal: lit, quoted: quoted}, nil
	}

	if !validPath(s) {
		return nil, fmt.Errorf("invalid variable path %q", s)
	}
	return &expression{kind: exprTruthy, path: s, negated: negated}, nil
}

// validPath reports whether s looks like a dotted variable path.
func validPath(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// resolver resolves a dotted path to a value; the second return is false
// when the path is missing.
type resolver func(path string) (Value, bool)

// eval evaluates the predicate against resolved context values. Logical
// operators short-circuit left to right.
func (e *expression) eval(resolve resolver) bool {
	switch e.kind {
	case exprAnd:
		return e.left.eval(resolve) && e.right.eval(resolve)
	case exprOr:
		return e.left.eval(resolve) || e.right.eval(resolve)
	case exprCompare:
		v, _ := resolve(e.path)
		equal := looseEquals(v.String(), e.literal, e.quoted)
		if e.op == "!=" {
			return !equal
		}
		return equal
	default:
		v, _ := resolve(e.path)
		result := Truthy(v)
		if e.negated {
			return !result
		}
		return result
	}
}

// looseEquals compares a resolved value's string form against a literal.
// An unquoted literal compares numerically when both sides parse as
// numbers; everything else is plain string equality. Quoted literals are
// always string comparisons.
func looseEquals(resolved, literal string, quoted bool) bool {
	if !quoted {
		ln, lerr := strconv.ParseFloat(resolved, 64)
		rn, rerr := strconv.ParseFloat(literal, 64)
		if lerr == nil && rerr == nil {
			return ln == rn
		}
	}
	return resolved == literal
}
