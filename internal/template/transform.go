package template

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ApplyTransform applies a named transform to a resolved value and returns
// its string form. The second return is false for unknown transform names,
// in which case the untransformed string form is returned so callers can
// degrade to a no-op.
func ApplyTransform(v Value, name string) (string, bool) {
	switch name {
	case "lowercase":
		return strings.ToLower(v.String()), true
	case "uppercase":
		return strings.ToUpper(v.String()), true
	case "capitalize", "title":
		return capitalizeWords(v.String()), true
	case "kebab":
		return strings.Join(splitWords(v.String()), "-"), true
	case "snake":
		return strings.Join(splitWords(v.String()), "_"), true
	case "camel":
		return camelCase(v.String(), false), true
	case "pascal":
		return camelCase(v.String(), true), true
	case "count":
		return strconv.Itoa(valueLength(v)), true
	case "join":
		return strings.Join(elementStrings(v), ", "), true
	case "joinlines":
		return strings.Join(elementStrings(v), "\n"), true
	case "bullet":
		lines := elementStrings(v)
		for i, s := range lines {
			lines[i] = "- " + s
		}
		return strings.Join(lines, "\n"), true
	case "numbered":
		lines := elementStrings(v)
		for i, s := range lines {
			lines[i] = fmt.Sprintf("%d. %s", i+1, s)
		}
		return strings.Join(lines, "\n"), true
	}
	return v.String(), false
}

// valueLength returns the element count for lists and the character count
// for everything else (via the string form).
func valueLength(v Value) int {
	if v.kind == KindList {
		return len(v.list)
	}
	return len([]rune(v.String()))
}

// elementStrings returns the string forms of a list's elements. Scalars
// act as a one-element list so the array transforms stay total.
func elementStrings(v Value) []string {
	if v.kind == KindList {
		out := make([]string, len(v.list))
		for i, elem := range v.list {
			out[i] = elem.String()
		}
		return out
	}
	return []string{v.String()}
}

// capitalizeWords upper-cases the first letter of each space-separated
// word, leaving the rest of the word untouched.
func capitalizeWords(s string) string {
	var b strings.Builder
	atStart := true
	for _, r := range s {
		if atStart && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			atStart = false
			continue
		}
		if r == ' ' {
			atStart = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

// camelCase joins the words of s, capitalizing every word. With pascal
// false the first word keeps its lowercase form.
func camelCase(s string, pascal bool) string {
	words := splitWords(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 && !pascal {
			b.WriteString(w)
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// splitWords breaks an identifier into lowercase words. Boundaries come
// from spaces, hyphens, underscores, and camel humps ("HTTPServer" splits
// as "http", "server").
func splitWords(s string) []string {
	var words []string
	runes := []rune(s)
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = nil
		}
	}

	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '_':
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (len(cur) > 0 && nextLower) {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}
