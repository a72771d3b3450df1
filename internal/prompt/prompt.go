// Package prompt implements the interactive terminal menus used by init
// and the module commands. All functions read from an io.Reader and write
// to an io.Writer so tests can drive them with buffers.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SelectFromList presents a numbered list and returns the selected index.
func SelectFromList(r io.Reader, w io.Writer, label string, items []string) (int, error) {
	reader := bufio.NewReader(r)

	fmt.Fprintf(w, "\n%s\n", label)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d]: ", len(items))

	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(line), len(items))
	}

	return num - 1, nil
}

// SelectMany presents a numbered list and returns the selected indices in
// the order entered. Input is comma-separated numbers; "all" selects
// everything and an empty line selects nothing.
func SelectMany(r io.Reader, w io.Writer, label string, items []string) ([]int, error) {
	reader := bufio.NewReader(r)

	fmt.Fprintf(w, "\n%s\n", label)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter numbers (comma-separated, \"all\", or empty for none): ")

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading selection: %w", err)
	}
	line = strings.TrimSpace(line)

	if line == "" {
		return nil, nil
	}
	if strings.EqualFold(line, "all") {
		indices := make([]int, len(items))
		for i := range items {
			indices[i] = i
		}
		return indices, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > len(items) {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", part, len(items))
		}
		if !seen[num-1] {
			seen[num-1] = true
			indices = append(indices, num-1)
		}
	}
	return indices, nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func Confirm(r io.Reader, w io.Writer, label string, def bool) (bool, error) {
	reader := bufio.NewReader(r)

	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(w, "%s [%s]: ", label, hint)

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q: expected y or n", strings.TrimSpace(line))
	}
}

// Input asks for a free-form value, returning fallback when the answer is
// empty.
func Input(r io.Reader, w io.Writer, label, fallback string) (string, error) {
	reader := bufio.NewReader(r)

	if fallback != "" {
		fmt.Fprintf(w, "%s [%s]: ", label, fallback)
	} else {
		fmt.Fprintf(w, "%s: ", label)
	}

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading answer: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}
