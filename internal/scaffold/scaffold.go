package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qazuor/claude-code-config-sub001/internal/template"
)

// manifestFileName is the registry manifest, never copied into a project.
const manifestFileName = "module.yaml"

// Options configures a render run.
type Options struct {
	Ignore []string // glob patterns relative to the source root
	Force  bool     // overwrite files that already exist at the destination
}

// FileReport is the outcome for a single source file.
type FileReport struct {
	Path     string // slash-relative path under the destination
	Rendered bool   // went through the template engine
	Written  bool
	Skipped  bool // destination existed and Force was off
	Warnings []string
	Errors   []string
}

// Result aggregates per-file reports for one render run.
type Result struct {
	Files []FileReport
}

// Written counts files written to the destination.
func (r *Result) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Written {
			n++
		}
	}
	return n
}

// WarningCount counts warnings across all files.
func (r *Result) WarningCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Warnings)
	}
	return n
}

// Errors returns "path: message" strings for every blocking error.
func (r *Result) Errors() []string {
	var out []string
	for _, f := range r.Files {
		for _, e := range f.Errors {
			out = append(out, f.Path+": "+e)
		}
	}
	return out
}

// Render copies the files of srcDir into destDir, passing renderable
// files through the engine with ctx. A file whose render reports
// structural errors is never written: the error is recorded and the
// destination left untouched, so a broken template cannot corrupt a
// previously good file. Evaluation warnings are advisory and do not block
// the write.
func Render(srcDir, destDir string, ctx *template.Context, opts Options) (*Result, error) {
	ignores, err := CompileIgnores(opts.Ignore)
	if err != nil {
		return nil, err
	}

	files, err := listFiles(srcDir, ignores)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, rel := range files {
		report := FileReport{Path: rel}

		src := filepath.Join(srcDir, filepath.FromSlash(rel))
		dst := filepath.Join(destDir, filepath.FromSlash(rel))

		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", src, err)
		}

		out := data
		if IsRenderable(rel) {
			report.Rendered = true
			res := template.Process(string(data), ctx)
			report.Warnings = res.Warnings
			report.Errors = res.Errors
			if len(res.Errors) > 0 {
				result.Files = append(result.Files, report)
				continue
			}
			out = []byte(res.Content)
		}

		if _, err := os.Stat(dst); err == nil && !opts.Force {
			report.Skipped = true
			result.Files = append(result.Files, report)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, out, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", dst, err)
		}
		report.Written = true
		result.Files = append(result.Files, report)
	}

	return result, nil
}
