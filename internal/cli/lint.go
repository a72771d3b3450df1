package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/qazuor/claude-code-config-sub001/internal/config"
	"github.com/qazuor/claude-code-config-sub001/internal/scaffold"
	"github.com/qazuor/claude-code-config-sub001/internal/settings"
	"github.com/qazuor/claude-code-config-sub001/internal/template"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "Check templates for structural errors",
	Long: `Check template files for malformed or unbalanced directives without
rendering them. With no arguments the whole templates root is checked.
A ` + settings.FileName + ` argument is validated against the settings schema
instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			paths = []string{config.TemplatesRoot()}
		}

		problems := 0
		checked := 0
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			if !info.IsDir() {
				n, err := lintFile(cmd, path)
				if err != nil {
					return err
				}
				checked++
				problems += n
				continue
			}

			err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !scaffold.IsRenderable(p) {
					return nil
				}
				n, err := lintFile(cmd, p)
				if err != nil {
					return err
				}
				checked++
				problems += n
				return nil
			})
			if err != nil {
				return fmt.Errorf("walking %s: %w", path, err)
			}
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) in %d file(s)", problems, checked)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) checked, no problems found.\n", checked)
		return nil
	},
}

// lintFile checks one file and returns the number of problems found.
// Settings files go through schema validation, everything else through
// the template structure check.
func lintFile(cmd *cobra.Command, path string) (int, error) {
	if filepath.Base(path) == settings.FileName {
		res, err := settings.ValidateFile(path)
		if err != nil {
			return 0, err
		}
		for _, issue := range res.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", path, issue.Path, issue.Message)
		}
		return len(res.Issues), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	res := template.Validate(string(data))
	for _, e := range res.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, e)
	}
	return len(res.Errors), nil
}
