package cli

import (
	"fmt"
	"path/filepath"

	"github.com/qazuor/claude-code-config-sub001/internal/branding"
	"github.com/qazuor/claude-code-config-sub001/internal/settings"
	"github.com/spf13/cobra"
)

var applyDir string

func init() {
	applyCmd.Flags().StringVar(&applyDir, "dir", ".", "Project directory")
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Re-render installed modules against current settings",
	Long: `Re-render every installed module into ` + branding.TargetDir() + `/ using the
current project settings. Rendered files are overwritten; files whose
templates have structural errors are reported and left unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := filepath.Abs(applyDir)
		if err != nil {
			return fmt.Errorf("resolving project directory: %w", err)
		}

		if !settings.Exists(projectRoot) {
			return fmt.Errorf("%s not found; run '%s init' first", settings.Path(projectRoot), branding.CLIName())
		}

		res, err := settings.ValidateFile(settings.Path(projectRoot))
		if err != nil {
			return fmt.Errorf("validating settings: %w", err)
		}
		if !res.Valid {
			for _, issue := range res.Issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", issue.Path, issue.Message)
			}
			return fmt.Errorf("settings file is invalid; fix %s and retry", settings.Path(projectRoot))
		}

		s, err := settings.Load(projectRoot)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		reg, err := openRegistry()
		if err != nil {
			return err
		}

		refs := settingsRefs(s)
		if len(refs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No modules installed; nothing to render.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rendering %d module(s):\n", len(refs))
		return renderModules(cmd.OutOrStdout(), reg, refs, projectRoot, settings.BuildContext(s), true)
	},
}
