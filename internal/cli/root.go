package cli

import (
	"github.com/qazuor/claude-code-config-sub001/internal/branding"
	"github.com/qazuor/claude-code-config-sub001/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds and maintains the ` + branding.TargetDir() + `/ directory of a
project: agents, commands, skills, and docs rendered from templates
against the project's settings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// User config (templates root override, env vars) is read once
		// for every command.
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
