package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/qazuor/claude-code-config-sub001/internal/settings"
	"github.com/spf13/cobra"
)

var (
	modulesKindFilter string
	modulesJSON       bool
	modulesDir        string
	removeKeepFiles   bool
)

func init() {
	modulesListCmd.Flags().StringVar(&modulesKindFilter, "kind", "", "Filter by kind (agent, command, skill, doc)")
	modulesListCmd.Flags().BoolVar(&modulesJSON, "json", false, "Output in JSON format")
	modulesCmd.PersistentFlags().StringVar(&modulesDir, "dir", ".", "Project directory")
	modulesRemoveCmd.Flags().BoolVar(&removeKeepFiles, "keep-files", false, "Keep rendered files on disk")
	modulesCmd.AddCommand(modulesListCmd)
	modulesCmd.AddCommand(modulesAddCmd)
	modulesCmd.AddCommand(modulesRemoveCmd)
	rootCmd.AddCommand(modulesCmd)
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List and manage template modules",
}

// moduleListEntry represents one module row for display.
type moduleListEntry struct {
	Ref         string `json:"ref"`
	Kind        string `json:"kind"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Installed   bool   `json:"installed"`
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available modules and bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}

		installed := map[string]bool{}
		if projectRoot, err := filepath.Abs(modulesDir); err == nil && settings.Exists(projectRoot) {
			if s, err := settings.Load(projectRoot); err == nil {
				for _, ref := range settingsRefs(s) {
					installed[ref] = true
				}
			}
		}

		var entries []moduleListEntry
		for _, m := range reg.Modules() {
			if modulesKindFilter != "" && m.Manifest.Kind != modulesKindFilter {
				continue
			}
			entries = append(entries, moduleListEntry{
				Ref:         m.Ref,
				Kind:        m.Manifest.Kind,
				Version:     m.Manifest.Version,
				Description: m.Manifest.Description,
				Installed:   installed[m.Ref],
			})
		}

		if modulesJSON {
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling module list: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No modules found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "REF\tKIND\tVERSION\tINSTALLED\tDESCRIPTION")
		for _, e := range entries {
			mark := ""
			if e.Installed {
				mark = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Ref, e.Kind, e.Version, mark, e.Description)
		}
		w.Flush()

		if bundles := reg.Bundles(); len(bundles) > 0 && modulesKindFilter == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "\nBundles:")
			for _, b := range bundles {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s (%d modules)", b.Manifest.Name, len(b.Manifest.Modules))
				if b.Manifest.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), " - %s", b.Manifest.Description)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
		}
		return nil
	},
}

var modulesAddCmd = &cobra.Command{
	Use:   "add <kind>/<name>...",
	Short: "Install modules into the project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := filepath.Abs(modulesDir)
		if err != nil {
			return fmt.Errorf("resolving project directory: %w", err)
		}
		s, err := settings.Load(projectRoot)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		reg, err := openRegistry()
		if err != nil {
			return err
		}

		var added []string
		for _, ref := range args {
			if _, ok := reg.Find(ref); !ok {
				return fmt.Errorf("module %s not found in templates root", ref)
			}
			fresh, err := addRef(s, ref)
			if err != nil {
				return err
			}
			if !fresh {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already installed\n", ref)
				continue
			}
			added = append(added, ref)
		}

		if len(added) == 0 {
			return nil
		}

		if err := settings.Save(projectRoot, s); err != nil {
			return fmt.Errorf("writing settings: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Rendering %d module(s):\n", len(added))
		return renderModules(cmd.OutOrStdout(), reg, added, projectRoot, settings.BuildContext(s), false)
	},
}

var modulesRemoveCmd = &cobra.Command{
	Use:   "remove <kind>/<name>...",
	Short: "Remove modules from the project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectRoot, err := filepath.Abs(modulesDir)
		if err != nil {
			return fmt.Errorf("resolving project directory: %w", err)
		}
		s, err := settings.Load(projectRoot)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		changed := false
		for _, ref := range args {
			removed, err := removeRef(s, ref)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not installed\n", ref)
				continue
			}
			changed = true

			if !removeKeepFiles {
				dest := moduleDest(projectRoot, ref)
				if err := os.RemoveAll(dest); err != nil {
					return fmt.Errorf("removing %s: %w", dest, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", ref)
		}

		if !changed {
			return nil
		}
		if err := settings.Save(projectRoot, s); err != nil {
			return fmt.Errorf("writing settings: %w", err)
		}
		return nil
	},
}
