package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qazuor/claude-code-config-sub001/internal/branding"
	"github.com/qazuor/claude-code-config-sub001/internal/config"
	"github.com/qazuor/claude-code-config-sub001/internal/prompt"
	"github.com/qazuor/claude-code-config-sub001/internal/registry"
	"github.com/qazuor/claude-code-config-sub001/internal/scaffold"
	"github.com/qazuor/claude-code-config-sub001/internal/settings"
	"github.com/spf13/cobra"
)

var (
	initDir         string
	initName        string
	initDescription string
	initBundles     []string
	initModules     []string
	initYes         bool
	initForce       bool
)

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Project directory to initialize")
	initCmd.Flags().StringVar(&initName, "name", "", "Project name (defaults to the directory name)")
	initCmd.Flags().StringVar(&initDescription, "description", "", "Project description")
	initCmd.Flags().StringSliceVar(&initBundles, "bundle", nil, "Bundles to install (repeatable)")
	initCmd.Flags().StringSliceVar(&initModules, "module", nil, "Extra modules to install, as <kind>/<name> (repeatable)")
	initCmd.Flags().BoolVar(&initYes, "yes", false, "Skip prompts and accept defaults")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize and overwrite existing rendered files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize " + branding.TargetDir() + "/ in a project",
	Long: `Initialize a project's ` + branding.TargetDir() + `/ directory.

Creates the project settings file, then renders the selected template
modules against it. On a fresh machine the embedded starter template set
is materialized into the templates root first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func runInit(cmd *cobra.Command) error {
	projectRoot, err := filepath.Abs(initDir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	if settings.Exists(projectRoot) && !initForce {
		return fmt.Errorf("%s already exists; use --force to reinitialize", settings.Path(projectRoot))
	}

	// Make sure a templates root is available before discovery.
	templatesRoot := config.TemplatesRoot()
	if err := os.MkdirAll(templatesRoot, 0755); err != nil {
		return fmt.Errorf("creating templates root %s: %w", templatesRoot, err)
	}
	if err := scaffold.MaterializeStarter(templatesRoot); err != nil {
		return fmt.Errorf("materializing starter templates: %w", err)
	}

	reg, err := registry.Discover(templatesRoot)
	if err != nil {
		return fmt.Errorf("discovering templates: %w", err)
	}

	s, bundleNames, extraRefs, err := collectInitChoices(cmd, reg, projectRoot)
	if err != nil {
		return err
	}

	refs, err := reg.ExpandBundles(bundleNames, extraRefs)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if _, err := addRef(s, ref); err != nil {
			return err
		}
	}

	if err := settings.Save(projectRoot, s); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", settings.Path(projectRoot))

	if len(refs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No modules selected; nothing to render.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendering %d module(s):\n", len(refs))
	return renderModules(cmd.OutOrStdout(), reg, refs, projectRoot, settings.BuildContext(s), initForce)
}

// collectInitChoices resolves the project identity and module selection,
// interactively unless flags already decide them.
func collectInitChoices(cmd *cobra.Command, reg *registry.Registry, projectRoot string) (*settings.Settings, []string, []string, error) {
	name := initName
	if name == "" {
		name = filepath.Base(projectRoot)
	}
	description := initDescription
	bundleNames := initBundles
	extraRefs := initModules

	interactive := !initYes && len(initBundles) == 0 && len(initModules) == 0
	if interactive {
		in := cmd.InOrStdin()
		out := cmd.OutOrStdout()

		var err error
		if name, err = prompt.Input(in, out, "Project name", name); err != nil {
			return nil, nil, nil, err
		}
		if description, err = prompt.Input(in, out, "Description", description); err != nil {
			return nil, nil, nil, err
		}

		if bundles := reg.Bundles(); len(bundles) > 0 {
			labels := make([]string, len(bundles))
			for i, b := range bundles {
				labels[i] = b.Manifest.Name
				if b.Manifest.Description != "" {
					labels[i] += " - " + b.Manifest.Description
				}
			}
			picked, err := prompt.SelectMany(in, out, "Select bundles:", labels)
			if err != nil {
				return nil, nil, nil, err
			}
			for _, i := range picked {
				bundleNames = append(bundleNames, bundles[i].Manifest.Name)
			}
		}

		if modules := reg.Modules(); len(modules) > 0 {
			labels := make([]string, len(modules))
			for i, m := range modules {
				labels[i] = m.Ref
				if m.Manifest.Description != "" {
					labels[i] += " - " + m.Manifest.Description
				}
			}
			picked, err := prompt.SelectMany(in, out, "Select extra modules:", labels)
			if err != nil {
				return nil, nil, nil, err
			}
			for _, i := range picked {
				extraRefs = append(extraRefs, modules[i].Ref)
			}
		}
	}

	s := &settings.Settings{
		Project: settings.Project{
			Name:        name,
			Description: description,
		},
		Bundles: bundleNames,
	}
	return s, bundleNames, extraRefs, nil
}
