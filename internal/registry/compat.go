package registry

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckCLIVersion reports whether the running CLI satisfies a module's
// declared constraint (e.g. ">= 0.3.0"). An empty constraint always
// passes, and so do development builds ("dev"), which have no comparable
// version.
func CheckCLIVersion(constraint, cliVersion string) error {
	if constraint == "" || cliVersion == "dev" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing CLI version %q: %w", cliVersion, err)
	}

	if !c.Check(v) {
		return fmt.Errorf("requires CLI version %s, running %s", constraint, cliVersion)
	}
	return nil
}

// CheckModule verifies a module's compatibility constraints against the
// running CLI.
func CheckModule(m *Module, cliVersion string) error {
	if m.Manifest.Requires == nil {
		return nil
	}
	if err := CheckCLIVersion(m.Manifest.Requires.CLI, cliVersion); err != nil {
		return fmt.Errorf("module %s: %w", m.Ref, err)
	}
	return nil
}
