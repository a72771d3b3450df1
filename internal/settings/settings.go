package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qazuor/claude-code-config-sub001/internal/branding"
)

// FileName is the settings file name inside the managed directory.
const FileName = "ccconfig.json"

// Dir returns the managed directory for a project (e.g., "<root>/.claude").
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, branding.TargetDir())
}

// Path returns the full settings file path for a project.
func Path(projectRoot string) string {
	return filepath.Join(Dir(projectRoot), FileName)
}

// Exists reports whether a project has a settings file.
func Exists(projectRoot string) bool {
	_, err := os.Stat(Path(projectRoot))
	return err == nil
}

// Load reads and decodes the settings file for a project.
func Load(projectRoot string) (*Settings, error) {
	data, err := os.ReadFile(Path(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", Path(projectRoot), err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", Path(projectRoot), err)
	}
	return &s, nil
}

// Save writes the settings file, creating the managed directory if needed.
// Output is indented JSON with a trailing newline so the file diffs well.
func Save(projectRoot string, s *Settings) error {
	dir := Dir(projectRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(Path(projectRoot), data, 0644); err != nil {
		return fmt.Errorf("writing settings %s: %w", Path(projectRoot), err)
	}
	return nil
}

// Update applies a partial JSON document on top of the stored settings
// using a deep merge, then saves the result. The merged document is
// decoded back into the typed structure so malformed updates fail before
// anything is written.
func Update(projectRoot string, partial []byte) (*Settings, error) {
	data, err := os.ReadFile(Path(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", Path(projectRoot), err)
	}

	var base, overlay map[string]interface{}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", Path(projectRoot), err)
	}
	if err := json.Unmarshal(partial, &overlay); err != nil {
		return nil, fmt.Errorf("parsing update: %w", err)
	}

	merged := Merge(base, overlay)
	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding merged settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(mergedJSON, &s); err != nil {
		return nil, fmt.Errorf("merged settings are invalid: %w", err)
	}

	if err := Save(projectRoot, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
