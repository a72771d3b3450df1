// Package config manages user-level settings stored at
// ~/.claude-config/config.yaml. It provides functions to load, read, and
// write configuration keys such as the templates root override.
package config
