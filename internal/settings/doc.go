// Package settings loads, validates, merges, and persists the project
// configuration file that drives template rendering, and builds the
// read-only render context from it.
package settings
