// Package template implements the directive processing engine used to
// render configuration templates. Templates mix literal text with block
// directives ({{#if}}, {{#unless}}, {{#each}}, {{#section}}) and variable
// interpolations ({{path}}, {{path | transform}}), evaluated against a
// read-only context built from project settings.
package template
