// Package scaffold copies template module files into a project's managed
// directory, rendering directive-bearing files through the template
// engine on the way.
package scaffold
