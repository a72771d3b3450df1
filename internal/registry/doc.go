// Package registry discovers template modules and bundles under a
// templates root and resolves bundle references into module lists.
package registry
