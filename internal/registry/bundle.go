package registry

import "fmt"

// ExpandBundles resolves bundle names into the module refs they contain,
// in bundle order, deduplicated against each other and the extra refs
// appended afterwards. Every returned ref is checked to exist in the
// registry.
func (r *Registry) ExpandBundles(bundles, extraRefs []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(ref string) error {
		if seen[ref] {
			return nil
		}
		if _, ok := r.Find(ref); !ok {
			return fmt.Errorf("module %q not found under %s", ref, r.Root)
		}
		seen[ref] = true
		out = append(out, ref)
		return nil
	}

	for _, name := range bundles {
		b, ok := r.FindBundle(name)
		if !ok {
			return nil, fmt.Errorf("bundle %q not found under %s", name, r.Root)
		}
		for _, ref := range b.Manifest.Modules {
			if err := add(ref); err != nil {
				return nil, fmt.Errorf("bundle %q: %w", name, err)
			}
		}
	}

	for _, ref := range extraRefs {
		if err := add(ref); err != nil {
			return nil, err
		}
	}

	return out, nil
}
