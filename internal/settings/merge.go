package settings

// Merge deep-merges overlay onto base and returns the result. Nested
// objects merge key by key; scalars, arrays, and mismatched types are
// replaced by the overlay value. Neither input is mutated.
func Merge(base, overlay map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		existing, ok := out[k]
		if !ok {
			out[k] = v
			continue
		}
		existingMap, eok := existing.(map[string]interface{})
		overlayMap, ook := v.(map[string]interface{})
		if eok && ook {
			out[k] = Merge(existingMap, overlayMap)
			continue
		}
		out[k] = v
	}
	return out
}
