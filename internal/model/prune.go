package model

// Prune recursively removes empty values from a generic structure: map
// entries whose value is an empty string, nil, or numeric zero are dropped,
// and containers that become empty after their children are pruned are
// dropped as well. A legitimately-zero amount is therefore indistinguishable
// from an absent one in the pruned output; that asymmetry is inherited from
// the data-cleaning rules this pipeline implements and callers must not rely
// on zero-valued fields surviving serialization.
//
// Prune is idempotent: pruning an already-pruned structure is a no-op.
func Prune(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			pruned := Prune(child)
			if isEmpty(pruned) {
				continue
			}
			out[k] = pruned
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, child := range val {
			pruned := Prune(child)
			if isEmpty(pruned) {
				continue
			}
			out = append(out, pruned)
		}
		return out
	default:
		return v
	}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case int:
		return val == 0
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
