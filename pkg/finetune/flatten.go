package finetune

import "strconv"

// Flatten converts a decoded JSON value into a single-level map whose
// keys are dotted paths. Array elements are keyed by index, so
// {"data":[{"level":"info"}]} becomes {"data.0.level":"info"}. Empty
// objects and arrays are kept as leaves under their own path. All
// wrapper operations share this one implementation; callers wanting
// the flat view re-marshal a typed result and pass it here.
func Flatten(v any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", v)
	return out
}

func flattenInto(out map[string]any, prefix string, v any) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			out[prefix] = t
			return
		}
		for k, child := range t {
			flattenInto(out, joinPath(prefix, k), child)
		}
	case []any:
		if len(t) == 0 {
			out[prefix] = t
			return
		}
		for i, child := range t {
			flattenInto(out, joinPath(prefix, strconv.Itoa(i)), child)
		}
	default:
		out[prefix] = v
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
