package pagination

import "strings"

// lookup resolves a dotted path such as "messages.paging" in a decoded
// response. Nested objects may be plain maps or Response values.
func lookup(m map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = m
	for _, key := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func lookupObject(m map[string]any, path string) (map[string]any, bool) {
	v, ok := lookup(m, path)
	if !ok {
		return nil, false
	}
	return asObject(v)
}

func asObject(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, true
	case Response:
		return o, true
	case Args:
		return o, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// nextCursor returns response_metadata.next_cursor, empty when absent.
func nextCursor(resp Response) string {
	v, ok := lookup(resp, "response_metadata.next_cursor")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
