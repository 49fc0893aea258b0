package pipeline

import "strings"

// RawRecord is one untyped upstream search hit. No shape is guaranteed: any
// field may be absent, null, a string, a list, or a nested map, so every
// lookup goes through the probing helpers below.
type RawRecord map[string]any

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		if val, ok := t["@value"]; ok {
			if str, ok2 := val.(string); ok2 {
				return strings.TrimSpace(str)
			}
		}
	}
	return ""
}

func floatField(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func listField(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

func mapField(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

// firstString returns the first non-empty string value among the named keys,
// preserving the given priority order.
func (r RawRecord) firstString(keys ...string) string {
	for _, key := range keys {
		if s := stringField(r[key]); s != "" {
			return s
		}
	}
	return ""
}

// stringOr returns the field as a string, or def when absent or non-string.
func (r RawRecord) stringOr(key, def string) string {
	if s := stringField(r[key]); s != "" {
		return s
	}
	return def
}
