package payload

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// String trims and stringifies scalar values. Objects, arrays and nil yield
// an empty string.
func String(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return strings.TrimSpace(typed.String())
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(typed)
	default:
		return ""
	}
}

// Strings returns the trimmed, non-empty string elements of an array value.
// Anything that is not an array yields nil.
func Strings(value any) []string {
	items, ok := asSlice(value)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := String(item); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Bool is true only for the boolean true or the string "true" in any case.
func Bool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		return strings.EqualFold(strings.TrimSpace(typed), "true")
	default:
		return false
	}
}

// Lookup returns the first present, non-nil value among keys.
func Lookup(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := m[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		if typed == nil {
			return nil, false
		}
		return typed, true
	case map[any]any:
		if typed == nil {
			return nil, false
		}
		return StringKeys(typed), true
	default:
		return nil, false
	}
}

func asSlice(value any) ([]any, bool) {
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []string:
		out := make([]any, len(typed))
		for i, s := range typed {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, m := range typed {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

// StringKeys converts YAML style maps with interface keys, recursively, into
// JSON compatible maps.
func StringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[fmt.Sprint(key)] = Normalize(value)
	}
	return out
}

// Normalize rewrites nested map[any]any values into map[string]any so the
// value can be JSON encoded.
func Normalize(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		return StringKeys(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Normalize(item)
		}
		return out
	default:
		return value
	}
}
