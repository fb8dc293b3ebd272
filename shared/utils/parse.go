package utils

import (
	"bytes"
	"encoding/json"
)

// ParseArray normalises a value that should be a list of strings but may arrive as a
// JSON-encoded string, a raw JSON value, or nothing at all. Anything that cannot be read
// as a list of strings yields an empty, non-nil slice. A non-nil []string is returned as is.
func ParseArray(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		if val == nil {
			return []string{}
		}
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return []string{}
			}
			out = append(out, s)
		}
		return out
	case string:
		return decodeStrings([]byte(val))
	case json.RawMessage:
		return parseRaw(val)
	case []byte:
		return parseRaw(val)
	default:
		return []string{}
	}
}

// parseRaw accepts a raw JSON value: either an array, or a string holding an encoded array.
func parseRaw(raw []byte) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return []string{}
		}
		return decodeStrings([]byte(inner))
	}
	return decodeStrings(raw)
}

func decodeStrings(data []byte) []string {
	var out []string
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
