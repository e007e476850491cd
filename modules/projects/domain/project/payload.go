package project

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload is the flat wire object of one wizard save request. Presence of a
// key is significant, so lookups distinguish "absent" from "null".
type Payload map[string]any

// Has reports whether the field is explicitly present, even when null.
func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// String returns the field as a trimmed string. Absent, null or non-string
// values report false.
func (p Payload) String(field string) (string, bool) {
	v, ok := p[field]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// Int returns the field as an integer, accepting the representations JSON
// decoding can produce: numbers, numeric strings and json.Number.
func (p Payload) Int(field string) (int64, bool) {
	v, ok := p[field]
	if !ok || v == nil {
		return 0, false
	}
	return CoerceInt(v)
}

// Bool returns the field as a boolean.
func (p Payload) Bool(field string) (bool, bool) {
	v, ok := p[field]
	if !ok || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// CoerceInt converts a wire value to an integer regardless of whether it
// arrived as a JSON number or a numeric string.
func CoerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
