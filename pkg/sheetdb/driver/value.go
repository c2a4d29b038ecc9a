package driver

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// EncodeValue returns the JSON text stored for a cell value.
func EncodeValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeValue turns stored JSON text back into a cell value. Integral
// numbers come back as int64 and other numbers as float64. Text that is
// not valid JSON is returned unchanged as a string.
func DecodeValue(text string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return text
	}
	if dec.More() {
		return text
	}
	return normalize(v)
}

// IsBlank reports whether v is the empty-string sentinel.
func IsBlank(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

// ParseNumber parses a numeric string as int64 or float64.
// Anything else is returned as the original string.
func ParseNumber(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalize(t[k])
		}
		return t
	default:
		return v
	}
}
