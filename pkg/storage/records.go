package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotArray = errors.New("stored value is not a JSON array")

// Record is one element of a stored array. A nil Record marks an element
// that was not a JSON object.
type Record map[string]any

// DecodeArray splits raw into records. It fails only when raw is not valid
// JSON or its top level is not an array; malformed elements come back as nil.
func DecodeArray(raw []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("decode stored array: invalid JSON")
		}
		return nil, ErrNotArray
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("decode stored array: %w", err)
	}
	out := make([]Record, len(elems))
	for i, el := range elems {
		var m map[string]any
		if err := json.Unmarshal(el, &m); err != nil || m == nil {
			continue
		}
		out[i] = m
	}
	return out, nil
}

// String returns the value under key when it is a string, otherwise "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// StringOr returns the string under key, or def when absent or empty.
func (r Record) StringOr(key, def string) string {
	if s := r.String(key); s != "" {
		return s
	}
	return def
}

// StringSlice returns the string elements under key and whether the value
// was an array at all. Non-string elements are skipped.
func (r Record) StringSlice(key string) ([]string, bool) {
	arr, ok := r[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// DecodeStrings reads a stored array of strings, dropping non-string items.
func DecodeStrings(raw []byte) ([]string, error) {
	var arr []any
	if err := json.Unmarshal(raw, &arr); err != nil {
		if json.Valid(raw) {
			return nil, ErrNotArray
		}
		return nil, fmt.Errorf("decode stored strings: %w", err)
	}
	if arr == nil {
		return nil, ErrNotArray
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
