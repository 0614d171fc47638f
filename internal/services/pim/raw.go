package pim

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Raw wraps an arbitrary decoded JSON value and gives tolerant, typed access
// to it. Every accessor works on a nil or mistyped value.
type Raw struct {
	v any
}

func Wrap(v any) Raw {
	if r, ok := v.(Raw); ok {
		return r
	}
	return Raw{v: v}
}

// Value returns the wrapped value.
func (r Raw) Value() any {
	return r.v
}

// IsNull reports whether the value is absent or JSON null.
func (r Raw) IsNull() bool {
	return r.v == nil
}

// IsObject reports whether the value is a JSON object.
func (r Raw) IsObject() bool {
	_, ok := r.v.(map[string]any)
	return ok
}

// Get returns the member key of an object, or a null Raw.
func (r Raw) Get(key string) Raw {
	obj, ok := r.v.(map[string]any)
	if !ok {
		return Raw{}
	}
	return Raw{v: obj[key]}
}

// Path walks nested object members.
func (r Raw) Path(keys ...string) Raw {
	cur := r
	for _, k := range keys {
		cur = cur.Get(k)
	}
	return cur
}

// Items returns the elements of an array. Objects of the form
// {"data": [...]} are unwrapped. Anything else yields nil.
func (r Raw) Items() []Raw {
	switch v := r.v.(type) {
	case []any:
		items := make([]Raw, len(v))
		for i, item := range v {
			items[i] = Raw{v: item}
		}
		return items
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			return Raw{v: data}.Items()
		}
	}
	return nil
}

// IsArray reports whether Items would yield a list, even an empty one.
func (r Raw) IsArray() bool {
	switch v := r.v.(type) {
	case []any:
		return true
	case map[string]any:
		_, ok := v["data"].([]any)
		return ok
	}
	return false
}

// Fields returns the members of an object in no particular order.
func (r Raw) Fields() map[string]Raw {
	obj, ok := r.v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]Raw, len(obj))
	for k, v := range obj {
		out[k] = Raw{v: v}
	}
	return out
}

// Text stringifies scalars the way a JSON consumer would: strings as-is,
// numbers without a trailing ".0", booleans as true/false. Objects, arrays
// and null are not text.
func (r Raw) Text() (string, bool) {
	switch v := r.v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// TextOr returns Text, or fallback when the value is not text.
func (r Raw) TextOr(fallback string) string {
	if s, ok := r.Text(); ok {
		return s
	}
	return fallback
}

// NonEmpty returns Text only when it is not empty and not a zero or false
// scalar.
func (r Raw) NonEmpty() (string, bool) {
	if !r.Truthy() {
		return "", false
	}
	return r.Text()
}

// Truthy follows loose JSON truthiness: null, false, 0, NaN and "" are false.
func (r Raw) Truthy() bool {
	switch v := r.v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case int:
		return v != 0
	}
	return true
}

// IsNumber reports whether the value is a JSON number.
func (r Raw) IsNumber() bool {
	switch r.v.(type) {
	case float64, json.Number, int:
		return true
	}
	return false
}

// Number coerces numbers and numeric strings to a finite float64.
func (r Raw) Number() (float64, bool) {
	var f float64
	switch v := r.v.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// first returns the first non-empty text among values, then fallback.
func first(fallback string, values ...Raw) string {
	for _, v := range values {
		if s, ok := v.NonEmpty(); ok {
			return s
		}
	}
	return fallback
}

// coalesce returns the first value that is text, then fallback. Unlike first,
// empty strings are kept.
func coalesce(fallback string, values ...Raw) string {
	for _, v := range values {
		if s, ok := v.Text(); ok {
			return s
		}
	}
	return fallback
}
