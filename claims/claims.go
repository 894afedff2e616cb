// Package claims turns heterogeneous claim inputs (key=value pairs, raw
// JSON, duration strings) into one canonical claim set.
package claims

import (
	"encoding/json"
	"strings"
	"time"
)

// Set is one token's claim mapping. JSON serialization sorts the keys, so
// rendered output is deterministic.
type Set map[string]any

// Entry is a single named claim parsed from user input.
type Entry struct {
	Name  string
	Value any
}

// ParseValue parses raw as a JSON value, falling back to reading it as a
// JSON string literal. The second return is false when both attempts fail.
func ParseValue(raw string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, true
	}
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &v); err == nil {
		return v, true
	}
	return nil, false
}

// ParseItem splits a key=value pair at the first '=' and parses the value.
// The claim name must be non-empty.
func ParseItem(item string) (Entry, bool) {
	name, value, found := strings.Cut(item, "=")
	if !found || name == "" {
		return Entry{}, false
	}
	v, ok := ParseValue(value)
	if !ok {
		return Entry{}, false
	}
	return Entry{Name: name, Value: v}, true
}

// the claims whose numeric values RenderTimestamps rewrites
var timestampClaims = []string{"iat", "nbf", "exp"}

// RenderTimestamps rewrites numeric time claims into RFC 3339 strings.
// Display only: signature validation always runs against the original
// token text, never a rendered set.
func (s Set) RenderTimestamps() {
	for _, name := range timestampClaims {
		switch ts := s[name].(type) {
		case float64:
			s[name] = time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
		case int64:
			s[name] = time.Unix(ts, 0).UTC().Format(time.RFC3339)
		}
	}
}
