package claims

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/encodedmedia/jwt-cli/logx"
)

// BuildParams carries every claim input for one encode invocation. Empty
// string fields mean the claim was not supplied.
type BuildParams struct {
	Now        time.Time
	NoIssuedAt bool
	Expiry     string // UNIX timestamp or duration string
	NotBefore  string // UNIX timestamp or duration string
	Issuer     string
	Subject    string
	Audience   string
	ID         string
	Pairs      []string // repeated key=value inputs, in command-line order
	JSON       string   // bulk JSON object
}

// Build merges the claim inputs into one set. Later sources overwrite
// earlier ones: iat, exp, registered claims, nbf, key=value pairs, then the
// bulk JSON object. A claim whose value fails to parse is dropped with a
// warning rather than failing the build; only malformed bulk JSON is fatal.
func (p BuildParams) Build() (Set, error) {
	set := Set{}

	if !p.NoIssuedAt {
		set["iat"] = p.Now.Unix()
	}
	p.setTime(set, "exp", p.Expiry)

	registered := []struct{ name, value string }{
		{"iss", p.Issuer},
		{"sub", p.Subject},
		{"aud", p.Audience},
		{"jti", p.ID},
	}
	for _, c := range registered {
		if c.value == "" {
			continue
		}
		if v, ok := ParseValue(c.value); ok {
			set[c.name] = v
		} else {
			logx.L().Warn("dropping claim with unparsable value", "claim", c.name, "value", c.value)
		}
	}
	p.setTime(set, "nbf", p.NotBefore)

	for _, item := range p.Pairs {
		entry, ok := ParseItem(item)
		if !ok {
			logx.L().Warn("dropping unparsable key=value claim", "pair", item)
			continue
		}
		set[entry.Name] = entry.Value
	}

	if p.JSON != "" {
		var v any
		if err := json.Unmarshal([]byte(p.JSON), &v); err != nil {
			return nil, fmt.Errorf("invalid JSON provided: %w", err)
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, errors.New("invalid JSON provided: the payload must be a JSON object")
		}
		maps.Copy(set, obj)
	}

	return set, nil
}

func (p BuildParams) setTime(set Set, name, value string) {
	if value == "" {
		return
	}
	ts, ok := ResolveTime(value, p.Now)
	if !ok {
		logx.L().Warn("dropping time claim: value is neither a UNIX timestamp nor a duration", "claim", name, "value", value)
		return
	}
	set[name] = ts
}
