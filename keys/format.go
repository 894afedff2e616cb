// Package keys resolves user-supplied secret references into signing and
// verification keys for a given algorithm family.
package keys

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format tells the resolver how to interpret raw key bytes.
type Format int

const (
	FormatPEM Format = iota
	FormatDER
	FormatJWK
)

func (f Format) String() string {
	switch f {
	case FormatPEM:
		return "pem"
	case FormatDER:
		return "der"
	case FormatJWK:
		return "jwk"
	default:
		return "unknown"
	}
}

// ParseFormat validates an explicit key-format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pem":
		return FormatPEM, nil
	case "der":
		return FormatDER, nil
	case "jwk":
		return FormatJWK, nil
	default:
		return FormatPEM, fmt.Errorf("unsupported key format %q: pem|der|jwk are supported", s)
	}
}

// Infer decides the key format without touching the filesystem. An explicit
// format always wins; otherwise file-indirected references are classified by
// extension and everything else defaults to PEM.
func Infer(reference, explicit string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	if !strings.HasPrefix(reference, "@") {
		return FormatPEM, nil
	}
	switch strings.ToLower(filepath.Ext(reference)) {
	case ".pem", ".cer", ".key":
		return FormatPEM, nil
	case ".der":
		return FormatDER, nil
	case ".jwk":
		return FormatJWK, nil
	default:
		return FormatPEM, nil
	}
}
