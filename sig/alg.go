// Package sig maps JWS "alg" identifiers onto signing-method
// implementations and key families.
package sig

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Alg represents a supported JWS signature algorithm.
type Alg int

const (
	AlgUnknown Alg = iota

	// HMAC with SHA-2
	AlgHS256
	AlgHS384
	AlgHS512

	// RSA PKCS#1 v1.5
	AlgRS256
	AlgRS384
	AlgRS512

	// RSA-PSS
	AlgPS256
	AlgPS384
	AlgPS512

	// ECDSA over P-256/P-384 with SHA-2
	AlgES256
	AlgES384
)

var algNames = map[Alg]string{
	AlgHS256: "HS256",
	AlgHS384: "HS384",
	AlgHS512: "HS512",
	AlgRS256: "RS256",
	AlgRS384: "RS384",
	AlgRS512: "RS512",
	AlgPS256: "PS256",
	AlgPS384: "PS384",
	AlgPS512: "PS512",
	AlgES256: "ES256",
	AlgES384: "ES384",
}

func (a Alg) String() string {
	if name, ok := algNames[a]; ok {
		return name
	}
	return "unknown"
}

// FromString parses a JWS "alg" identifier.
func FromString(s string) (Alg, error) {
	for alg, name := range algNames {
		if name == s {
			return alg, nil
		}
	}
	return AlgUnknown, fmt.Errorf("unknown alg: %s", s)
}

// Names lists the supported identifiers in a stable order, for usage text.
func Names() []string {
	return []string{
		"HS256", "HS384", "HS512",
		"RS256", "RS384", "RS512",
		"PS256", "PS384", "PS512",
		"ES256", "ES384",
	}
}

// Family groups algorithms by the kind of key material they require.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyHMAC
	FamilyRSA
	FamilyECDSA
)

// Family returns the key family alg's material must belong to.
func (a Alg) Family() Family {
	switch a {
	case AlgHS256, AlgHS384, AlgHS512:
		return FamilyHMAC
	case AlgRS256, AlgRS384, AlgRS512, AlgPS256, AlgPS384, AlgPS512:
		return FamilyRSA
	case AlgES256, AlgES384:
		return FamilyECDSA
	default:
		return FamilyUnknown
	}
}

// SigningMethod returns the golang-jwt method implementing alg.
func (a Alg) SigningMethod() (jwt.SigningMethod, error) {
	mapping := map[Alg]jwt.SigningMethod{
		AlgHS256: jwt.SigningMethodHS256,
		AlgHS384: jwt.SigningMethodHS384,
		AlgHS512: jwt.SigningMethodHS512,
		AlgRS256: jwt.SigningMethodRS256,
		AlgRS384: jwt.SigningMethodRS384,
		AlgRS512: jwt.SigningMethodRS512,
		AlgPS256: jwt.SigningMethodPS256,
		AlgPS384: jwt.SigningMethodPS384,
		AlgPS512: jwt.SigningMethodPS512,
		AlgES256: jwt.SigningMethodES256,
		AlgES384: jwt.SigningMethodES384,
	}
	if method, ok := mapping[a]; ok {
		return method, nil
	}
	return nil, fmt.Errorf("unknown alg: %s", a)
}
