package keys

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/encodedmedia/jwt-cli/sig"
)

var (
	// ErrNoMatchingKey means a JWK-Set document could not be narrowed down
	// to a single key: either no entry matches the token's kid, or the
	// token carries no kid to match with.
	ErrNoMatchingKey = errors.New("no key in the JWK set matches the token kid")

	ErrInvalidRSAKey   = errors.New("invalid RSA key")
	ErrInvalidECDSAKey = errors.New("invalid ECDSA key")
)

// SigningKey resolves raw key material into a signing key for alg's family.
// HMAC algorithms use the material directly as the shared secret; RSA and
// ECDSA algorithms parse it according to format.
func SigningKey(alg sig.Alg, material []byte, format Format) (any, error) {
	switch alg.Family() {
	case sig.FamilyHMAC:
		return material, nil
	case sig.FamilyRSA:
		key, err := rsaPrivateKey(material, format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRSAKey, err)
		}
		return key, nil
	case sig.FamilyECDSA:
		key, err := ecdsaPrivateKey(material, format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidECDSAKey, err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %s", alg)
	}
}

// VerificationKey resolves raw key material into a verification key. For JWK
// documents the token header's kid selects the JWK-Set entry; public key
// documents are used as-is and private ones yield their public part.
func VerificationKey(alg sig.Alg, material []byte, format Format, kid string) (any, error) {
	if alg.Family() == sig.FamilyHMAC {
		return material, nil
	}
	if format == FormatJWK {
		selected, err := selectJWK(material, kid)
		if err != nil {
			return nil, err
		}
		material = selected
	}
	switch alg.Family() {
	case sig.FamilyRSA:
		key, err := rsaPublicKey(material, format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRSAKey, err)
		}
		return key, nil
	case sig.FamilyECDSA:
		key, err := ecdsaPublicKey(material, format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidECDSAKey, err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %s", alg)
	}
}

// selectJWK narrows a JWK or JWK-Set document down to a single JWK
// document. A document without a top-level "keys" array is already a single
// JWK and passes through untouched, kid or not. For sets the first entry
// whose kid equals the token's kid wins; no kid or no match means the
// effective key cannot be located.
func selectJWK(material []byte, kid string) ([]byte, error) {
	var doc struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(material, &doc); err != nil {
		return nil, fmt.Errorf("unparsable JWK document: %w", err)
	}
	if doc.Keys == nil {
		return material, nil
	}
	if kid == "" {
		return nil, ErrNoMatchingKey
	}
	for _, raw := range doc.Keys {
		var entry struct {
			Kid string `json:"kid"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.Kid == kid {
			return raw, nil
		}
	}
	return nil, ErrNoMatchingKey
}

func rsaPrivateKey(material []byte, format Format) (*rsa.PrivateKey, error) {
	switch format {
	case FormatPEM:
		return jwt.ParseRSAPrivateKeyFromPEM(material)
	case FormatDER:
		if key, err := x509.ParsePKCS1PrivateKey(material); err == nil {
			return key, nil
		}
		parsed, err := x509.ParsePKCS8PrivateKey(material)
		if err != nil {
			return nil, err
		}
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("DER document holds %T, not an RSA private key", parsed)
		}
		return key, nil
	case FormatJWK:
		raw, err := rawJWK(material)
		if err != nil {
			return nil, err
		}
		key, ok := raw.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("JWK holds %T, not an RSA private key", raw)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported key format %s", format)
	}
}

func rsaPublicKey(material []byte, format Format) (*rsa.PublicKey, error) {
	switch format {
	case FormatPEM:
		if key, err := jwt.ParseRSAPublicKeyFromPEM(material); err == nil {
			return key, nil
		}
		key, err := jwt.ParseRSAPrivateKeyFromPEM(material)
		if err != nil {
			return nil, err
		}
		return &key.PublicKey, nil
	case FormatDER:
		if parsed, err := x509.ParsePKIXPublicKey(material); err == nil {
			key, ok := parsed.(*rsa.PublicKey)
			if !ok {
				return nil, fmt.Errorf("DER document holds %T, not an RSA public key", parsed)
			}
			return key, nil
		}
		if key, err := x509.ParsePKCS1PublicKey(material); err == nil {
			return key, nil
		}
		key, err := rsaPrivateKey(material, FormatDER)
		if err != nil {
			return nil, err
		}
		return &key.PublicKey, nil
	case FormatJWK:
		raw, err := rawJWK(material)
		if err != nil {
			return nil, err
		}
		switch key := raw.(type) {
		case *rsa.PublicKey:
			return key, nil
		case *rsa.PrivateKey:
			return &key.PublicKey, nil
		default:
			return nil, fmt.Errorf("JWK holds %T, not an RSA key", raw)
		}
	default:
		return nil, fmt.Errorf("unsupported key format %s", format)
	}
}

func ecdsaPrivateKey(material []byte, format Format) (*ecdsa.PrivateKey, error) {
	switch format {
	case FormatPEM:
		return jwt.ParseECPrivateKeyFromPEM(material)
	case FormatDER:
		if key, err := x509.ParseECPrivateKey(material); err == nil {
			return key, nil
		}
		parsed, err := x509.ParsePKCS8PrivateKey(material)
		if err != nil {
			return nil, err
		}
		key, ok := parsed.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("DER document holds %T, not an ECDSA private key", parsed)
		}
		return key, nil
	case FormatJWK:
		raw, err := rawJWK(material)
		if err != nil {
			return nil, err
		}
		key, ok := raw.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("JWK holds %T, not an ECDSA private key", raw)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported key format %s", format)
	}
}

func ecdsaPublicKey(material []byte, format Format) (*ecdsa.PublicKey, error) {
	switch format {
	case FormatPEM:
		if key, err := jwt.ParseECPublicKeyFromPEM(material); err == nil {
			return key, nil
		}
		key, err := jwt.ParseECPrivateKeyFromPEM(material)
		if err != nil {
			return nil, err
		}
		return &key.PublicKey, nil
	case FormatDER:
		if parsed, err := x509.ParsePKIXPublicKey(material); err == nil {
			key, ok := parsed.(*ecdsa.PublicKey)
			if !ok {
				return nil, fmt.Errorf("DER document holds %T, not an ECDSA public key", parsed)
			}
			return key, nil
		}
		key, err := ecdsaPrivateKey(material, FormatDER)
		if err != nil {
			return nil, err
		}
		return &key.PublicKey, nil
	case FormatJWK:
		raw, err := rawJWK(material)
		if err != nil {
			return nil, err
		}
		switch key := raw.(type) {
		case *ecdsa.PublicKey:
			return key, nil
		case *ecdsa.PrivateKey:
			return &key.PublicKey, nil
		default:
			return nil, fmt.Errorf("JWK holds %T, not an ECDSA key", raw)
		}
	default:
		return nil, fmt.Errorf("unsupported key format %s", format)
	}
}

// rawJWK parses a single JWK document and materialises the key it encodes.
func rawJWK(material []byte) (any, error) {
	key, err := jwk.ParseKey(material)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := key.Raw(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}
