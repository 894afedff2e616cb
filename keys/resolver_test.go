package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/require"

	"github.com/encodedmedia/jwt-cli/sig"
)

func rsaTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func ecdsaTestKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func pemEncode(blockType string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
}

func jwkDocument(t *testing.T, raw any, kid string) []byte {
	t.Helper()
	key, err := jwk.FromRaw(raw)
	require.NoError(t, err)
	if kid != "" {
		require.NoError(t, key.Set(jwk.KeyIDKey, kid))
	}
	doc, err := json.Marshal(key)
	require.NoError(t, err)
	return doc
}

func jwkSetDocument(t *testing.T, entries ...[]byte) []byte {
	t.Helper()
	set := struct {
		Keys []json.RawMessage `json:"keys"`
	}{}
	for _, entry := range entries {
		set.Keys = append(set.Keys, json.RawMessage(entry))
	}
	doc, err := json.Marshal(set)
	require.NoError(t, err)
	return doc
}

func TestHMACKeysUseMaterialDirectly(t *testing.T) {
	secret := []byte("hunter2")
	for _, format := range []Format{FormatPEM, FormatDER, FormatJWK} {
		signing, err := SigningKey(sig.AlgHS256, secret, format)
		require.NoError(t, err)
		require.Equal(t, secret, signing)

		verification, err := VerificationKey(sig.AlgHS512, secret, format, "")
		require.NoError(t, err)
		require.Equal(t, secret, verification)
	}
}

func TestRSASigningKey(t *testing.T) {
	key := rsaTestKey(t)

	tests := []struct {
		name     string
		material []byte
		format   Format
	}{
		{
			name:     "pkcs1 pem",
			material: pemEncode("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key)),
			format:   FormatPEM,
		},
		{
			name:     "pkcs1 der",
			material: x509.MarshalPKCS1PrivateKey(key),
			format:   FormatDER,
		},
		{
			name:     "jwk",
			material: jwkDocument(t, key, ""),
			format:   FormatJWK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SigningKey(sig.AlgRS256, tt.material, tt.format)
			require.NoError(t, err)
			require.Equal(t, key.N, got.(*rsa.PrivateKey).N)
		})
	}
}

func TestRSAVerificationKey(t *testing.T) {
	key := rsaTestKey(t)
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	tests := []struct {
		name     string
		material []byte
		format   Format
	}{
		{name: "public pem", material: pemEncode("PUBLIC KEY", pub), format: FormatPEM},
		{name: "private pem yields public part", material: pemEncode("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key)), format: FormatPEM},
		{name: "public der", material: pub, format: FormatDER},
		{name: "private der yields public part", material: x509.MarshalPKCS1PrivateKey(key), format: FormatDER},
		{name: "private jwk yields public part", material: jwkDocument(t, key, ""), format: FormatJWK},
		{name: "public jwk", material: jwkDocument(t, &key.PublicKey, ""), format: FormatJWK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerificationKey(sig.AlgPS256, tt.material, tt.format, "")
			require.NoError(t, err)
			require.Equal(t, key.N, got.(*rsa.PublicKey).N)
		})
	}
}

func TestECDSAKeys(t *testing.T) {
	key := ecdsaTestKey(t)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	signing, err := SigningKey(sig.AlgES256, pemEncode("EC PRIVATE KEY", der), FormatPEM)
	require.NoError(t, err)
	require.Equal(t, key.D, signing.(*ecdsa.PrivateKey).D)

	signing, err = SigningKey(sig.AlgES256, der, FormatDER)
	require.NoError(t, err)
	require.Equal(t, key.D, signing.(*ecdsa.PrivateKey).D)

	signing, err = SigningKey(sig.AlgES256, jwkDocument(t, key, ""), FormatJWK)
	require.NoError(t, err)
	require.Equal(t, key.D, signing.(*ecdsa.PrivateKey).D)

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	verification, err := VerificationKey(sig.AlgES256, pemEncode("PUBLIC KEY", pub), FormatPEM, "")
	require.NoError(t, err)
	require.Equal(t, key.X, verification.(*ecdsa.PublicKey).X)
}

func TestJWKSetSelection(t *testing.T) {
	keyA := rsaTestKey(t)
	keyB := rsaTestKey(t)
	set := jwkSetDocument(t,
		jwkDocument(t, keyA, "a"),
		jwkDocument(t, keyB, "b"),
	)

	t.Run("kid selects the matching entry even when second", func(t *testing.T) {
		got, err := VerificationKey(sig.AlgRS256, set, FormatJWK, "b")
		require.NoError(t, err)
		require.Equal(t, keyB.N, got.(*rsa.PublicKey).N)
	})

	t.Run("first match wins", func(t *testing.T) {
		got, err := VerificationKey(sig.AlgRS256, set, FormatJWK, "a")
		require.NoError(t, err)
		require.Equal(t, keyA.N, got.(*rsa.PublicKey).N)
	})

	t.Run("no match is a key-resolution error", func(t *testing.T) {
		_, err := VerificationKey(sig.AlgRS256, set, FormatJWK, "c")
		require.ErrorIs(t, err, ErrNoMatchingKey)
	})

	t.Run("set without kid cannot be disambiguated", func(t *testing.T) {
		_, err := VerificationKey(sig.AlgRS256, set, FormatJWK, "")
		require.ErrorIs(t, err, ErrNoMatchingKey)
	})

	t.Run("single JWK ignores kid", func(t *testing.T) {
		got, err := VerificationKey(sig.AlgRS256, jwkDocument(t, keyA, "a"), FormatJWK, "whatever")
		require.NoError(t, err)
		require.Equal(t, keyA.N, got.(*rsa.PublicKey).N)
	})
}

func TestMalformedMaterial(t *testing.T) {
	_, err := SigningKey(sig.AlgRS256, []byte("garbage"), FormatPEM)
	require.ErrorIs(t, err, ErrInvalidRSAKey)

	_, err = SigningKey(sig.AlgES256, []byte("garbage"), FormatPEM)
	require.ErrorIs(t, err, ErrInvalidECDSAKey)

	_, err = VerificationKey(sig.AlgRS256, []byte("{}"), FormatJWK, "")
	require.ErrorIs(t, err, ErrInvalidRSAKey)

	// an ECDSA JWK is not RSA material
	ecDoc := jwkDocument(t, ecdsaTestKey(t), "")
	_, err = SigningKey(sig.AlgRS256, ecDoc, FormatJWK)
	require.ErrorIs(t, err, ErrInvalidRSAKey)
}
