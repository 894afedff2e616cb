// Package token orchestrates claim building, key resolution, and the
// signing/verification collaborator into the encode and decode flows.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/encodedmedia/jwt-cli/claims"
	"github.com/encodedmedia/jwt-cli/keys"
	"github.com/encodedmedia/jwt-cli/sig"
)

// leeway applied to exp and nbf during verification
const leeway = 1000 * time.Second

// EncodeParams describes one token to sign.
type EncodeParams struct {
	Alg    sig.Alg
	Kid    string // optional header kid
	Claims claims.Set
	Secret string // key reference, literal or @path
	Format string // explicit key format, empty to infer
}

// Encode signs the claim set and returns the compact token text.
func Encode(p EncodeParams) (string, error) {
	method, err := p.Alg.SigningMethod()
	if err != nil {
		return "", err
	}
	format, err := keys.Infer(p.Secret, p.Format)
	if err != nil {
		return "", err
	}
	material, err := keys.Load(p.Secret)
	if err != nil {
		return "", err
	}
	key, err := keys.SigningKey(p.Alg, material, format)
	if err != nil {
		return "", err
	}

	tok := jwt.NewWithClaims(method, jwt.MapClaims(p.Claims))
	if p.Kid != "" {
		tok.Header["kid"] = p.Kid
	}
	return tok.SignedString(key)
}

// Data is one token's header and claims, read without signature validation.
type Data struct {
	Header map[string]any `json:"header"`
	Claims claims.Set     `json:"payload"`
}

// DecodeParams describes one token to extract and verify.
type DecodeParams struct {
	Token        string
	Alg          sig.Alg
	Secret       string // empty skips verification entirely
	Format       string
	IgnoreExpiry bool
	ISODates     bool
}

// Result carries the two independent outcomes of one decode: what the token
// says (the unverified extraction, for display) and whether it checks out
// (the verification outcome, for the exit status).
type Result struct {
	Data       *Data
	ExtractErr error
	VerifyErr  error
}

// Decode structurally extracts the token and, unless the secret is empty,
// verifies its signature and time claims. With an empty secret the
// verification outcome mirrors the structural one, so a malformed token
// still fails while a garbage signature does not.
func Decode(p DecodeParams) Result {
	data, err := Extract(p.Token)
	if err != nil {
		return Result{ExtractErr: err, VerifyErr: err}
	}

	res := Result{Data: data}
	if p.Secret != "" {
		res.VerifyErr = verify(p, data.Header)
	}
	if p.ISODates {
		data.Claims.RenderTimestamps()
	}
	return res
}

// Extract reads the header and claims without validating the signature or
// any time claims.
func Extract(token string) (*Data, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}
	return &Data{
		Header: parsed.Header,
		Claims: claims.Set(parsed.Claims.(jwt.MapClaims)),
	}, nil
}

// verify resolves a verification key and delegates to the collaborator. The
// algorithm is always the caller's choice: the token's own header alg is
// only compared against it, and its kid only selects among JWK-Set entries.
func verify(p DecodeParams, header map[string]any) error {
	if alg, ok := header["alg"].(string); !ok || alg != p.Alg.String() {
		return ErrAlgMismatch
	}
	format, err := keys.Infer(p.Secret, p.Format)
	if err != nil {
		return err
	}
	material, err := keys.Load(p.Secret)
	if err != nil {
		return err
	}
	kid, _ := header["kid"].(string)
	key, err := keys.VerificationKey(p.Alg, material, format, kid)
	if err != nil {
		return err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{p.Alg.String()}),
		jwt.WithLeeway(leeway),
	}
	if p.IgnoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		// a token without an exp claim is as invalid as an expired one
		opts = append(opts, jwt.WithExpirationRequired())
	}
	_, err = jwt.Parse(p.Token, func(*jwt.Token) (any, error) { return key, nil }, opts...)
	return err
}
