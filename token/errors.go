package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/encodedmedia/jwt-cli/keys"
)

// ErrAlgMismatch means the token header declares a different algorithm than
// the one requested for verification.
var ErrAlgMismatch = errors.New("token algorithm does not match the requested algorithm")

// Describe renders a verification error as the single diagnostic for its
// kind. Unrecognized errors fall back to a generic message carrying the raw
// detail.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return "The JWT provided has a different signing algorithm than the one you provided"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "The JWT provided is invalid"
	case errors.Is(err, keys.ErrNoMatchingKey),
		errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "The JWT provided has an invalid signature"
	case errors.Is(err, keys.ErrInvalidRSAKey):
		return "The secret provided isn't a valid RSA key"
	case errors.Is(err, keys.ErrInvalidECDSAKey):
		return "The secret provided isn't a valid ECDSA key"
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "The token has expired (or the `exp` claim is not set). This error can be ignored via the `--ignore-exp` parameter."
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "The `nbf` claim is in the future which isn't allowed"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "The token issuer is invalid"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "The token audience doesn't match the subject"
	case errors.Is(err, jwt.ErrTokenInvalidSubject):
		return "The token subject doesn't match the audience"
	default:
		return fmt.Sprintf("The JWT provided is invalid because %v", err)
	}
}
