// Package token decodes and inspects the JWTs issued by the
// authentication service. The client holds no verification keys, so
// claims are extracted without signature verification - the same trust
// model as decoding a token in the browser. Servers re-verify every
// token on their side; the client only needs expiry and role claims to
// drive routing and connection building.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrDecode reports a token whose claims cannot be extracted: malformed
// input, or a missing or non-numeric exp claim. A token that fails to
// decode is never treated as valid.
var ErrDecode = errors.New("malformed token")

// Introspection holds the claims the client cares about, decoded on
// demand from the raw access token and never stored.
type Introspection struct {
	ExpiresAt time.Time      // from the exp claim
	Roles     []Role         // from the groups claim, unknown entries dropped
	Claims    map[string]any // all raw claims
}

// Introspect decodes a token's claims. It does not check expiry; use
// Valid for that. A token without a groups claim decodes to an empty
// role set - a token may validly carry zero roles.
func Introspect(raw string) (*Introspection, error) {
	unverified, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	claims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrDecode
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrDecode
	}

	var roles []Role
	if groups, ok := claims["groups"].([]any); ok {
		roles = rolesFromClaim(groups)
	}

	return &Introspection{
		ExpiresAt: time.Unix(int64(exp), 0),
		Roles:     roles,
		Claims:    claims,
	}, nil
}

// Valid reports whether raw decodes cleanly and has not expired at the
// given instant. A token expiring exactly now counts as expired.
func Valid(raw string, now time.Time) bool {
	if raw == "" {
		return false
	}
	in, err := Introspect(raw)
	if err != nil {
		return false
	}
	return in.ExpiresAt.After(now)
}

// Roles returns the role set carried by raw. Expiry is deliberately not
// checked: an expired token still reports its roles, and a token that
// cannot be decoded reports none.
func Roles(raw string) []Role {
	in, err := Introspect(raw)
	if err != nil {
		return nil
	}
	return in.Roles
}
