package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Git-Commit-Therapy/sancommitto-client/token"
)

const signingSecret = "test-secret"

func makeToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	require.NoError(t, err)
	return raw
}

func TestIntrospectValidToken(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	raw := makeToken(t, jwtlib.MapClaims{
		"exp":    float64(now.Add(time.Hour).Unix()),
		"sub":    "CF123",
		"groups": []string{"doctor"},
	})

	in, err := token.Introspect(raw)
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour).Unix(), in.ExpiresAt.Unix())
	require.Equal(t, []token.Role{token.RoleDoctor}, in.Roles)
	require.Equal(t, "CF123", in.Claims["sub"])

	require.True(t, token.Valid(raw, now))
}

func TestValidExpiredToken(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	raw := makeToken(t, jwtlib.MapClaims{"exp": float64(now.Add(-time.Second).Unix())})
	require.False(t, token.Valid(raw, now))
}

func TestValidExpiryExactlyNow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	raw := makeToken(t, jwtlib.MapClaims{"exp": float64(now.Unix())})
	// A token expiring exactly now is already expired.
	require.False(t, token.Valid(raw, now))
}

func TestValidZeroAndNegativeExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	require.False(t, token.Valid(makeToken(t, jwtlib.MapClaims{"exp": float64(0)}), now))
	require.False(t, token.Valid(makeToken(t, jwtlib.MapClaims{"exp": float64(-42)}), now))
}

func TestIntrospectMalformedToken(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	for _, raw := range []string{"", "not-a-jwt", "a.b", "a.b.c", "%%%.%%%.%%%"} {
		_, err := token.Introspect(raw)
		require.ErrorIs(t, err, token.ErrDecode, "input %q", raw)
		require.False(t, token.Valid(raw, now), "input %q", raw)
	}
}

func TestIntrospectMissingExpiry(t *testing.T) {
	_, err := token.Introspect(makeToken(t, jwtlib.MapClaims{"sub": "CF123"}))
	require.ErrorIs(t, err, token.ErrDecode)
}

func TestIntrospectNonNumericExpiry(t *testing.T) {
	_, err := token.Introspect(makeToken(t, jwtlib.MapClaims{"exp": "tomorrow"}))
	require.ErrorIs(t, err, token.ErrDecode)
}

func TestIntrospectNoGroupsClaim(t *testing.T) {
	in, err := token.Introspect(makeToken(t, jwtlib.MapClaims{"exp": float64(1)}))
	require.NoError(t, err)
	require.Empty(t, in.Roles)
}

func TestRolesOfExpiredToken(t *testing.T) {
	// Decode and expiry checks are independent: an expired token still
	// reports the roles it carries.
	now := time.Unix(1_700_000_000, 0)
	raw := makeToken(t, jwtlib.MapClaims{
		"exp":    float64(now.Add(-time.Second).Unix()),
		"groups": []string{"doctor", "staff"},
	})

	require.Equal(t, []token.Role{token.RoleDoctor, token.RoleStaff}, token.Roles(raw))
	require.False(t, token.Valid(raw, now))
}

func TestRolesUnknownStringsIgnored(t *testing.T) {
	raw := makeToken(t, jwtlib.MapClaims{
		"exp":    float64(1),
		"groups": []string{"doctor", "janitor", "patient"},
	})
	require.Equal(t, []token.Role{token.RoleDoctor, token.RolePatient}, token.Roles(raw))
}

func TestRolesMalformedToken(t *testing.T) {
	require.Empty(t, token.Roles("garbage"))
}

func TestRoleFrom(t *testing.T) {
	require.Equal(t, token.RoleDoctor, token.RoleFrom("doctor"))
	require.Equal(t, token.RoleStaff, token.RoleFrom("staff"))
	require.Equal(t, token.RolePatient, token.RoleFrom("patient"))
	require.Equal(t, token.RoleUnknown, token.RoleFrom("admin"))
	require.Equal(t, token.RoleUnknown, token.RoleFrom(""))
}

func TestHasRole(t *testing.T) {
	roles := []token.Role{token.RoleDoctor, token.RoleStaff}
	require.True(t, token.HasRole(roles, token.RoleStaff))
	require.False(t, token.HasRole(roles, token.RolePatient))
	require.False(t, token.HasRole(nil, token.RoleDoctor))
}
