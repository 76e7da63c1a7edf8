package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "abc.def.ghi", "Basic abc", "bearer abc.def.ghi", "Bearer ", "Bearer"} {
		_, err := BearerToken(header)
		assert.Truef(t, errors.Is(err, domain.ErrUnauthorized), "header %q: %v", header, err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue(domain.User{ID: 42, Username: "kim", Role: domain.RoleUser})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "kim", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestIssueOmitsRole(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue(domain.User{ID: 7, Username: "kim", Role: domain.RoleAdmin})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.NotContains(t, raw, "role")
	assert.Equal(t, float64(7), raw["user_id"])
}

func TestVerifyRejectsWrongSecretAndExpired(t *testing.T) {
	issued := NewTokenService("secret", time.Minute)
	token, err := issued.Issue(domain.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Minute).Verify(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	later := NewTokenService("secret", time.Minute)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Verify(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = issued.Verify("not-a-token")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestResolveUserID(t *testing.T) {
	token, err := NewTokenService("secret", time.Hour).Issue(domain.User{ID: 7})
	require.NoError(t, err)

	r := NewResolver()
	id, err := r.ResolveUserID("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	// подпись не проверяется: токен с чужим секретом тоже раскодируется
	foreign, err := NewTokenService("foreign", time.Hour).Issue(domain.User{ID: 8})
	require.NoError(t, err)
	id, err = r.ResolveUserID("Bearer " + foreign)
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestResolveUserIDFailures(t *testing.T) {
	r := NewResolver()

	noUser, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"sub": "x"}).SignedString([]byte("s"))
	require.NoError(t, err)

	for _, header := range []string{
		"abc.def.ghi",
		"Bearer abc.def.ghi",
		"Bearer not-a-jwt",
		"Bearer " + noUser,
	} {
		_, err := r.ResolveUserID(header)
		assert.Truef(t, errors.Is(err, domain.ErrUnauthorized), "header %q: %v", header, err)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.True(t, errors.Is(h.Compare(hash, "wrong"), domain.ErrUnauthorized))

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
}
