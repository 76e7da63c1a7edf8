package auth

import (
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/GoArmGo/CommunityApp/internal/domain"
)

// BearerPrefix is the 7-character scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "

// BearerToken strips the scheme prefix from an Authorization header value.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", fmt.Errorf("%w: authorization header must start with %q", domain.ErrUnauthorized, BearerPrefix)
	}
	token := strings.TrimSpace(header[len(BearerPrefix):])
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", domain.ErrUnauthorized)
	}
	return token, nil
}

// Resolver extracts the caller's user id from a bearer credential.
// It does not check the signature or expiry; RequireAuth does that before
// any handler that relies on the resolved id.
type Resolver struct {
	parser *jwtlib.Parser
}

func NewResolver() *Resolver {
	return &Resolver{parser: jwtlib.NewParser()}
}

// ResolveUserID decodes "Bearer <token>" and returns the user_id claim.
func (r *Resolver) ResolveUserID(header string) (int64, error) {
	raw, err := BearerToken(header)
	if err != nil {
		return 0, err
	}

	claims := &Claims{}
	if _, _, err := r.parser.ParseUnverified(raw, claims); err != nil {
		return 0, fmt.Errorf("%w: malformed token: %v", domain.ErrUnauthorized, err)
	}
	if claims.UserID <= 0 {
		return 0, fmt.Errorf("%w: token carries no user id", domain.ErrUnauthorized)
	}
	return claims.UserID, nil
}
