package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User types carried in the user_type claim
const (
	UserTypeVoter           = "Voter"
	UserTypeElectionManager = "ElectionManager"
)

// Claims is the subset of the access token payload the CLI cares about
type Claims struct {
	UserType  string
	UserID    string
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserType string `json:"user_type"`
	UserID   any    `json:"user_id"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the payload of an access token without verifying
// its signature. The CLI never holds the signing key, so the result is
// only good for display and local state.
func ParseClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims := Claims{
		UserType: tc.UserType,
	}
	if tc.UserID != nil {
		claims.UserID = fmt.Sprint(tc.UserID)
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}
