package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokens_SaveLoadDelete(t *testing.T) {
	keyring.MockInit()

	server := "https://vote.example.org"

	_, err := Default.LoadTokens(server)
	require.True(t, errors.Is(err, ErrNotAuthenticated), "expected ErrNotAuthenticated, got %v", err)

	require.NoError(t, Default.SaveTokens(server, Tokens{Access: "a-1", Refresh: "r-1"}))

	tokens, err := Default.LoadTokens(server)
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "a-1", Refresh: "r-1"}, tokens)

	// Tokens of other servers are untouched
	require.NoError(t, Default.SaveTokens("https://other.example.org", Tokens{Access: "a-2", Refresh: "r-2"}))

	require.NoError(t, Default.DeleteTokens(server))
	_, err = Default.LoadTokens(server)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	other, err := Default.LoadTokens("https://other.example.org")
	require.NoError(t, err)
	assert.Equal(t, "a-2", other.Access)
}

func TestDeleteTokens_AlreadyDeleted(t *testing.T) {
	keyring.MockInit()

	assert.NoError(t, DeleteTokens("https://never-logged-in.example.org"))
}

func TestParseClaims(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_type": UserTypeElectionManager,
		"user_id":   42,
		"exp":       expires.Unix(),
	})
	signed, err := token.SignedString([]byte("server-secret-the-cli-never-sees"))
	require.NoError(t, err)

	claims, err := ParseClaims(signed)
	require.NoError(t, err)

	assert.Equal(t, UserTypeElectionManager, claims.UserType)
	assert.Equal(t, "42", claims.UserID)
	assert.True(t, claims.ExpiresAt.Equal(expires), "expires = %s, want %s", claims.ExpiresAt, expires)
}

func TestParseClaims_Malformed(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)
}
