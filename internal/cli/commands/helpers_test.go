package commands

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/stustanet/wahlfang-cli/internal/cli/auth"
	"github.com/stustanet/wahlfang-cli/internal/cli/config"
	"github.com/stustanet/wahlfang-cli/internal/cli/state"
)

// newTestStore returns a state store backed by an in-memory database and
// the mock keyring
func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	keyring.MockInit()

	store, err := state.Open(state.MemoryPath, auth.Default, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testServer(url string) *config.Server {
	return &config.Server{Alias: "test-server", URL: url}
}

// signedToken builds an access token the way the server would
func signedToken(t *testing.T, userType string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_type": userType,
		"user_id":   17,
		"exp":       expires.Unix(),
	})
	signed, err := token.SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return signed
}
