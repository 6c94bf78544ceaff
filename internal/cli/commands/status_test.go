package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stustanet/wahlfang-cli/internal/cli/auth"
)

func TestStatusCommand_NotLoggedIn(t *testing.T) {
	store := newTestStore(t)
	var out bytes.Buffer

	err := runStatus(context.Background(), "",
		WithStatusServer(testServer("https://vote.example.org")),
		WithStatusState(store),
		WithStatusOutput(&out),
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Status: not logged in")
	assert.Contains(t, out.String(), "wahlfang login")
}

func TestStatusCommand_LoggedIn(t *testing.T) {
	store := newTestStore(t)
	server := testServer("https://vote.example.org")

	_, err := store.SignIn(context.Background(), server.URL,
		auth.Tokens{Access: "a", Refresh: "r"},
		auth.Claims{UserType: auth.UserTypeElectionManager, UserID: "17", ExpiresAt: time.Now().Add(-time.Minute)},
	)
	require.NoError(t, err)

	var out bytes.Buffer
	err = runStatus(context.Background(), "",
		WithStatusServer(server),
		WithStatusState(store),
		WithStatusOutput(&out),
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Status: logged in")
	assert.Contains(t, out.String(), "Role:   Election manager")
	assert.Contains(t, out.String(), "User:   17")
	assert.Contains(t, out.String(), "expired at")
}
