package serverselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stustanet/wahlfang-cli/internal/cli/config"
	"github.com/stustanet/wahlfang-cli/internal/cli/userconfig"
)

func testConfig() *config.Config {
	return &config.Config{Servers: []config.Server{
		{URL: "https://vote.stusta.de", Alias: "stusta"},
		{URL: "http://localhost:8000", Alias: "dev"},
	}}
}

func TestResolveServer_ByAlias(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	server, err := ResolveServer(testConfig(), "dev")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", server.URL)

	_, err = ResolveServer(testConfig(), "missing")
	assert.Error(t, err)
}

func TestResolveServer_UsesSelectedServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, userconfig.SetSelectedServer("http://localhost:8000"))

	server, err := ResolveServer(testConfig(), "")
	require.NoError(t, err)
	assert.Equal(t, "dev", server.Alias)
}

func TestResolveServer_SingleServerIsSaved(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := &config.Config{Servers: []config.Server{{URL: "https://vote.stusta.de", Alias: "stusta"}}}

	// A stale selection is dropped in favour of the only server
	require.NoError(t, userconfig.SetSelectedServer("https://gone.example.org"))

	server, err := ResolveServer(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "stusta", server.Alias)

	selected, err := userconfig.GetSelectedServer()
	require.NoError(t, err)
	assert.Equal(t, "https://vote.stusta.de", selected)
}

func TestGetServerByURLOrAlias(t *testing.T) {
	cfg := testConfig()

	server, err := GetServerByURLOrAlias(cfg, "https://vote.stusta.de")
	require.NoError(t, err)
	assert.Equal(t, "stusta", server.Alias)

	server, err = GetServerByURLOrAlias(cfg, "dev")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", server.URL)

	_, err = GetServerByURLOrAlias(cfg, "nope")
	assert.Error(t, err)
}
