package commands

import (
	"fmt"

	"github.com/stustanet/wahlfang-cli/internal/cli/auth"
	"github.com/stustanet/wahlfang-cli/internal/cli/config"
	"github.com/stustanet/wahlfang-cli/internal/cli/serverselect"
	"github.com/stustanet/wahlfang-cli/internal/cli/state"
	appconfig "github.com/stustanet/wahlfang-cli/internal/config"
	"github.com/stustanet/wahlfang-cli/internal/logger"
)

// getSelectedServer loads the config and returns the selected server.
// This is common logic used by most commands.
func getSelectedServer(serverAlias string) (*config.Server, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'wahlfang init' to create a configuration file", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w\nPlease edit wahlfang.json", err)
	}

	return serverselect.ResolveServer(cfg, serverAlias)
}

// openStateStore opens the client state container at the configured location
func openStateStore(env *appconfig.Config) (*state.Store, error) {
	store, err := state.Open(env.State.DatabasePath, auth.Default, logger.GetLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to open client state: %w", err)
	}
	return store, nil
}
