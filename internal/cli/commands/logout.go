package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stustanet/wahlfang-cli/internal/cli/auth"
	"github.com/stustanet/wahlfang-cli/internal/cli/client"
	"github.com/stustanet/wahlfang-cli/internal/cli/config"
	"github.com/stustanet/wahlfang-cli/internal/cli/logout"
	appconfig "github.com/stustanet/wahlfang-cli/internal/config"
	"github.com/stustanet/wahlfang-cli/internal/logger"
)

type logoutOptions struct {
	server    *config.Server
	api       logout.API
	state     logout.StateWriter
	tokens    logout.TokenReader
	indicator logout.Indicator
	timeout   time.Duration
	strict    bool
	out       io.Writer
}

// LogoutOption configures runLogout
type LogoutOption func(*logoutOptions)

func WithLogoutServer(server *config.Server) LogoutOption {
	return func(o *logoutOptions) { o.server = server }
}

func WithLogoutClient(api logout.API) LogoutOption {
	return func(o *logoutOptions) { o.api = api }
}

func WithLogoutState(state logout.StateWriter) LogoutOption {
	return func(o *logoutOptions) { o.state = state }
}

func WithLogoutTokens(tokens logout.TokenReader) LogoutOption {
	return func(o *logoutOptions) { o.tokens = tokens }
}

func WithLogoutIndicator(indicator logout.Indicator) LogoutOption {
	return func(o *logoutOptions) { o.indicator = indicator }
}

func WithLogoutTimeout(timeout time.Duration) LogoutOption {
	return func(o *logoutOptions) { o.timeout = timeout }
}

// WithStrict makes a failed remote logout an error. Local state is
// cleared either way.
func WithStrict(strict bool) LogoutOption {
	return func(o *logoutOptions) { o.strict = strict }
}

func WithLogoutOutput(out io.Writer) LogoutOption {
	return func(o *logoutOptions) { o.out = out }
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string
	var strict bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session with a Wahlfang server",
		Long: `End the session with a Wahlfang server.

The server is asked to invalidate the session token. Local session state
is cleared even when the server cannot be reached; use --strict to exit
with an error in that case.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), serverAlias,
				WithStrict(strict),
				WithLogoutOutput(cmd.OutOrStdout()),
			)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses the selected server if not specified)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error if the server could not confirm the logout")

	return cmd
}

func runLogout(ctx context.Context, serverAlias string, opts ...LogoutOption) error {
	o := &logoutOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	if o.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return err
		}
		o.server = server
	}

	if o.state == nil || o.timeout == 0 {
		env, err := appconfig.Load()
		if err != nil {
			return err
		}
		if o.timeout == 0 {
			o.timeout = env.Logout.Timeout
		}
		if o.state == nil {
			store, err := openStateStore(env)
			if err != nil {
				return err
			}
			defer store.Close()
			o.state = store
		}
	}

	if o.api == nil {
		o.api = client.New(o.server.URL)
	}
	if o.tokens == nil {
		o.tokens = auth.Default
	}
	if o.indicator == nil {
		o.indicator = logout.NewTerminalSpinner(os.Stderr)
	}

	server := o.server
	terminator := logout.New(logout.Options{
		Server:    server.URL,
		API:       o.api,
		State:     o.state,
		Tokens:    o.tokens,
		Indicator: o.indicator,
		Timeout:   o.timeout,
		Home: func() {
			fmt.Fprintf(o.out, "✓ Logged out of %s (%s)\n", server.Alias, server.URL)
			fmt.Fprintln(o.out, "  Run 'wahlfang login' to start a new session.")
		},
		Logger: logger.GetLogger(),
	})

	res, err := terminator.Terminate(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear local session: %w", err)
	}

	if !res.TokenFound && res.Err == nil {
		fmt.Fprintln(o.out, "  There was no active session to invalidate on the server.")
	}

	if res.Err != nil {
		fmt.Fprintf(o.out, "⚠ The server could not confirm the logout: %v\n", res.Err)
		fmt.Fprintln(o.out, "  Local session data has been removed, but the server session may stay valid until it expires.")
		if o.strict {
			return fmt.Errorf("remote logout failed: %w", res.Err)
		}
	}

	return nil
}
