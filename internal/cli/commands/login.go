package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stustanet/wahlfang-cli/internal/cli/auth"
	"github.com/stustanet/wahlfang-cli/internal/cli/client"
	"github.com/stustanet/wahlfang-cli/internal/cli/config"
	"github.com/stustanet/wahlfang-cli/internal/cli/state"
	appconfig "github.com/stustanet/wahlfang-cli/internal/config"
	"github.com/stustanet/wahlfang-cli/internal/logger"
)

// LoginAPI is the part of the API client used by login
type LoginAPI interface {
	LoginVoter(ctx context.Context, accessCode string) (*client.TokenPair, error)
	LoginManager(ctx context.Context, username, password string) (*client.TokenPair, error)
}

// SessionSigner records a new session in the client state container
type SessionSigner interface {
	SignIn(ctx context.Context, server string, tokens auth.Tokens, claims auth.Claims) (state.Session, error)
}

// Credentials identify either a voter (access code) or an election manager
type Credentials struct {
	AccessCode string
	Username   string
	Password   string
}

type loginOptions struct {
	server *config.Server
	api    LoginAPI
	store  SessionSigner
	out    io.Writer
}

// LoginOption configures runLogin
type LoginOption func(*loginOptions)

func WithLoginServer(server *config.Server) LoginOption {
	return func(o *loginOptions) { o.server = server }
}

func WithLoginClient(api LoginAPI) LoginOption {
	return func(o *loginOptions) { o.api = api }
}

func WithLoginState(store SessionSigner) LoginOption {
	return func(o *loginOptions) { o.store = store }
}

func WithLoginOutput(out io.Writer) LoginOption {
	return func(o *loginOptions) { o.out = out }
}

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var creds Credentials
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Wahlfang server",
		Long: `Authenticate with a Wahlfang server.

Voters log in with the access code from their invitation. Election
managers log in with username and password.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), serverAlias, creds, WithLoginOutput(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVar(&creds.AccessCode, "access-code", "", "Voter access code (or set WAHLFANG_ACCESS_CODE)")
	cmd.Flags().StringVar(&creds.Username, "username", "", "Election manager username (or set WAHLFANG_USERNAME)")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Election manager password (or set WAHLFANG_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses the selected server if not specified)")
	cmd.MarkFlagsMutuallyExclusive("access-code", "username")

	return cmd
}

func runLogin(ctx context.Context, serverAlias string, creds Credentials, opts ...LoginOption) error {
	o := &loginOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	// Check for environment variables (useful for CI/CD)
	if creds.AccessCode == "" && creds.Username == "" {
		creds.AccessCode = os.Getenv("WAHLFANG_ACCESS_CODE")
		creds.Username = os.Getenv("WAHLFANG_USERNAME")
	}
	if creds.Password == "" {
		creds.Password = os.Getenv("WAHLFANG_PASSWORD")
	}

	if creds.AccessCode == "" && creds.Username == "" {
		return fmt.Errorf("an access code or a username is required (use --access-code or --username)")
	}
	if creds.AccessCode != "" && creds.Username != "" {
		return fmt.Errorf("use either an access code or a username, not both")
	}

	if o.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return err
		}
		o.server = server
	}

	if creds.Username != "" && creds.Password == "" {
		// Check if stdin is a terminal (not piped)
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or WAHLFANG_PASSWORD env var)")
		}
		fmt.Fprint(o.out, "Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		creds.Password = string(bytePassword)
		fmt.Fprintln(o.out)
	}

	if o.api == nil {
		o.api = client.New(o.server.URL)
	}

	if o.store == nil {
		env, err := appconfig.Load()
		if err != nil {
			return err
		}
		store, err := openStateStore(env)
		if err != nil {
			return err
		}
		defer store.Close()
		o.store = store
	}

	fmt.Fprintf(o.out, "Logging in to %s (%s)...\n", o.server.Alias, o.server.URL)

	var (
		pair *client.TokenPair
		err  error
	)
	if creds.AccessCode != "" {
		pair, err = o.api.LoginVoter(ctx, creds.AccessCode)
	} else {
		pair, err = o.api.LoginManager(ctx, creds.Username, creds.Password)
	}
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	claims, err := auth.ParseClaims(pair.Access)
	if err != nil {
		log := logger.GetLogger()
		log.Warn().Err(err).Msg("Could not read access token claims")
	}
	if claims.UserType == "" {
		claims.UserType = auth.UserTypeVoter
		if creds.Username != "" {
			claims.UserType = auth.UserTypeElectionManager
		}
	}

	session, err := o.store.SignIn(ctx, o.server.URL, auth.Tokens{Access: pair.Access, Refresh: pair.Refresh}, claims)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(o.out, "✓ Login successful!")
	fmt.Fprintf(o.out, "  Role: %s\n", roleName(session.UserType))
	if !session.ExpiresAt.IsZero() {
		fmt.Fprintf(o.out, "  Token expires: %s\n", session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}

	return nil
}

func roleName(userType string) string {
	switch userType {
	case auth.UserTypeElectionManager:
		return "Election manager"
	case auth.UserTypeVoter:
		return "Voter"
	default:
		return userType
	}
}
