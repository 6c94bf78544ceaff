package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stustanet/wahlfang-cli/internal/cli/config"
	"github.com/stustanet/wahlfang-cli/internal/cli/state"
	appconfig "github.com/stustanet/wahlfang-cli/internal/config"
)

// SessionReader reads the session state of a server
type SessionReader interface {
	Current(ctx context.Context, server string) (state.Session, error)
}

type statusOptions struct {
	server *config.Server
	store  SessionReader
	out    io.Writer
	now    func() time.Time
}

// StatusOption configures runStatus
type StatusOption func(*statusOptions)

func WithStatusServer(server *config.Server) StatusOption {
	return func(o *statusOptions) { o.server = server }
}

func WithStatusState(store SessionReader) StatusOption {
	return func(o *statusOptions) { o.store = store }
}

func WithStatusOutput(out io.Writer) StatusOption {
	return func(o *statusOptions) { o.out = out }
}

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the session state for a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), serverAlias, WithStatusOutput(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses the selected server if not specified)")

	return cmd
}

func runStatus(ctx context.Context, serverAlias string, opts ...StatusOption) error {
	o := &statusOptions{out: os.Stdout, now: time.Now}
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

	session, err := o.store.Current(ctx, o.server.URL)
	if err != nil {
		return err
	}

	fmt.Fprintf(o.out, "Server: %s (%s)\n", o.server.Alias, o.server.URL)

	if !session.Authenticated() {
		fmt.Fprintln(o.out, "Status: not logged in")
		fmt.Fprintln(o.out, "\nLog in with: wahlfang login")
		return nil
	}

	fmt.Fprintln(o.out, "Status: logged in")
	fmt.Fprintf(o.out, "Role:   %s\n", roleName(session.UserType))
	if session.Subject != "" {
		fmt.Fprintf(o.out, "User:   %s\n", session.Subject)
	}
	if !session.ExpiresAt.IsZero() {
		if session.Expired(o.now()) {
			fmt.Fprintf(o.out, "Token:  expired at %s\n", session.ExpiresAt.Local().Format("2006-01-02 15:04"))
		} else {
			fmt.Fprintf(o.out, "Token:  valid until %s\n", session.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
	}

	return nil
}
