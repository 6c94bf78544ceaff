// Package logout ends a client session: it asks the server to invalidate
// the session's refresh token and then clears every piece of local state
// held for that server, whether or not the server call succeeded.
package logout

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/stustanet/wahlfang-cli/internal/cli/auth"
	"github.com/stustanet/wahlfang-cli/internal/cli/client"
)

const (
	// Title is shown next to the loading indicator
	Title = "logout"

	defaultTimeout = 10 * time.Second
)

// API is the remote half of a logout
type API interface {
	Logout(ctx context.Context, refresh string) error
}

// StateWriter is the part of the client state container a logout may touch.
// It has no read access to the session.
type StateWriter interface {
	SignOut(ctx context.Context, server string) error
	Reset(ctx context.Context, server string) error
}

// TokenReader gives access to the refresh token to invalidate
type TokenReader interface {
	LoadTokens(server string) (auth.Tokens, error)
}

// Options configures a Terminator
type Options struct {
	Server    string
	API       API
	State     StateWriter
	Tokens    TokenReader
	Indicator Indicator
	// Timeout bounds the remote call. Zero means 10s.
	Timeout time.Duration
	// Home runs once after the local state has been reset
	Home   func()
	Logger zerolog.Logger
}

// Result describes how the remote half of a logout went. Local state is
// cleared regardless.
type Result struct {
	// TokenFound is false when there was no stored session to invalidate
	TokenFound bool
	// RemoteInvalidated is true when the server accepted the logout
	RemoteInvalidated bool
	// Err is the remote failure, a *client.NetworkError or *client.ServerError
	// in most cases
	Err error
}

// Terminator performs the client-visible steps of ending a session
type Terminator struct {
	server    string
	api       API
	state     StateWriter
	tokens    TokenReader
	indicator Indicator
	timeout   time.Duration
	home      func()
	logger    zerolog.Logger

	group singleflight.Group
}

// New creates a Terminator
func New(opts Options) *Terminator {
	t := &Terminator{
		server:    opts.Server,
		api:       opts.API,
		state:     opts.State,
		tokens:    opts.Tokens,
		indicator: opts.Indicator,
		timeout:   opts.Timeout,
		home:      opts.Home,
		logger:    opts.Logger,
	}
	if t.indicator == nil {
		t.indicator = noopIndicator{}
	}
	if t.timeout <= 0 {
		t.timeout = defaultTimeout
	}
	if t.home == nil {
		t.home = func() {}
	}
	return t
}

// Terminate ends the session. Overlapping calls share one run. The returned
// error is non-nil only when local state could not be cleared; remote
// failures are reported in Result.Err.
func (t *Terminator) Terminate(ctx context.Context) (Result, error) {
	v, err, _ := t.group.Do(t.server, func() (any, error) {
		return t.terminate(ctx)
	})
	res, _ := v.(Result)
	return res, err
}

func (t *Terminator) terminate(ctx context.Context) (res Result, err error) {
	t.indicator.Start(Title)

	defer func() {
		// The caller's context may be gone by now; local cleanup must still run
		cleanupCtx := context.WithoutCancel(ctx)

		err = t.clear(cleanupCtx)
		t.indicator.Stop()
		t.home()
	}()

	tokens, loadErr := t.tokens.LoadTokens(t.server)
	if loadErr != nil {
		if errors.Is(loadErr, auth.ErrNotAuthenticated) {
			t.logger.Debug().Str("server", t.server).Msg("No stored session, skipping remote logout")
			return res, nil
		}
		t.logger.Warn().Err(loadErr).Str("server", t.server).Msg("Failed to read stored session")
		res.Err = loadErr
		return res, nil
	}
	res.TokenFound = true

	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if callErr := t.api.Logout(callCtx, tokens.Refresh); callErr != nil {
		t.logFailure(callErr)
		res.Err = callErr
		return res, nil
	}

	res.RemoteInvalidated = true
	t.logger.Info().Str("server", t.server).Msg("Session invalidated on server")
	return res, nil
}

// clear signs out before resetting so that the flag is false even if
// the reset fails halfway
func (t *Terminator) clear(ctx context.Context) error {
	var errs []error
	if err := t.state.SignOut(ctx, t.server); err != nil {
		errs = append(errs, err)
	}
	if err := t.state.Reset(ctx, t.server); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		t.logger.Error().Err(errors.Join(errs...)).Str("server", t.server).Msg("Failed to clear local session state")
	}
	return errors.Join(errs...)
}

func (t *Terminator) logFailure(err error) {
	event := t.logger.Warn().Err(err).Str("server", t.server)

	var netErr *client.NetworkError
	var serverErr *client.ServerError
	switch {
	case errors.As(err, &netErr):
		event = event.Str("kind", "network")
	case errors.As(err, &serverErr):
		event = event.Str("kind", "server").Int("status", serverErr.StatusCode)
	}

	event.Msg("Remote logout failed, clearing local session anyway")
}
