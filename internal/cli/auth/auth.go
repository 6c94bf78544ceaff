package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "wahlfang-cli"
)

// ErrNotAuthenticated is returned when no token is stored for a server
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'wahlfang login' first")

// Tokens is the JWT pair issued by the server on login
type Tokens struct {
	Access  string
	Refresh string
}

// getKeyringKey returns a unique key for storing a token kind per server
func getKeyringKey(kind, server string) string {
	return fmt.Sprintf("%s-%s", kind, server)
}

// SaveTokens persists the token pair securely in the OS keychain/credential manager
func SaveTokens(server string, tokens Tokens) error {
	if err := keyring.Set(service, getKeyringKey("access", server), tokens.Access); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if err := keyring.Set(service, getKeyringKey("refresh", server), tokens.Refresh); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// LoadTokens retrieves the token pair from the OS keychain/credential manager
func LoadTokens(server string) (Tokens, error) {
	access, err := keyring.Get(service, getKeyringKey("access", server))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Tokens{}, ErrNotAuthenticated
		}
		return Tokens{}, fmt.Errorf("failed to load access token: %w", err)
	}

	refresh, err := keyring.Get(service, getKeyringKey("refresh", server))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Tokens{}, ErrNotAuthenticated
		}
		return Tokens{}, fmt.Errorf("failed to load refresh token: %w", err)
	}

	return Tokens{Access: access, Refresh: refresh}, nil
}

// DeleteTokens removes both tokens of a server. Missing entries are not an error.
func DeleteTokens(server string) error {
	var errs []error
	for _, kind := range []string{"access", "refresh"} {
		if err := keyring.Delete(service, getKeyringKey(kind, server)); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				continue // Already deleted
			}
			errs = append(errs, fmt.Errorf("failed to delete %s token: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}
