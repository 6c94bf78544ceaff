package auth

// TokenStore defines the interface for token storage operations
// This allows us to mock the keyring in tests
type TokenStore interface {
	SaveTokens(server string, tokens Tokens) error
	LoadTokens(server string) (Tokens, error)
	DeleteTokens(server string) error
}

// defaultTokenStore implements TokenStore using the OS keyring
type defaultTokenStore struct{}

var Default TokenStore = &defaultTokenStore{}

func (d *defaultTokenStore) SaveTokens(server string, tokens Tokens) error {
	return SaveTokens(server, tokens)
}

func (d *defaultTokenStore) LoadTokens(server string) (Tokens, error) {
	return LoadTokens(server)
}

func (d *defaultTokenStore) DeleteTokens(server string) error {
	return DeleteTokens(server)
}
