package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	voterTokenPath   = "/api/v1/auth/token/voter/"
	managerTokenPath = "/api/v1/auth/token/manager/"
	blacklistPath    = "/api/v1/auth/token/blacklist/"
)

// Client represents an HTTP client for the Wahlfang API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the server at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// TokenPair is the JWT pair returned by both login endpoints
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// VoterLoginRequest represents the voter login request body
type VoterLoginRequest struct {
	AccessCode string `json:"access_code"`
}

// ManagerLoginRequest represents the election manager login request body
type ManagerLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogoutRequest carries the refresh token to be blacklisted
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// LoginVoter exchanges a voter access code for a token pair
func (c *Client) LoginVoter(ctx context.Context, accessCode string) (*TokenPair, error) {
	return c.obtainTokens(ctx, "voter login", voterTokenPath, VoterLoginRequest{AccessCode: accessCode})
}

// LoginManager exchanges election manager credentials for a token pair
func (c *Client) LoginManager(ctx context.Context, username, password string) (*TokenPair, error) {
	return c.obtainTokens(ctx, "manager login", managerTokenPath, ManagerLoginRequest{
		Username: username,
		Password: password,
	})
}

func (c *Client) obtainTokens(ctx context.Context, op, path string, body any) (*TokenPair, error) {
	resp, err := c.post(ctx, op, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(op, resp)
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		return nil, fmt.Errorf("%s: response is missing tokens", op)
	}

	return &pair, nil
}

// Logout invalidates the session on the server by blacklisting its refresh token
func (c *Client) Logout(ctx context.Context, refresh string) error {
	resp, err := c.post(ctx, "logout", blacklistPath, LogoutRequest{Refresh: refresh})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusResetContent {
		return serverError("logout", resp)
	}

	return nil
}

func (c *Client) post(ctx context.Context, op, path string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return resp, nil
}

func serverError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &ServerError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
}
