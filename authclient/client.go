// Package authclient is the client side of the authentication service:
// login, signup and refresh-token exchange over plain JSON/HTTP. The
// auth service itself requires no bearer token, so this channel carries
// no credentials.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	loginPath   = "/v1/auth/login"
	signupPath  = "/v1/auth/signup"
	refreshPath = "/v1/auth/refresh"
)

// Client calls the authentication service at a fixed endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Timeouts and
// retries belong to the transport, not to this package.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the auth service at endpoint.
func New(endpoint string, options ...Option) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrNoEndpoint
	}
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Login exchanges a fiscal code and password for a token pair. A server
// that rejects the credentials answers with a non-success Status, not an
// error; errors mean the call itself failed.
func (c *Client) Login(ctx context.Context, fiscalCode, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.post(ctx, loginPath, loginRequest{FiscalCode: fiscalCode, Password: password}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "authclient login")
	}
	return &out, nil
}

// SignUp registers a new user. Registration never returns tokens.
func (c *Client) SignUp(ctx context.Context, profile Profile) (*SignUpResponse, error) {
	var out SignUpResponse
	if err := c.post(ctx, signupPath, profile, &out); err != nil {
		return nil, errors.Wrap(err, "authclient signup")
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new token pair. An explicit
// rejection of the refresh token surfaces as ErrRefreshRejected; any
// other failure is a transport problem the caller may retry.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	var out RefreshResponse
	err := c.post(ctx, refreshPath, refreshRequest{RefreshToken: refreshToken}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "authclient refresh")
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "call auth service")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if path == refreshPath {
			return ErrRefreshRejected
		}
		return errors.Errorf("auth service answered %s", resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errors.Errorf("auth service answered %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
