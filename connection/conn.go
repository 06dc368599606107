package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TokenProvider returns the access token to attach to an outbound call.
// It is invoked per request, so a connection built before a token
// refresh keeps working after it.
type TokenProvider func() string

// Conn is a live client handle bound to one named remote service. Every
// request it sends carries the current access token as a bearer
// credential. Conns are shared and never closed by this package.
type Conn struct {
	service    Service
	baseURL    string
	httpClient *http.Client
}

// Service returns the name this connection was built for.
func (c *Conn) Service() Service { return c.service }

// BaseURL returns the endpoint this connection is bound to.
func (c *Conn) BaseURL() string { return c.baseURL }

// Post sends a JSON request and decodes the JSON response into out. A
// nil out discards the response body.
func (c *Conn) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// Get sends a GET request with optional query parameters and decodes the
// JSON response into out.
func (c *Conn) Get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	return c.do(req, out)
}

func (c *Conn) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "call %s service", c.service)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthenticated
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errors.Errorf("%s service answered %s", c.service, resp.Status)
	}

	if out == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
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

// bearerTransport stamps every outbound request with the access token
// read from the provider at call time, plus a fresh request ID. Reading
// at call time rather than at connection-build time is what lets a
// long-lived connection survive token rotation.
type bearerTransport struct {
	base  http.RoundTripper
	token TokenProvider
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if tok := t.token(); tok != "" {
		clone.Header.Set("Authorization", "Bearer "+tok)
	}
	clone.Header.Set("X-Request-ID", uuid.New().String())
	return t.base.RoundTrip(clone)
}

func normalizeURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}
