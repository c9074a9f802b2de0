package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/plated/internal/client/models"
	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/logging"
)

const (
	pathRegister      = "/api/user/register"
	pathProfile       = "/api/user/profile"
	pathUpdate        = "/api/user/update"
	pathCheckUsername = "/api/user/check_username"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// Option customizes an HTTPClient.
type Option func(*options)

type options struct {
	transport http.RoundTripper
	timeout   time.Duration
}

// WithTransport replaces the underlying round tripper (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithTimeout bounds each request; zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// NewHTTPClient builds the API client for baseURL. Every request reads the
// current token from tokens; every 401 is passed to onUnauthorized.
func NewHTTPClient(baseURL string, tokens session.TokenStore, onUnauthorized UnauthorizedHandler, log logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: scheme must be http or https", baseURL)
	}

	o := options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout: o.timeout,
			Transport: &authTransport{
				base:           o.transport,
				apiHost:        u.Host,
				tokens:         tokens,
				onUnauthorized: onUnauthorized,
				log:            log.With("component", "api"),
			},
		},
	}, nil
}

func (c *HTTPClient) RegisterUser(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, pathRegister, nil, req, nil)
}

func (c *HTTPClient) GetUserProfile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := c.do(ctx, http.MethodGet, pathProfile, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, upd models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, pathUpdate, nil, upd, nil)
}

// CheckUsername inverts the server's {"exists": bool}: the result is true
// when the name is free.
func (c *HTTPClient) CheckUsername(ctx context.Context, username string) (bool, error) {
	var resp models.UsernameCheck
	q := url.Values{"username": {username}}
	if err := c.do(ctx, http.MethodGet, pathCheckUsername, q, nil, &resp); err != nil {
		return false, err
	}
	return !resp.Exists, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rejection(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func rejection(resp *http.Response) error {
	e := &RejectionError{Status: resp.StatusCode}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return e
	}
	var apiErr models.APIError
	if json.Unmarshal(b, &apiErr) == nil {
		e.Message = apiErr.Error
	}
	return e
}
