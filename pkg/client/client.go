package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kjanat/ghost-blog/pkg/api"
)

// Client talks to the Content and Admin APIs of one Ghost site.
//
// A Client is safe for concurrent use by multiple goroutines. Calls are
// independent of each other: nothing is cached between them, admin tokens
// included, and no call is retried.
//
// Do not copy a Client after first use.
type Client struct {
	raw  *api.Client
	cfg  Config
	opts *Options
}

// New creates a new Ghost client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// Validate options
	if options.timeout < 0 {
		return nil, errors.New("timeout cannot be negative")
	}
	if options.logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if options.now == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if options.fs == nil {
		return nil, errors.New("filesystem cannot be nil")
	}

	doer := options.doer
	if doer == nil {
		doer = &http.Client{
			Timeout: options.timeout,
		}
	}

	clientOpts := []api.ClientOption{
		api.WithHTTPClient(doer),
	}

	if options.userAgent != "" {
		userAgent := options.userAgent
		clientOpts = append(clientOpts, api.WithRequestEditorFn(func(_ context.Context, req *http.Request) error {
			req.Header.Set("User-Agent", userAgent)
			return nil
		}))
	}

	rawClient, err := api.NewClient(cfg.apiRoot(), clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &Client{
		raw:  rawClient,
		cfg:  cfg,
		opts: options,
	}, nil
}

// BaseURL returns the site root the client was configured with, without a
// trailing slash.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Call performs one API request. path must start with "content/" or
// "admin/"; it selects the authentication scheme. A non-nil body is sent
// as JSON.
//
// Call returns the raw JSON response body, or nil for 204 No Content.
func (c *Client) Call(ctx context.Context, method, path string, body any, params url.Values) (json.RawMessage, error) {
	r, err := classifyPath(path)
	if err != nil {
		return nil, err
	}

	query, header, err := r.credentials(c, params)
	if err != nil {
		return nil, err
	}

	req, err := api.NewJSONRequest(c.raw.Server, method, r.path(), query, body)
	if err != nil {
		return nil, err
	}

	return c.dispatch(ctx, r, req, header)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.Call(ctx, http.MethodGet, path, nil, params)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, params url.Values) (json.RawMessage, error) {
	return c.Call(ctx, http.MethodPost, path, body, params)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, params url.Values) (json.RawMessage, error) {
	return c.Call(ctx, http.MethodPut, path, body, params)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Call(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func (c *Client) dispatch(ctx context.Context, r route, req *http.Request, header http.Header) (json.RawMessage, error) {
	for k, vs := range header {
		req.Header[k] = vs
	}

	logger := c.opts.logger.With("method", req.Method, "path", r.path(), "surface", string(r.surface()))

	start := time.Now()
	rsp, err := c.raw.Do(ctx, req)
	if err != nil {
		logger.Debug("request failed", "error", redactError(err))
		return nil, &TransportError{
			Method: req.Method,
			URL:    redactURL(req.URL),
			Err:    redactError(err),
		}
	}
	logger.Debug("request completed", "status", rsp.StatusCode, "duration", time.Since(start))

	if !rsp.Success() {
		return nil, decodeAPIError(rsp.StatusCode, rsp.Body)
	}

	if rsp.NoContent() {
		return nil, nil
	}

	if !json.Valid(rsp.Body) {
		return nil, fmt.Errorf("%w: status %d with non-JSON body", ErrMalformedResponse, rsp.StatusCode)
	}

	return json.RawMessage(rsp.Body), nil
}

// adminToken issues a new Admin API token for the current time.
func (c *Client) adminToken() (string, error) {
	key, err := ParseAdminKey(c.cfg.AdminKey)
	if err != nil {
		return "", err
	}

	token, err := IssueToken(key, c.opts.now())
	if err != nil {
		return "", &ConfigurationError{Setting: "admin_key", Message: "cannot sign token", Err: err}
	}
	return token, nil
}

// redactURL hides the content key carried in the query string.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	query := u.Query()
	if !query.Has("key") {
		return u.String()
	}
	query.Set("key", "REDACTED")
	redacted := *u
	redacted.RawQuery = query.Encode()
	return redacted.String()
}

func redactError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if parsed, perr := url.Parse(ue.URL); perr == nil {
		ue.URL = redactURL(parsed)
	}
	return err
}
