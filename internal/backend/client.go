// Package backend talks to the store's REST API. Every call is a single
// request: no retries, no caching, no timeouts beyond the transport's.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://siraj-backend.onrender.com"

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, logger *zap.SugaredLogger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL is the API root, without trailing slash.
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// envelope covers the status fields the backend mixes into its replies.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, v any) (request, error) {
	req := request{method: method, path: path}
	if v == nil {
		return req, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return req, fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	req.body = bytes.NewReader(b)
	req.contentType = "application/json"
	return req, nil
}

// send performs req and returns the raw body and status of a 2xx response.
// Non-2xx replies become *APIError; transport failures become *NetworkError.
func (c *Client) send(ctx context.Context, req request) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), req.body)
	if err != nil {
		return nil, 0, fmt.Errorf("build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, &NetworkError{Op: req.method + " " + req.path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &NetworkError{Op: req.method + " " + req.path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = firstNonEmpty(env.Message, env.Error)
		}
		c.logger.Warnw("backend rejected request",
			"method", req.method, "path", req.path, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, resp.StatusCode, apiErr
	}
	return raw, resp.StatusCode, nil
}

// decode unmarshals a 2xx body. A body that is not JSON is treated like a
// transport failure.
func decode(op string, raw []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// checkSuccess enforces the {success:true} contract some endpoints use.
func checkSuccess(op string, raw []byte, status int) error {
	var env envelope
	if err := decode(op, raw, &env); err != nil {
		return err
	}
	if env.Success == nil || !*env.Success {
		return &APIError{Status: status, Message: firstNonEmpty(env.Message, env.Error)}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
