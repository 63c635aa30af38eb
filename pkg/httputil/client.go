package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/stickypack/pkg/buildinfo"
	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/observability"
)

const httpTimeout = 15 * time.Second

// NewHTTPClient returns an HTTP client with the standard request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Client is a JSON REST client with bearer authentication, client-side
// rate limiting and retries for idempotent requests.
type Client struct {
	http    *http.Client
	base    *url.URL
	headers map[string]string
	limiter *rate.Limiter
	retry   Policy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBearer sets the Authorization header.
func WithBearer(token string) ClientOption {
	return func(c *Client) {
		if token != "" {
			c.headers["Authorization"] = "Bearer " + token
		}
	}
}

// WithRateLimit allows rps requests per second with the given burst.
// Zero rps disables limiting.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithRetry sets the retry policy for GET requests.
func WithRetry(p Policy) ClientOption {
	return func(c *Client) { c.retry = p }
}

// NewClient returns a Client resolving paths against baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, sperrors.Wrap(sperrors.ErrCodeInvalidInput, err, "invalid base url %q", baseURL)
	}
	c := &Client{
		http:    NewHTTPClient(),
		base:    base,
		headers: map[string]string{"Accept": "application/json", "User-Agent": buildinfo.UserAgent()},
		retry:   DefaultPolicy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get fetches path and decodes the JSON response into out. Transient
// failures are retried according to the client's policy.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return Retry(ctx, c.retry, func() error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

// Post sends in as JSON and decodes the response into out. Posts are never
// retried: a timed-out creation may still have happened upstream.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return unwrapRetryable(c.do(ctx, http.MethodPost, path, in, out))
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	u, err := c.base.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return sperrors.Wrap(sperrors.ErrCodeInvalidInput, err, "invalid path %q", path)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, u.Host, u.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, u.Host, u.Path, err)
		return &RetryableError{Err: sperrors.Wrap(sperrors.ErrCodeNetwork, err, "%s %s", method, u.Path)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, method, u.Path); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return sperrors.Wrap(sperrors.ErrCodeHost, err, "decode %s %s", method, u.Path)
	}
	return nil
}

// checkStatus turns a non-2xx response into a coded error. Rate limiting
// and 5xx responses are marked retryable.
func checkStatus(resp *http.Response, method, path string) error {
	msg := upstreamMessage(resp.Body)
	cerr := sperrors.FromStatus(resp.StatusCode, "%s %s: status %d%s", method, path, resp.StatusCode, msg)
	if cerr == nil {
		return nil
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RetryableError{Err: cerr, After: retryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return &RetryableError{Err: cerr}
	}
	return cerr
}

func upstreamMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(body, 4096))
	if json.Unmarshal(data, &payload) != nil || payload.Message == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", payload.Message)
}

func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
