package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/vinyl/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"

	// RequestTimeout bounds every HTTP round trip, including the token
	// endpoint calls made by the auth flow.
	RequestTimeout = 10 * time.Second

	// maxRetryAfter caps how long a 429 retry will wait before giving up
	// and surfacing the error instead.
	maxRetryAfter = 30 * time.Second
)

// TokenSource yields a bearer token valid at call time. ForceRefresh is
// invoked when the remote rejects a token that looked valid locally.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	ForceRefresh(ctx context.Context) (string, error)
}

// Client issues authorized requests against the Spotify Web API.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client using tokens for authorization. An empty
// baseURL targets the production API; a nil httpClient gets a bounded
// timeout. The built-in limiter stays under Spotify's per-app rate limits.
func NewClient(tokens TokenSource, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}

	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// response is a raw API response retained for per-operation classification.
type response struct {
	status int
	header http.Header
	body   []byte
}

// request performs an authorized round trip. rawurl is either a path
// relative to the API base or an absolute cursor URL, which is followed
// verbatim. Handles the single 401 refresh-and-retry and the single 429
// retry; every other status is returned to the caller for classification.
func (c *Client) request(ctx context.Context, method, rawurl string, body any) (*response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, method, rawurl, body, token)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized {
		token, err = c.tokens.ForceRefresh(ctx)
		if err != nil {
			return nil, err
		}
		if resp, err = c.send(ctx, method, rawurl, body, token); err != nil {
			return nil, err
		}
	}

	if resp.status == http.StatusTooManyRequests {
		if err := c.waitRetryAfter(ctx, resp.header.Get("Retry-After")); err != nil {
			return nil, err
		}
		if resp, err = c.send(ctx, method, rawurl, body, token); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// do executes a request and decodes a 2xx JSON body into result when one is
// expected. Non-2xx statuses come back as classified errors.
func (c *Client) do(ctx context.Context, method, rawurl string, body, result any) error {
	resp, err := c.request(ctx, method, rawurl, body)
	if err != nil {
		return err
	}

	if err := classify(resp); err != nil {
		return err
	}

	if result != nil && resp.status != http.StatusNoContent && len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// send performs one HTTP round trip with the given bearer token.
func (c *Client) send(ctx context.Context, method, rawurl string, body any, token string) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fullURL := rawurl
	if !strings.HasPrefix(rawurl, "http") {
		fullURL = c.baseURL + rawurl
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// decode unmarshals a response body into result.
func decode(resp *response, result any) error {
	if err := json.Unmarshal(resp.body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// waitRetryAfter sleeps for the server-advertised backoff, defaulting to one
// second when the header is absent or malformed.
func (c *Client) waitRetryAfter(ctx context.Context, header string) error {
	wait := time.Second
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		wait = time.Duration(secs) * time.Second
	}

	if wait > maxRetryAfter {
		return fmt.Errorf("%w: retry after %s exceeds limit", shared.ErrRateLimited, wait)
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// classify maps an HTTP status onto the error taxonomy. 2xx is success; the
// caller inspects resp.status directly where an operation gives a status
// special meaning (204 player reads, 404 transport ops).
func classify(resp *response) error {
	switch {
	case resp.status >= 200 && resp.status < 300:
		return nil
	case resp.status == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", shared.ErrTokenRejected, resp.status)
	case resp.status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", shared.ErrPermissionDenied, resp.status)
	case resp.status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", shared.ErrRateLimited, resp.status)
	case resp.status >= 500:
		return fmt.Errorf("%w: status %d", shared.ErrUpstream, resp.status)
	default:
		return fmt.Errorf("%w: status %d: %s", shared.ErrUnexpectedStatus, resp.status, trimBody(resp.body))
	}
}

// trimBody shortens an error body for log-friendly messages.
func trimBody(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
