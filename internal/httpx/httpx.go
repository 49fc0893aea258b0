package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// FetchError carries the HTTP status of a failed upstream call so callers
// can classify it.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

// Client wraps http.Client with per-host rate limits and polite retries on
// throttling responses. Both upstream APIs (search and LLM) go through it.
type Client struct {
	client   *http.Client
	ua       string
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

func NewClient(userAgent string) *Client {
	return &Client{
		client:   &http.Client{Timeout: 30 * time.Second},
		ua:       userAgent,
		limiters: map[string]*rate.Limiter{},
	}
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(time.Second), 2) // 1 req/s, burst 2
	c.limiters[host] = l
	return l
}

// NewRequest builds an HTTP request with context and a URL defaulting to https.
func NewRequest(ctx context.Context, method, rawURL string) (*http.Request, error) {
	if rawURL == "" {
		return nil, errors.New("empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return http.NewRequestWithContext(ctx, method, u.String(), nil)
}

// Do executes the request respecting the per-host limiter, retrying up to
// three times on 429/503 with exponential backoff.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.ua)
	}

	limiter := c.limiterFor(req.URL.Hostname())

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			lastErr = &FetchError{URL: req.URL.String(), Status: resp.StatusCode}
			resp.Body.Close()
			backoff := time.Duration(500*(1<<attempt)) * time.Millisecond
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		return resp, nil
	}

	if lastErr == nil {
		lastErr = errors.New("httpx: failed without error")
	}
	return nil, lastErr
}
