package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"job-research/internal/httpx"
)

func TestClassifyFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ErrorUnknown},
		{"rate limited", &httpx.FetchError{Status: http.StatusTooManyRequests}, ErrorRateLimit},
		{"server error", &httpx.FetchError{Status: http.StatusBadGateway}, ErrorNetwork},
		{"client error", &httpx.FetchError{Status: http.StatusForbidden}, ErrorNetwork},
		{"wrapped fetch error", fmt.Errorf("search: %w", &httpx.FetchError{Status: 429}), ErrorRateLimit},
		{"deadline", context.DeadlineExceeded, ErrorNetwork},
		{"plain error", errors.New("something odd"), ErrorUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyFetchError(tc.err); got != tc.want {
				t.Errorf("ClassifyFetchError = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ErrorUnknown},
		{"decode failure", errors.New("serpapi: decode failed: unexpected EOF"), ErrorParsing},
		{"bad json", errors.New("invalid character '}' looking for beginning of value"), ErrorParsing},
		{"rate limited", &httpx.FetchError{Status: 429}, ErrorRateLimit},
		{"anything else", errors.New("connection refused"), ErrorNetwork},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyAPIError(tc.err); got != tc.want {
				t.Errorf("ClassifyAPIError = %q, want %q", got, tc.want)
			}
		})
	}
}
