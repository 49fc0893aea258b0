package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestNewRequestDefaultsScheme(t *testing.T) {
	req, err := NewRequest(context.Background(), http.MethodGet, "example.com/path")
	if err != nil {
		t.Fatal(err)
	}
	if req.URL.Scheme != "https" {
		t.Errorf("scheme = %q, want https", req.URL.Scheme)
	}

	req, err = NewRequest(context.Background(), http.MethodGet, "http://example.com/path")
	if err != nil {
		t.Fatal(err)
	}
	if req.URL.Scheme != "http" {
		t.Errorf("explicit scheme overwritten: %q", req.URL.Scheme)
	}
}

func TestNewRequestEmptyURL(t *testing.T) {
	if _, err := NewRequest(context.Background(), http.MethodGet, ""); err == nil {
		t.Fatal("NewRequest accepted an empty url")
	}
}

func TestDoSetsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := NewClient("test-agent/1.0")
	req, _ := NewRequest(context.Background(), http.MethodGet, srv.URL)

	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if ua != "test-agent/1.0" {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestDoRetriesOnThrottling(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient("test-agent/1.0")
	req, _ := NewRequest(context.Background(), http.MethodGet, srv.URL)

	resp, err := c.Do(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d after retry", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestDoGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient("test-agent/1.0")
	req, _ := NewRequest(context.Background(), http.MethodGet, srv.URL)

	_, err := c.Do(context.Background(), req)
	if err == nil {
		t.Fatal("Do succeeded against a persistently throttling server")
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Status != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want FetchError with 503", err)
	}
}
