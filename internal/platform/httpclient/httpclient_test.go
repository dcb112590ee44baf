package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoJSON_DecodesAndSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" || r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "bad headers", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "v1/check", map[string]string{"X-Api-Key": "secret"}, map[string]string{"a": "b"}, &out)
	if err != nil || !out.OK {
		t.Fatalf("unexpected result: %+v (%v)", out, err)
	}
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(time.Second).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusForbidden || httpErr.Body != "nope" {
		t.Fatalf("expected HTTPError 403, got %v", err)
	}
}

func TestDoJSON_RelativePathWithoutBaseURL(t *testing.T) {
	err := New(time.Second).DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	if !errors.Is(err, ErrRelativeURL) {
		t.Fatalf("expected ErrRelativeURL, got %v", err)
	}
}

func TestWithRateLimit_HonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := New(time.Second).WithRateLimit(0.5) // burst 1, después un token cada 2s

	if err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil); err != nil {
		t.Fatalf("first request must pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := c.DoJSON(ctx, http.MethodGet, srv.URL, nil, nil, nil); err == nil {
		t.Fatalf("second request must be throttled until the context expires")
	}
}

func TestWithRetries_GetRecoversFrom5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"n":3}`))
	}))
	defer srv.Close()

	c := New(time.Second).WithRetries(2, time.Millisecond)
	var out struct {
		N int `json:"n"`
	}
	if err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.N != 3 || calls.Load() != 3 {
		t.Fatalf("got n=%d after %d calls", out.N, calls.Load())
	}
}

func TestWithRetries_SkipsClientErrorsAndPost(t *testing.T) {
	cases := []struct {
		name   string
		method string
		status int
	}{
		{"get 404", http.MethodGet, http.StatusNotFound},
		{"post 503", http.MethodPost, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(tc.status)
		}))

		c := New(time.Second).WithRetries(3, time.Millisecond)
		err := c.DoJSON(context.Background(), tc.method, srv.URL, nil, nil, nil)
		srv.Close()

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != tc.status {
			t.Errorf("%s: expected HTTPError %d, got %v", tc.name, tc.status, err)
		}
		if calls.Load() != 1 {
			t.Errorf("%s: expected 1 call, got %d", tc.name, calls.Load())
		}
	}
}
