package plansfeatures

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pet-care-insights/internal/ports/capabilities"
)

func TestResolver_FetchesAndCaches(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Query().Get("user_id") != "u1" || r.Header.Get("X-Api-Key") != "k" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"capabilities":{"report:weight":true,"report:symptoms":false}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	res := NewResolver(client, false)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		set, err := res.Resolve(context.Background(), "u1")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !set.Allows(capabilities.ReportSection("weight")) || set.Allows(capabilities.ReportSection("symptoms")) {
			t.Fatalf("unexpected set: %v", set)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}

	clock = clock.Add(DefaultCacheTTL + time.Second)
	if _, err := res.Resolve(context.Background(), "u1"); err != nil {
		t.Fatalf("resolve after ttl: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected refetch after ttl, got %d calls", calls)
	}

	if _, err := res.Resolve(context.Background(), "other"); !errors.Is(err, ErrPlansUnauthorized) {
		t.Fatalf("expected ErrPlansUnauthorized, got %v", err)
	}
}

func TestResolver_AllowAllAndNotConfigured(t *testing.T) {
	set, err := NewResolver(nil, true).Resolve(context.Background(), "u1")
	if err != nil || !set.Allows("report:anything") {
		t.Fatalf("allow-all must grant everything: %v (%v)", set, err)
	}

	client, _ := NewClient(Config{})
	if _, err := NewResolver(client, false).Resolve(context.Background(), "u1"); !errors.Is(err, ErrPlansNotConfigured) {
		t.Fatalf("expected ErrPlansNotConfigured, got %v", err)
	}
}
