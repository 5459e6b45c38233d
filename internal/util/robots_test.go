package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_DisallowedPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprintln(w, "User-agent: *\nDisallow: /private/")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewRobotsChecker("lumos-test/1.0", 2*time.Second)
	ctx := context.Background()

	if !checker.Allowed(ctx, srv.URL+"/public/page") {
		t.Error("expected /public/page to be allowed")
	}
	if checker.Allowed(ctx, srv.URL+"/private/page") {
		t.Error("expected /private/page to be disallowed")
	}
}

func TestRobotsChecker_FailOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	// Close immediately so the robots.txt fetch fails.
	srv.Close()

	checker := NewRobotsChecker("lumos-test/1.0", 500*time.Millisecond)
	if !checker.Allowed(context.Background(), srv.URL+"/anything") {
		t.Error("expected fail-open allow when robots.txt is unreachable")
	}
}

func TestRobotsChecker_UnparseableURL(t *testing.T) {
	checker := NewRobotsChecker("lumos-test/1.0", time.Second)
	if checker.Allowed(context.Background(), "not a url") {
		t.Error("expected unparseable URL to be rejected")
	}
	if checker.Allowed(context.Background(), "/relative/only") {
		t.Error("expected hostless URL to be rejected")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var fetches atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fetches.Add(1)
			fmt.Fprintln(w, "User-agent: *\nAllow: /")
		}
	}))
	defer srv.Close()

	checker := NewRobotsChecker("lumos-test/1.0", 2*time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		checker.Allowed(ctx, srv.URL+fmt.Sprintf("/page/%d", i))
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", got)
	}

	checker.Clear()
	checker.Allowed(ctx, srv.URL+"/after-clear")
	if got := fetches.Load(); got != 2 {
		t.Errorf("robots.txt fetched %d times after Clear, want 2", got)
	}
}
