package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := limiter.Wait(ctx, "http://example.com/page"); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestLimiter_PerDomainIsolation(t *testing.T) {
	limiter := NewLimiter(0.001, 1)

	// Drain example.com's burst
	if !limiter.Allow("http://example.com/a") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("http://example.com/b") {
		t.Error("second request to same domain should be limited")
	}

	// Other domains have their own budget
	if !limiter.Allow("http://other.com/a") {
		t.Error("different domain should not share the limit")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(100, 5)
	limiter.SetDomainRate("slow.example.com", 0.001, 1)

	if !limiter.Allow("http://slow.example.com/a") {
		t.Fatal("burst request should pass")
	}
	if limiter.Allow("http://slow.example.com/b") {
		t.Error("overridden domain should be limited")
	}
	if !limiter.Allow("http://fast.example.com/a") {
		t.Error("default-rate domain should pass")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(100, 5)
	if limiter.Allow("http://bad url with spaces") {
		t.Error("unparseable URL should not be allowed")
	}
}
