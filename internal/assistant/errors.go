package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies provider failures for retry decisions
type ErrorKind int

const (
	// KindGeneric covers transient transport and server errors
	KindGeneric ErrorKind = iota
	// KindAuth means the API key is missing or rejected; retrying cannot help
	KindAuth
	// KindRateLimit covers rate-limit and payment-required responses;
	// retried with exponential backoff
	KindRateLimit
)

// ProviderError wraps an upstream API failure with its retry class
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case KindAuth:
		return fmt.Sprintf("%s: authentication failed: %v", e.Provider, e.Err)
	case KindRateLimit:
		return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is a non-retryable authentication failure
func IsAuthError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindAuth
}

// IsRateLimitError reports whether err should be retried with backoff
func IsRateLimitError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindRateLimit
}

// AskWithRetry calls the provider, retrying rate-limit failures with
// exponential backoff (1s, 2s, 4s, ...). Auth failures and generic errors
// return immediately.
func AskWithRetry(ctx context.Context, p Provider, req AskRequest, maxRetries int) (*AskResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := p.Ask(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !IsRateLimitError(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("retries exhausted: %w", lastErr)
}
