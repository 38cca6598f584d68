package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	_defaultTimeout         = 10 * time.Second
	_defaultMaxAttempts     = 3
	_defaultInitialInterval = time.Second
	_defaultMaxInterval     = 30 * time.Second
)

// Option -.
type Option func(*WebClient)

// Timeout sets the per-attempt timeout.
func Timeout(timeout time.Duration) Option {
	return func(c *WebClient) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// MaxAttempts sets the total number of attempts, first one included.
func MaxAttempts(attempts int) Option {
	return func(c *WebClient) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// InitialInterval sets the first backoff delay; later delays double.
func InitialInterval(interval time.Duration) Option {
	return func(c *WebClient) {
		if interval > 0 {
			c.initialInterval = interval
		}
	}
}

// MaxInterval caps a single backoff delay.
func MaxInterval(interval time.Duration) Option {
	return func(c *WebClient) {
		if interval > 0 {
			c.maxInterval = interval
		}
	}
}

// HTTPClient replaces the underlying client, e.g. to tune its transport.
// Apply it before Timeout, which sets the timeout on whichever client is
// installed.
func HTTPClient(client *http.Client) Option {
	return func(c *WebClient) {
		if client != nil {
			c.client = client
		}
	}
}

// CircuitBreaker trips after failures consecutive 5xx or transport errors
// and stays open for openTimeout. failures == 0 leaves it disabled.
func CircuitBreaker(name string, failures uint32, openTimeout time.Duration) Option {
	return func(c *WebClient) {
		if failures == 0 {
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				code := StatusCode(err)
				return code > 0 && code < http.StatusInternalServerError
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.onBreakerChange(name, from.String(), to.String())
			},
		})
	}
}

// OnAttempt registers a hook called after every attempt.
func OnAttempt(fn func(outcome string, duration time.Duration)) Option {
	return func(c *WebClient) {
		if fn != nil {
			c.onAttempt = fn
		}
	}
}

// OnRetry registers a hook called before every backoff wait.
func OnRetry(fn func(attempt int, delay time.Duration)) Option {
	return func(c *WebClient) {
		if fn != nil {
			c.onRetry = fn
		}
	}
}

// RequestEditor lets callers decorate outgoing requests, e.g. with
// correlation headers taken from ctx.
func RequestEditor(fn func(ctx context.Context, req *http.Request)) Option {
	return func(c *WebClient) {
		if fn != nil {
			c.editors = append(c.editors, fn)
		}
	}
}
