// Package httpclient is a JSON HTTP client that retries upstream 401
// responses with exponential backoff.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

// Attempt outcomes passed to the OnAttempt hook.
const (
	OutcomeSuccess        = "success"
	OutcomeClientError    = "client_error"
	OutcomeServerError    = "server_error"
	OutcomeTransportError = "transport_error"
	OutcomeCircuitOpen    = "circuit_open"
)

type WebClient struct {
	client          *http.Client
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	breaker         *gobreaker.CircuitBreaker[[]byte]
	editors         []func(ctx context.Context, req *http.Request)

	onAttempt func(outcome string, duration time.Duration)
	onRetry   func(attempt int, delay time.Duration)
}

// New -.
func New(opts ...Option) *WebClient {
	c := &WebClient{
		client:          &http.Client{Timeout: _defaultTimeout},
		maxAttempts:     _defaultMaxAttempts,
		initialInterval: _defaultInitialInterval,
		maxInterval:     _defaultMaxInterval,
		onAttempt:       func(string, time.Duration) {},
		onRetry:         func(int, time.Duration) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute sends method baseURL+path and decodes a 2xx JSON body into out.
// An upstream 401 is retried until the attempt budget is spent, then
// reported as *ApiClientError. Other failures are returned as they are.
// Cancelling ctx aborts both in-flight requests and backoff waits.
func (c *WebClient) Execute(ctx context.Context, baseURL, path, method string, out any) error {
	url := strings.TrimRight(baseURL, "/") + path
	b := c.newBackOff()

	var lastErr error
	for attempt := 1; ; attempt++ {
		body, err := c.do(ctx, method, url)
		if err == nil {
			if out == nil || len(body) == 0 {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode response from %s: %w", redact(url), err)
			}
			return nil
		}

		lastErr = err
		if !isRetryable(err) {
			return err
		}
		if attempt >= c.maxAttempts {
			zap.L().Error("Upstream retries exhausted",
				zap.String("url", redact(url)),
				zap.Int("attempts", attempt),
				zap.Error(lastErr))
			return &ApiClientError{
				StatusCode: StatusCode(lastErr),
				Message:    ExhaustedRetriesMessage,
				Attempts:   attempt,
				Err:        lastErr,
			}
		}

		delay := b.NextBackOff()
		c.onRetry(attempt, delay)
		zap.L().Warn("Retrying upstream request",
			zap.String("url", redact(url)),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry of %s aborted: %w", redact(url), ctx.Err())
		case <-timer.C:
		}
	}
}

func (c *WebClient) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = c.maxInterval
	b.Reset()
	return b
}

func (c *WebClient) do(ctx context.Context, method, url string) ([]byte, error) {
	start := time.Now()
	var (
		body []byte
		err  error
	)
	if c.breaker != nil {
		body, err = c.breaker.Execute(func() ([]byte, error) {
			return c.send(ctx, method, url)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%s %s: %w", method, redact(url), ErrCircuitOpen)
		}
	} else {
		body, err = c.send(ctx, method, url)
	}
	c.onAttempt(outcome(err), time.Since(start))
	return body, err
}

func (c *WebClient) send(ctx context.Context, method, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for _, edit := range c.editors {
		edit(ctx, req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, redact(url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        redact(url),
			Body:       string(snippet),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", redact(url), err)
	}
	return body, nil
}

func (c *WebClient) onBreakerChange(name, from, to string) {
	zap.L().Warn("Circuit breaker state changed",
		zap.String("name", name),
		zap.String("from", from),
		zap.String("to", to))
}

func outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if errors.Is(err, ErrCircuitOpen) {
		return OutcomeCircuitOpen
	}
	code := StatusCode(err)
	switch {
	case code >= 500:
		return OutcomeServerError
	case code >= 400:
		return OutcomeClientError
	default:
		return OutcomeTransportError
	}
}

// redact hides the appid query value so keys never reach logs.
func redact(url string) string {
	i := strings.Index(url, "appid=")
	if i < 0 {
		return url
	}
	end := strings.IndexByte(url[i:], '&')
	if end < 0 {
		return url[:i] + "appid=***"
	}
	return url[:i] + "appid=***" + url[i+end:]
}
