// Package httpx holds the request loop shared by upstream API clients.
package httpx

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/resilience"
)

const maxBodyBytes = 4 << 20

// ErrTransient marks failures worth retrying and counting against the breaker.
var ErrTransient = crerr.New("upstream transient failure")

// StatusError is a non-2xx response that is not retryable.
type StatusError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status=%d body=%s", e.Upstream, e.StatusCode, e.Body)
}

// StatusCode extracts the HTTP status of a StatusError, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// Unavailable reports whether err means the upstream could not be reached or
// is shedding load, as opposed to answering with a definitive status.
func Unavailable(err error) bool {
	return stderrors.Is(err, ErrTransient) || stderrors.Is(err, resilience.ErrCircuitOpen)
}

type Config struct {
	// Name labels logs, breaker state and failure metrics, e.g. "gamma".
	Name       string
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxRetries int
	Breaker    *resilience.CircuitBreaker
	Logger     *logging.Logger
	// Secrets are scrubbed from error text and logs.
	Secrets []string
	// OnFailure is called once per failed call after retries are exhausted.
	OnFailure func(upstream string)
}

type Requester struct {
	name       string
	httpClient *http.Client
	maxRetries int
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
	secrets    []string
	onFailure  func(string)
}

func New(cfg Config) *Requester {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	secrets := make([]string, 0, len(cfg.Secrets))
	for _, secret := range cfg.Secrets {
		if strings.TrimSpace(secret) != "" {
			secrets = append(secrets, secret)
		}
	}

	return &Requester{
		name:       cfg.Name,
		httpClient: httpClient,
		maxRetries: max(cfg.MaxRetries, 0),
		breaker:    cfg.Breaker,
		logger:     logger.Named("client." + cfg.Name),
		secrets:    secrets,
		onFailure:  cfg.OnFailure,
	}
}

// RequestOption decorates an outgoing request, e.g. with credentials.
type RequestOption func(*http.Request)

func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

func WithBasicAuth(username, password string) RequestOption {
	return func(req *http.Request) {
		if username != "" {
			req.SetBasicAuth(username, password)
		}
	}
}

// GetJSON issues a GET and decodes a 2xx body into target.
func (r *Requester) GetJSON(ctx context.Context, rawURL string, target any, opts ...RequestOption) error {
	err := r.breaker.Execute(func() error {
		return r.execute(ctx, rawURL, target, opts)
	}, func(err error) bool {
		return stderrors.Is(err, ErrTransient)
	})
	if err == nil {
		return nil
	}

	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		r.logger.WarnContext(ctx, "circuit breaker rejected request", "state", r.breaker.State())
	}
	if r.onFailure != nil && StatusCode(err) != http.StatusNotFound {
		r.onFailure(r.name)
	}
	return err
}

func (r *Requester) execute(ctx context.Context, rawURL string, target any, opts []RequestOption) error {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		lastErr = r.attempt(ctx, rawURL, target, opts)
		if lastErr == nil || !stderrors.Is(lastErr, ErrTransient) {
			return lastErr
		}
		if attempt == r.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * 500 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.logger.WarnContext(ctx, "upstream request failed", "url", r.redactURL(rawURL), "error", lastErr)
	return lastErr
}

func (r *Requester) attempt(ctx context.Context, rawURL string, target any, opts []RequestOption) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: send request: %s", ErrTransient, r.redact(err.Error()))
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return fmt.Errorf("%w: read response body: %v", ErrTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := abbreviateBody(r.redact(buf.String()))
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: %s status=%d body=%s", ErrTransient, r.name, resp.StatusCode, body)
		}
		return &StatusError{Upstream: r.name, StatusCode: resp.StatusCode, Body: body}
	}

	if target == nil {
		return nil
	}
	if err := sonic.Unmarshal(buf.B, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", r.name, err)
	}
	return nil
}

func (r *Requester) redact(value string) string {
	for _, secret := range r.secrets {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return value
}

func (r *Requester) redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return r.redact(rawURL)
	}
	parsed.User = nil
	return r.redact(parsed.String())
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

// JoinURL appends path to base, tolerating missing or doubled slashes.
func JoinURL(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
