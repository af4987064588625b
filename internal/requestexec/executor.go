package requestexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"commitart/internal/config"
	"commitart/internal/logging"
	"commitart/internal/services"
)

const (
	maxResponseBytes = 1 << 20
	userAgent        = "commitart/0.1.0"

	// HeaderRequestID is stable across the retries of one descriptor.
	HeaderRequestID = "X-Request-ID"
	// HeaderRetryCount carries Descriptor.Attempt.
	HeaderRetryCount = "X-Retry-Count"
)

// Doer performs an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Notifier surfaces terminal failures to the user.
type Notifier interface {
	NotifyFailure(ctx context.Context, operation, message string) error
}

// Executor dispatches descriptors against a base URL.
type Executor struct {
	baseURL      string
	client       Doer
	logger       *slog.Logger
	notifier     Notifier
	policy       Policy
	initialDelay time.Duration
	jitter       time.Duration
	limiter      *rate.Limiter
	sleeper      func(context.Context, time.Duration) error
}

// Option customizes the executor.
type Option func(*Executor)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client Doer) Option {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger attaches a logger; retries and terminal failures are logged.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithNotifier sets the sink for terminal failure messages.
func WithNotifier(n Notifier) Option {
	return func(e *Executor) {
		e.notifier = n
	}
}

// WithPolicy sets the policy applied by NewDescriptor.
func WithPolicy(p Policy) Option {
	return func(e *Executor) {
		e.policy = p
	}
}

// WithInitialDelay sets the first backoff delay; later retries double it.
func WithInitialDelay(d time.Duration) Option {
	return func(e *Executor) {
		if d >= 0 {
			e.initialDelay = d
		}
	}
}

// WithJitter sets the exclusive upper bound of the random delay added to each backoff.
func WithJitter(d time.Duration) Option {
	return func(e *Executor) {
		if d >= 0 {
			e.jitter = d
		}
	}
}

// WithLimiter paces every dispatch, retries included.
func WithLimiter(l *rate.Limiter) Option {
	return func(e *Executor) {
		e.limiter = l
	}
}

// WithSleeper overrides how backoff sleeps are performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(e *Executor) {
		if sleeper != nil {
			e.sleeper = sleeper
		}
	}
}

// New constructs an executor for baseURL.
func New(baseURL string, opts ...Option) *Executor {
	e := &Executor{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:       &http.Client{},
		logger:       logging.NewNop(),
		policy:       DefaultPolicy(),
		initialDelay: defaultInitialDelay,
		jitter:       defaultJitter,
		sleeper:      sleepWithContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig builds an executor from the [remote] and [executor] sections.
// Options are applied after the configured values.
func NewFromConfig(cfg *config.Config, opts ...Option) *Executor {
	policy := DefaultPolicy()
	policy.Timeout = cfg.RequestTimeout()
	policy.MaxRetries = cfg.Executor.MaxRetries

	base := []Option{
		WithPolicy(policy),
		WithInitialDelay(cfg.InitialDelay()),
		WithJitter(cfg.Jitter()),
	}
	if rps := cfg.Executor.RequestsPerSecond; rps > 0 {
		base = append(base, WithLimiter(rate.NewLimiter(rate.Limit(rps), 1)))
	}
	return New(cfg.Remote.BaseURL, append(base, opts...)...)
}

// Policy returns the executor's default policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// NewDescriptor builds a descriptor carrying the executor's default policy.
func (e *Executor) NewDescriptor(operation, method, path string, payload any) *Descriptor {
	d := NewDescriptor(operation, method, path, payload)
	d.Policy = e.policy
	return d
}

// Execute runs d to a terminal state. For a non-nil descriptor the returned
// error is always a *Failure; its Kind is KindCancelled when ctx ended first.
func (e *Executor) Execute(ctx context.Context, d *Descriptor) (*Response, error) {
	if d == nil {
		return nil, services.Wrap(services.ErrContractViolation, "requestexec", "execute", "nil descriptor", nil)
	}
	if d.RequestID == "" {
		d.RequestID = uuid.NewString()
	}
	ctx = services.WithOperation(ctx, d.Operation)
	ctx = services.WithRequestID(ctx, d.RequestID)
	logger := logging.WithContext(ctx, e.logger)

	body, err := d.encodePayload()
	if err != nil {
		f := requestFailure(d, services.KindContractViolation, err)
		f.Attempts = 0
		return nil, f
	}

	dispatched := 0
	for {
		if ctx.Err() != nil {
			return nil, e.cancelled(ctx, logger, d, dispatched)
		}
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil, e.cancelled(ctx, logger, d, dispatched)
				}
				return nil, e.fail(ctx, logger, d, requestFailure(d, services.KindTransient, fmt.Errorf("rate limit: %w", err)), dispatched)
			}
		}

		dispatched++
		resp, failure := e.attempt(ctx, d, body)
		if failure == nil {
			resp.Attempts = dispatched
			logger.Debug("request resolved",
				logging.Int("status", resp.Status),
				logging.Int("attempts", dispatched),
			)
			return resp, nil
		}
		if failure.Kind == services.KindCancelled {
			return nil, e.cancelled(ctx, logger, d, dispatched)
		}
		if !e.shouldRetry(d, failure) {
			return nil, e.fail(ctx, logger, d, failure, dispatched)
		}

		d.Attempt++
		delay := e.backoff(d.Attempt)
		logging.WarnWithContext(logger, "retrying request", "request_retry",
			logging.Int("attempt", d.Attempt),
			logging.Int("max_retries", d.Policy.MaxRetries),
			logging.Duration("backoff", delay),
			logging.Int("status", failure.Status),
			logging.String("reason", failure.Error()),
			logging.String(logging.FieldErrorHint, "remote endpoint unavailable; retrying automatically"),
			logging.String(logging.FieldImpact, "request delayed"),
		)
		if err := e.sleeper(ctx, delay); err != nil {
			return nil, e.cancelled(ctx, logger, d, dispatched)
		}
	}
}

// shouldRetry reads only the classified kind: client-fault classes never retry.
func (e *Executor) shouldRetry(d *Descriptor, f *Failure) bool {
	if !d.Policy.Retryable {
		return false
	}
	if f.Kind != services.KindTransient {
		return false
	}
	return d.Attempt < d.Policy.MaxRetries
}

// backoff returns initialDelay * 2^(attempt-1), capped at maxBackoff, plus
// jitter in [0, jitter).
func (e *Executor) backoff(attempt int) time.Duration {
	delay := min(e.initialDelay, maxBackoff)
	for i := 1; i < attempt && delay < maxBackoff; i++ {
		delay = min(delay*2, maxBackoff)
	}
	if e.jitter > 0 {
		delay += rand.N(e.jitter)
	}
	return delay
}

func (e *Executor) attempt(ctx context.Context, d *Descriptor, body []byte) (*Response, *Failure) {
	timeout := d.Policy.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, d.method(), e.endpoint(d), reader)
	if err != nil {
		return nil, requestFailure(d, services.KindContractViolation, fmt.Errorf("build %s request: %w", d.Operation, err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderRequestID, d.RequestID)
	req.Header.Set(HeaderRetryCount, strconv.Itoa(d.Attempt))

	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, cancelledFailure(ctx, d)
		}
		return nil, noResponseFailure(d, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, cancelledFailure(ctx, d)
		}
		return nil, noResponseFailure(d, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusFailure(d, resp.StatusCode, resp.Header, data)
	}
	return &Response{
		Status:    resp.StatusCode,
		Header:    resp.Header.Clone(),
		Body:      data,
		RequestID: d.RequestID,
	}, nil
}

func (e *Executor) endpoint(d *Descriptor) string {
	target := e.baseURL
	if path := strings.TrimLeft(d.Path, "/"); path != "" {
		target += "/" + path
	}
	if len(d.Query) > 0 {
		target += "?" + d.Query.Encode()
	}
	return target
}

func (e *Executor) cancelled(ctx context.Context, logger *slog.Logger, d *Descriptor, dispatched int) *Failure {
	f := cancelledFailure(ctx, d)
	f.Attempts = dispatched
	logger.Info("request cancelled",
		logging.Int("attempts", dispatched),
		logging.String(logging.FieldEventType, "request_cancelled"),
	)
	return f
}

func (e *Executor) fail(ctx context.Context, logger *slog.Logger, d *Descriptor, f *Failure, dispatched int) *Failure {
	f.Attempts = dispatched
	logging.ErrorWithContext(logger, "request failed", "request_failed",
		logging.String("kind", string(f.Kind)),
		logging.Int("status", f.Status),
		logging.Int("attempts", dispatched),
		logging.String("remote_correlation_id", f.CorrelationID),
		logging.String(logging.FieldErrorHint, errorHint(f.Kind)),
		logging.Error(f),
	)
	if d.Policy.SuppressNotification || e.notifier == nil {
		return f
	}
	if err := e.notifier.NotifyFailure(ctx, d.Operation, f.UserMessage()); err != nil {
		logging.WarnWithContext(logger, "failure notification not delivered", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
			logging.String(logging.FieldImpact, "user was not notified of the failure"),
		)
	}
	return f
}

func errorHint(kind services.Kind) string {
	switch kind {
	case services.KindAuth:
		return "token expired or revoked; sign in again and update remote.token"
	case services.KindPermission:
		return "account lacks access or credits; run 'commitart request-access'"
	case services.KindConflict:
		return "remote state conflicts with the request; check the target repository"
	case services.KindValidation:
		return "request payload was rejected; check input text, grid and credentials"
	case services.KindTransient:
		return "remote endpoint unavailable; try again later"
	default:
		return "check logs for details"
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsCancelled reports whether err is a cancelled execution.
func IsCancelled(err error) bool {
	if f, ok := AsFailure(err); ok {
		return f.Kind == services.KindCancelled
	}
	return errors.Is(err, context.Canceled)
}
