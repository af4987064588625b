package requestexec

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxRetries   = 3
	defaultInitialDelay = time.Second
	maxBackoff          = time.Minute
	defaultJitter       = 100 * time.Millisecond
)

// Policy controls how a single descriptor is executed.
type Policy struct {
	// Timeout bounds each attempt; the backoff sleep is not included.
	Timeout time.Duration
	// MaxRetries is the retry budget after the first attempt.
	MaxRetries int
	// Retryable gates every retry. Status polling sets it false.
	Retryable bool
	// SuppressNotification keeps terminal failures out of user notifications.
	SuppressNotification bool
}

// DefaultPolicy returns the 10s / 3 retries / notify policy.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:    defaultTimeout,
		MaxRetries: defaultMaxRetries,
		Retryable:  true,
	}
}

// SilentPolicy returns the policy used for background polling: a single
// attempt whose failure is never surfaced to the user.
func SilentPolicy() Policy {
	p := DefaultPolicy()
	p.Retryable = false
	p.SuppressNotification = true
	return p
}

// Descriptor is the mutable state of one logical outbound operation.
type Descriptor struct {
	// Operation names the call for logs and notifications (generate, status, ...).
	Operation string
	Method    string
	Path      string
	Query     url.Values
	Payload   any
	// Attempt is the retry counter; 0 on the first dispatch. It is sent to the
	// callee as X-Retry-Count.
	Attempt int
	Policy  Policy
	// RequestID is stable across retries so the callee can deduplicate. It is
	// assigned on first execution when empty.
	RequestID string
}

// NewDescriptor builds a descriptor with the default policy.
func NewDescriptor(operation, method, path string, payload any) *Descriptor {
	return &Descriptor{
		Operation: operation,
		Method:    method,
		Path:      path,
		Payload:   payload,
		Policy:    DefaultPolicy(),
	}
}

func (d *Descriptor) method() string {
	if d.Method != "" {
		return d.Method
	}
	if d.Payload != nil {
		return http.MethodPost
	}
	return http.MethodGet
}

func (d *Descriptor) encodePayload() ([]byte, error) {
	if d.Payload == nil {
		return nil, nil
	}
	if raw, ok := d.Payload.([]byte); ok {
		return raw, nil
	}
	data, err := json.Marshal(d.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", d.Operation, err)
	}
	return data, nil
}

// Response is a resolved (2xx) outcome.
type Response struct {
	Status    int
	Header    http.Header
	Body      []byte
	Attempts  int
	RequestID string
}

// Decode unmarshals the JSON response body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return fmt.Errorf("decode response: empty body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
