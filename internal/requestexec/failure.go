package requestexec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"commitart/internal/services"
)

const (
	fallbackMessage = "An unexpected error occurred"
	networkMessage  = "Network Error: No response from server. Please check your connection."
	sessionMessage  = "Session expired. Please sign in again."
)

// Failure is the terminal, classified outcome of a request that did not
// resolve. It is produced once at the HTTP boundary and never re-inspected.
type Failure struct {
	Kind          services.Kind
	Operation     string
	Status        int
	Message       string
	Code          string
	CorrelationID string
	RequestID     string
	Attempts      int
	// NoResponse is set for timeouts and connectivity failures.
	NoResponse bool
	Err        error
}

func (f *Failure) Error() string {
	var b strings.Builder
	if f.Operation != "" {
		b.WriteString(f.Operation)
		b.WriteString(": ")
	}
	b.WriteString(string(f.Kind))
	if f.Status > 0 {
		fmt.Fprintf(&b, " (%d)", f.Status)
	}
	switch {
	case f.Message != "":
		b.WriteString(": ")
		b.WriteString(f.Message)
	case f.Err != nil:
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the taxonomy marker and the underlying cause so that
// errors.Is works for services.ErrConflict as well as context.Canceled.
func (f *Failure) Unwrap() []error {
	errs := make([]error, 0, 2)
	if marker := f.Kind.Marker(); marker != nil {
		errs = append(errs, marker)
	}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}

// UserMessage renders the failure as the one-line notification shown to the user.
func (f *Failure) UserMessage() string {
	msg := f.Message
	if msg == "" {
		msg = fallbackMessage
	}
	switch {
	case f.Kind == services.KindCancelled:
		return "Request cancelled."
	case f.Status == http.StatusInternalServerError:
		suffix := ""
		if f.CorrelationID != "" {
			suffix = fmt.Sprintf(" [Req ID: %s]", f.CorrelationID)
		}
		return fmt.Sprintf("Server Error: %s%s", msg, suffix)
	case f.Status == http.StatusBadRequest:
		return "Validation Error: " + msg
	case f.Status == http.StatusUnauthorized:
		return sessionMessage
	case f.Status == http.StatusForbidden:
		return "Permission Denied: " + msg
	case f.Status == http.StatusConflict:
		return "Conflict: " + msg
	case f.Status == http.StatusServiceUnavailable:
		return "Service Unavailable: " + msg
	case f.Status > 0:
		return fmt.Sprintf("Error (%d): %s", f.Status, msg)
	case f.NoResponse:
		return networkMessage
	default:
		detail := "unknown error"
		if f.Err != nil {
			detail = f.Err.Error()
		}
		return "Request Failed: " + detail
	}
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

type errorPayload struct {
	StatusCode    int    `json:"statusCode"`
	Message       string `json:"message"`
	Error         string `json:"error"`
	ErrorCode     string `json:"errorCode"`
	Code          string `json:"code"`
	CorrelationID string `json:"correlationId"`
}

// classifyStatus maps an HTTP status onto the failure taxonomy.
func classifyStatus(status int) services.Kind {
	switch {
	case status >= 500:
		return services.KindTransient
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return services.KindTransient
	case status == http.StatusUnauthorized:
		return services.KindAuth
	case status == http.StatusForbidden:
		return services.KindPermission
	case status == http.StatusConflict, status == http.StatusPreconditionFailed:
		return services.KindConflict
	default:
		return services.KindValidation
	}
}

func statusFailure(d *Descriptor, status int, header http.Header, body []byte) *Failure {
	f := &Failure{
		Kind:      classifyStatus(status),
		Operation: d.Operation,
		Status:    status,
		RequestID: d.RequestID,
		Attempts:  d.Attempt + 1,
	}
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		f.Message = strings.TrimSpace(payload.Message)
		if f.Message == "" {
			f.Message = strings.TrimSpace(payload.Error)
		}
		f.Code = strings.TrimSpace(payload.ErrorCode)
		if f.Code == "" {
			f.Code = strings.TrimSpace(payload.Code)
		}
		f.CorrelationID = strings.TrimSpace(payload.CorrelationID)
	}
	if f.CorrelationID == "" && header != nil {
		f.CorrelationID = strings.TrimSpace(header.Get("X-Correlation-ID"))
	}
	f.Err = fmt.Errorf("http %d", status)
	return f
}

func noResponseFailure(d *Descriptor, err error) *Failure {
	return &Failure{
		Kind:       services.KindTransient,
		Operation:  d.Operation,
		RequestID:  d.RequestID,
		Attempts:   d.Attempt + 1,
		NoResponse: true,
		Err:        err,
	}
}

func cancelledFailure(ctx context.Context, d *Descriptor) *Failure {
	err := ctx.Err()
	if err == nil {
		err = context.Canceled
	}
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, err) {
		err = errors.Join(err, cause)
	}
	return &Failure{
		Kind:      services.KindCancelled,
		Operation: d.Operation,
		RequestID: d.RequestID,
		Attempts:  d.Attempt + 1,
		Err:       err,
	}
}

func requestFailure(d *Descriptor, kind services.Kind, err error) *Failure {
	return &Failure{
		Kind:      kind,
		Operation: d.Operation,
		RequestID: d.RequestID,
		Attempts:  d.Attempt + 1,
		Err:       err,
	}
}
