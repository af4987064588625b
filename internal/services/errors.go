package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Failure markers. Every error that crosses a package boundary is tagged with
// exactly one of these so callers can branch with errors.Is.
var (
	ErrValidation        = errors.New("validation failure")
	ErrAuth              = errors.New("authentication failure")
	ErrPermission        = errors.New("permission failure")
	ErrConflict          = errors.New("conflict failure")
	ErrTransient         = errors.New("transient failure")
	ErrCancelled         = errors.New("cancelled")
	ErrContractViolation = errors.New("contract violation")
	ErrConfiguration     = errors.New("configuration error")
)

// Kind names a failure class for logs, ledger rows, and JSON output.
type Kind string

const (
	KindNone              Kind = ""
	KindValidation        Kind = "validation"
	KindAuth              Kind = "auth"
	KindPermission        Kind = "permission"
	KindConflict          Kind = "conflict"
	KindTransient         Kind = "transient"
	KindCancelled         Kind = "cancelled"
	KindContractViolation Kind = "contract_violation"
	KindConfiguration     Kind = "configuration"
)

var kindMarkers = []struct {
	kind   Kind
	marker error
}{
	{KindCancelled, ErrCancelled},
	{KindContractViolation, ErrContractViolation},
	{KindValidation, ErrValidation},
	{KindAuth, ErrAuth},
	{KindPermission, ErrPermission},
	{KindConflict, ErrConflict},
	{KindConfiguration, ErrConfiguration},
	{KindTransient, ErrTransient},
}

// Marker returns the sentinel error for kind, or nil for KindNone.
func (k Kind) Marker() error {
	for _, km := range kindMarkers {
		if km.kind == k {
			return km.marker
		}
	}
	return nil
}

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// KindOf reports the failure class carried by err. Context cancellation counts
// as KindCancelled even when no marker was attached.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, km := range kindMarkers {
		if errors.Is(err, km.marker) {
			return km.kind
		}
	}
	if IsCancelled(err) {
		return KindCancelled
	}
	return KindTransient
}

// IsCancelled reports whether err represents a cooperative abort rather than a
// failure.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
