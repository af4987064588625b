package services_test

import (
	"context"
	"testing"

	"commitart/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithOwner(ctx, "octocat")
	ctx = services.WithOperation(ctx, "generate")
	ctx = services.WithRequestID(ctx, "req-123")
	ctx = services.WithSessionID(ctx, "sess-1")

	if owner, ok := services.OwnerFromContext(ctx); !ok || owner != "octocat" {
		t.Fatalf("unexpected owner: %v %v", owner, ok)
	}
	if op, ok := services.OperationFromContext(ctx); !ok || op != "generate" {
		t.Fatalf("unexpected operation: %v %v", op, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
	if sid, ok := services.SessionIDFromContext(ctx); !ok || sid != "sess-1" {
		t.Fatalf("unexpected session id: %v %v", sid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithOperation(ctx, "")
	ctx = services.WithOwner(ctx, "")
	if _, ok := services.OperationFromContext(ctx); ok {
		t.Fatal("expected no operation value")
	}
	if _, ok := services.OwnerFromContext(ctx); ok {
		t.Fatal("expected no owner value")
	}
}
