package utils

import (
	"context"
	"testing"
)

func TestContextRoundTrips(t *testing.T) {
	ctx := context.Background()

	ctx = SetBusinessIdInContext(ctx, "biz-1")
	ctx = SetUserIdInContext(ctx, 7)
	ctx = SetUserNameInContext(ctx, "Huda")
	ctx = SetCorrelationIdInContext(ctx, "corr-abc")

	if v, ok := GetBusinessIdFromContext(ctx); !ok || v != "biz-1" {
		t.Fatalf("business id: got %q, %v", v, ok)
	}
	if v, ok := GetUserIdFromContext(ctx); !ok || v != 7 {
		t.Fatalf("user id: got %d, %v", v, ok)
	}
	if v, ok := GetUserNameFromContext(ctx); !ok || v != "Huda" {
		t.Fatalf("user name: got %q, %v", v, ok)
	}
	if v, ok := GetCorrelationIdFromContext(ctx); !ok || v != "corr-abc" {
		t.Fatalf("correlation id: got %q, %v", v, ok)
	}
}

func TestContextMissingValues(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetBusinessIdFromContext(ctx); ok {
		t.Fatal("expected no business id on a bare context")
	}
	if _, ok := GetUserIdFromContext(ctx); ok {
		t.Fatal("expected no user id on a bare context")
	}
}
