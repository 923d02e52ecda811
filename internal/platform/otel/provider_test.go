package otel

import (
	"context"
	"testing"
)

func TestSetupDisabledByEmptyEndpoint(t *testing.T) {
	t.Setenv("AUDITGATE_OTEL_ENDPOINT", "")
	t.Setenv("AUDITGATE_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "web")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown must not be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetupDisabledExplicitly(t *testing.T) {
	t.Setenv("AUDITGATE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("AUDITGATE_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "web")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
