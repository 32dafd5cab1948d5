package services_test

import (
	"context"
	"testing"

	"bulkscrape/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithItemID(ctx, "42")
	ctx = services.WithMode(ctx, "url_scrape")
	ctx = services.WithRunID(ctx, "run-123")

	if id, ok := services.ItemIDFromContext(ctx); !ok || id != "42" {
		t.Fatalf("unexpected item id: %v %v", id, ok)
	}
	if mode, ok := services.ModeFromContext(ctx); !ok || mode != "url_scrape" {
		t.Fatalf("unexpected mode: %v %v", mode, ok)
	}
	if rid, ok := services.RunIDFromContext(ctx); !ok || rid != "run-123" {
		t.Fatalf("unexpected run id: %v %v", rid, ok)
	}
}

func TestModeBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithMode(ctx, "")
	if _, ok := services.ModeFromContext(ctx); ok {
		t.Fatal("expected no mode value")
	}
}
