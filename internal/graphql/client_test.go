package graphql_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bulkscrape/internal/graphql"
	"bulkscrape/internal/services"
)

func TestDoSendsAPIKeyAndDecodesData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("ApiKey"); got != "secret" {
			t.Fatalf("expected api key header, got %q", got)
		}
		var payload struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Variables["name"] != "blk_scrape_url" {
			t.Fatalf("unexpected variables: %v", payload.Variables)
		}
		_, _ = w.Write([]byte(`{"data":{"findTags":{"count":1}}}`))
	}))
	defer server.Close()

	client := graphql.New(graphql.Config{Endpoint: server.URL, APIKey: "secret"})
	var out struct {
		FindTags struct {
			Count int `json:"count"`
		} `json:"findTags"`
	}
	if err := client.Do(context.Background(), "findTags", "query { findTags { count } }", map[string]any{"name": "blk_scrape_url"}, &out); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if out.FindTags.Count != 1 {
		t.Fatalf("unexpected count %d", out.FindTags.Count)
	}
}

func TestDoMapsUnauthorizedToFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	err := graphql.New(graphql.Config{Endpoint: server.URL}).Do(context.Background(), "op", "query { x }", nil, nil)
	if !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !services.IsFatal(err) {
		t.Fatal("expected unauthorized to be fatal")
	}
}

func TestDoMapsConnectionFailureToUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	err := graphql.New(graphql.Config{Endpoint: endpoint}).Do(context.Background(), "op", "query { x }", nil, nil)
	if !errors.Is(err, services.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestDoMapsClientTimeoutToTransient(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := graphql.New(graphql.Config{Endpoint: server.URL, Timeout: 50 * time.Millisecond})
	err := client.Do(context.Background(), "scrapeSceneURL", "query { x }", nil, nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	if services.IsFatal(err) {
		t.Fatal("a single slow call must not be fatal")
	}
}

func TestDoReturnsGraphQLErrorsWithoutData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"scraper failed"}]}`))
	}))
	defer server.Close()

	err := graphql.New(graphql.Config{Endpoint: server.URL}).Do(context.Background(), "op", "query { x }", nil, nil)
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected ErrExternal, got %v", err)
	}
	var gqlErrs graphql.Errors
	if !errors.As(err, &gqlErrs) || gqlErrs[0].Message != "scraper failed" {
		t.Fatalf("expected wrapped graphql errors, got %v", err)
	}
	if services.IsFatal(err) {
		t.Fatal("graphql errors must not be fatal")
	}
}

func TestDoDecodesDataDespitePartialErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"value":3},"errors":[{"message":"minor"}]}`))
	}))
	defer server.Close()

	var out struct {
		Value int `json:"value"`
	}
	if err := graphql.New(graphql.Config{Endpoint: server.URL}).Do(context.Background(), "op", "query { value }", nil, &out); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if out.Value != 3 {
		t.Fatalf("unexpected value %d", out.Value)
	}
}

func TestDoReportsServerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	err := graphql.New(graphql.Config{Endpoint: server.URL}).Do(context.Background(), "op", "query { x }", nil, nil)
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected ErrExternal, got %v", err)
	}
}
