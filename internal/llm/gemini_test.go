package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestGeminiClient_generate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"a looping icon animation"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiWithBaseURL("test-key", srv.URL, testLogger())
	text, err := c.Generate(context.Background(), "gemini-2.5-flash-lite", "describe this animation")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if text != "a looping icon animation" {
		t.Errorf("unexpected text: %q", text)
	}
	if gotPath != "/models/gemini-2.5-flash-lite:generateContent" {
		t.Errorf("unexpected path: %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header not set, got %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "describe this animation" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
}

func TestGeminiClient_missing_key(t *testing.T) {
	c := NewGemini("", testLogger())
	if _, err := c.Generate(context.Background(), "m", "p"); err == nil {
		t.Error("expected error without an API key")
	}
}

func TestGeminiClient_api_error_status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiWithBaseURL("k", srv.URL, testLogger())
	_, err := c.Generate(context.Background(), "m", "p")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestGeminiClient_empty_candidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewGeminiWithBaseURL("k", srv.URL, testLogger())
	if _, err := c.Generate(context.Background(), "m", "p"); err == nil {
		t.Error("expected error on empty candidates")
	}
}

func TestGeminiClient_network_failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewGeminiWithBaseURL("k", srv.URL, testLogger())
	if _, err := c.Generate(context.Background(), "m", "p"); err == nil {
		t.Error("expected error when the endpoint is unreachable")
	}
}
