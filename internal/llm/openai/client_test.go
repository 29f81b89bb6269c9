package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio-backend/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = server.URL
	return client
}

func TestGenerateResumeDecodesContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}

		content := `{"header":{"name":"Jane Doe","shortAbout":"Engineer","contacts":{},"skills":["Go"]},"summary":"Experienced engineer.","workExperience":[],"education":[],"theme":"default"}`
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	data, err := client.GenerateResume(context.Background(), "Jane Doe, engineer")
	if err != nil {
		t.Fatalf("GenerateResume: %v", err)
	}
	if data.Header.Name != "Jane Doe" {
		t.Fatalf("expected decoded name, got %q", data.Header.Name)
	}
	if data.Theme != "default" {
		t.Fatalf("expected theme default, got %q", data.Theme)
	}
}

func TestGenerateResumeEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	if _, err := client.GenerateResume(context.Background(), "text"); !errors.Is(err, llm.ErrEmptyResult) {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestGenerateResumeAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited", "type": "rate_limit_error"},
		})
	})

	if _, err := client.GenerateResume(context.Background(), "text"); err == nil {
		t.Fatalf("expected error for API failure")
	}
}
