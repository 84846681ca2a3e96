package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/video-summarizer/pkg/config"
)

func TestComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected authorization %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "test-model" || len(payload.Messages) != 1 || payload.Messages[0].Content != "hello" {
			t.Fatalf("unexpected payload %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hi there"}},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(&config.AIConfig{APIKey: "test-key", BaseURL: ts.URL + "/", Model: "test-model"})
	out, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if out != "hi there" {
		t.Fatalf("unexpected content %q", out)
	}
}

func TestComplete_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewClient(&config.AIConfig{APIKey: "k", BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "x"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestComplete_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewClient(&config.AIConfig{APIKey: "k", BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
