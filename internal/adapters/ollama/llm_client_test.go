package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestChatSendsPromptAndTrimsReply(t *testing.T) {
	var gotPath string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "  the answer  \n"},
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL+"/", "gemma2:9b-instruct-q4", 5*time.Second, zap.NewNop())

	reply, err := client.Chat(context.Background(), "what is the due date?")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "the answer" {
		t.Fatalf("reply = %q, want trimmed answer", reply)
	}
	if gotPath != "/api/chat" {
		t.Fatalf("request path = %q, want /api/chat", gotPath)
	}
	if gotBody.Model != "gemma2:9b-instruct-q4" {
		t.Fatalf("request model = %q", gotBody.Model)
	}
	if gotBody.Stream {
		t.Fatal("stream must be disabled")
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v, want a single user message", gotBody.Messages)
	}
	if gotBody.Messages[0].Content != "what is the due date?" {
		t.Fatalf("prompt = %q", gotBody.Messages[0].Content)
	}
}

func TestChatHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "missing-model", 5*time.Second, zap.NewNop())

	_, err := client.Chat(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for HTTP 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("error %q does not carry the status", err)
	}
}

func TestChatEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "   "},
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "gemma2:9b-instruct-q4", 5*time.Second, zap.NewNop())

	if _, err := client.Chat(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty reply")
	}
}

func TestChatContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewOllamaClient(srv.URL, "gemma2:9b-instruct-q4", time.Minute, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Chat(ctx, "hello"); err == nil {
		t.Fatal("expected error after context timeout")
	}
}

func TestModelName(t *testing.T) {
	client := NewOllamaClient("http://localhost:11434", "gemma2:9b-instruct-q4", time.Second, zap.NewNop())
	if got := client.ModelName(); got != "gemma2:9b-instruct-q4" {
		t.Fatalf("model name = %q", got)
	}
}
