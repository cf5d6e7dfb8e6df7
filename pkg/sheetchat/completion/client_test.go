package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

func ledger() *models.SelectionSnapshot {
	values := [][]any{
		{"Date", "Amount", "Notes"},
		{"2024-01-01", 10.0, "rent"},
		{"2024-01-02", 20.0, "food"},
		{"2024-01-03", 30.0, "fuel"},
	}
	r := models.Range{Sheet: "Sheet1", R1: 1, C1: 1, R2: 4, C2: 3}
	return models.NewSelectionSnapshot("Sheet1!A1:C4", r, values, true)
}

func TestClient_Complete_Success(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want %q", r.Header.Get("x-api-key"), "test-key")
		}
		if r.Header.Get("anthropic-version") != anthropicAPIVersion {
			t.Errorf("anthropic-version = %q, want %q", r.Header.Get("anthropic-version"), anthropicAPIVersion)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resp := anthropicResponse{
			ID:   "msg-1",
			Type: "message",
			Role: "assistant",
			Content: []anthropicContent{
				{Type: "text", Text: "The total is "},
				{Type: "text", Text: "60."},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := New(Config{APIKey: "test-key", Model: "claude-test", BaseURL: server.URL})
	history := []models.Message{
		{Role: models.RoleAssistant, Content: "Hi! Select some cells and ask me anything."},
		{Role: models.RoleUser, Content: "what is this?"},
		{Role: models.RoleAssistant, Content: "A ledger."},
	}

	reply := client.Complete(context.Background(), history, "what is the total?", ledger())
	if reply != "The total is 60." {
		t.Errorf("reply = %q, want %q", reply, "The total is 60.")
	}

	if got.Model != "claude-test" {
		t.Errorf("model = %q, want %q", got.Model, "claude-test")
	}
	if got.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", got.MaxTokens, DefaultMaxTokens)
	}
	if len(got.Messages) != 3 {
		t.Fatalf("messages = %d, want 3 (greeting dropped)", len(got.Messages))
	}
	if got.Messages[0].Role != "user" || got.Messages[2].Content != "what is the total?" {
		t.Errorf("messages = %+v, want user first and the query last", got.Messages)
	}
	for _, want := range []string{"Sheet1!A1:C4", "- Amount: numeric", "- Notes: text"} {
		if !strings.Contains(got.System, want) {
			t.Errorf("system prompt missing %q:\n%s", want, got.System)
		}
	}
}

func TestClient_Complete_CredentialMissing(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})

	if reply := client.Complete(context.Background(), nil, "hello", nil); reply != CredentialMissingMessage {
		t.Errorf("reply = %q, want CredentialMissingMessage", reply)
	}
	if _, err := client.Chat(context.Background(), nil, "hello", nil); !errors.Is(err, ErrCredentialMissing) {
		t.Errorf("Chat() error = %v, want ErrCredentialMissing", err)
	}
	if called {
		t.Error("server was called without an API key")
	}
}

func TestClient_Complete_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "status error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
			},
		},
		{
			name: "api error body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"busy"}}`))
			},
		},
		{
			name: "no text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id":"msg-1","type":"message","role":"assistant","content":[]}`))
			},
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := New(Config{APIKey: "test-key", BaseURL: server.URL})
			if reply := client.Complete(context.Background(), nil, "hello", nil); reply != FailureMessage {
				t.Errorf("reply = %q, want FailureMessage", reply)
			}
			if _, err := client.Chat(context.Background(), nil, "hello", nil); err == nil {
				t.Error("Chat() error = nil, want an error")
			}
		})
	}
}

func TestConversation(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleAssistant, Content: "greeting"},
		{Role: models.RoleUser, Content: "a"},
		{Role: models.RoleUser, Content: "b"},
		{Role: models.RoleAssistant, Content: "c"},
		{Role: models.RoleAssistant, Content: ""},
	}

	got := conversation(history, "d")
	want := []anthropicMessage{
		{Role: "user", Content: "a\n\nb"},
		{Role: "assistant", Content: "c"},
		{Role: "user", Content: "d"},
	}
	if len(got) != len(want) {
		t.Fatalf("conversation() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSystemPrompt(t *testing.T) {
	if p := SystemPrompt(nil); !strings.Contains(p, "No cells are selected.") {
		t.Errorf("SystemPrompt(nil) = %q, want the no-selection note", p)
	}

	rows := make([][]any, 30)
	for i := range rows {
		rows[i] = []any{float64(i)}
	}
	snap := models.NewSelectionSnapshot("Sheet1!A1:A30", models.Range{Sheet: "Sheet1", R1: 1, C1: 1, R2: 30, C2: 1}, rows, false)
	p := SystemPrompt(snap)
	if !strings.Contains(p, "... 10 more rows") {
		t.Errorf("SystemPrompt() did not truncate rows:\n%s", p)
	}
	if strings.Contains(p, "\n25\n") {
		t.Errorf("SystemPrompt() included a row past the cap:\n%s", p)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s        string
		n        int
		expected string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc..."},
		{"héllo", 2, "h..."},
		{"héllo", 3, "hé..."},
		{"日本語", 4, "日..."},
		{"日本語", 2, "..."},
	}

	for _, tt := range tests {
		result := truncate(tt.s, tt.n)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tt.s, tt.n, result, tt.expected)
		}
		if !utf8.ValidString(result) {
			t.Errorf("truncate(%q, %d) = %q is not valid UTF-8", tt.s, tt.n, result)
		}
	}
}
