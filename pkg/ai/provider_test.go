package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	shadowerrors "thoreinstein.com/shadow/pkg/errors"
)

func testSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"title": {Type: TypeString},
			"tags":  {Type: TypeArray, Items: &Schema{Type: TypeString, Enum: []string{"bug", "task"}}},
		},
		Required: []string{"title"},
	}
}

func TestGeminiProvider_IsAvailable(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"available with key", "some-key", true},
		{"not available without key", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewGeminiProvider(tt.apiKey, "", nil)
			if got := p.IsAvailable(); got != tt.want {
				t.Errorf("IsAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeminiProvider_GenerateStructured_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "key" {
			t.Errorf("expected api key header, got %q", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req geminiRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected json mime type, got %q", req.GenerationConfig.ResponseMimeType)
		}
		if req.GenerationConfig.ResponseSchema == nil {
			t.Error("expected a response schema")
		}
		if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "You are a test." {
			t.Error("expected system instruction to be forwarded")
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"title\":\"Fix flicker\"}"}]},"finishReason":"STOP"}]}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider("key", "", nil)
	p.baseURL = srv.URL

	raw, err := p.GenerateStructured(context.Background(), &StructuredRequest{
		Operation: "Analyze",
		System:    "You are a test.",
		Prompt:    "meeting notes",
		Schema:    testSchema(),
	})
	if err != nil {
		t.Fatalf("GenerateStructured() error = %v", err)
	}

	var got struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if got.Title != "Fix flicker" {
		t.Errorf("title = %q, want %q", got.Title, "Fix flicker")
	}
}

func TestGeminiProvider_GenerateStructured_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider("key", "", nil)
	p.baseURL = srv.URL

	_, err := p.GenerateStructured(context.Background(), &StructuredRequest{Operation: "Analyze", Prompt: "x", Schema: testSchema()})
	if err == nil {
		t.Fatal("expected an error")
	}

	var aiErr *shadowerrors.AIError
	if !shadowerrors.As(err, &aiErr) {
		t.Fatalf("expected AIError, got %T", err)
	}
	if aiErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", aiErr.StatusCode)
	}
	if !aiErr.Retryable {
		t.Error("429 should be retryable")
	}
	if aiErr.Message != "quota exceeded" {
		t.Errorf("Message = %q, want API message", aiErr.Message)
	}
}

func TestGeminiProvider_GenerateStructured_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider("key", "", nil)
	p.baseURL = srv.URL

	_, err := p.GenerateStructured(context.Background(), &StructuredRequest{Operation: "Analyze", Prompt: "x", Schema: testSchema()})
	if err == nil || !shadowerrors.IsAIError(err) {
		t.Fatalf("expected AIError, got %v", err)
	}
}

func TestGeminiProvider_GenerateStructured_NotConfigured(t *testing.T) {
	p := NewGeminiProvider("", "", nil)
	_, err := p.GenerateStructured(context.Background(), &StructuredRequest{Operation: "Analyze"})
	if err == nil || !shadowerrors.IsAIError(err) {
		t.Fatalf("expected AIError, got %v", err)
	}
}

func TestAnthropicProvider_GenerateStructured_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "key" {
			t.Errorf("expected api key header, got %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicAPIVersion {
			t.Errorf("anthropic-version = %q", got)
		}

		body, _ := io.ReadAll(r.Body)
		var req anthropicRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Name != anthropicStructuredTool {
			t.Fatalf("expected forced tool %q, got %+v", anthropicStructuredTool, req.Tools)
		}
		if req.ToolChoice == nil || req.ToolChoice.Type != "tool" {
			t.Error("expected tool_choice to force the tool")
		}
		if got := req.Tools[0].InputSchema["type"]; got != "object" {
			t.Errorf("input schema type = %v, want lowercase object", got)
		}

		io.WriteString(w, `{"id":"msg_1","content":[{"type":"tool_use","name":"record_result","input":{"title":"Fix flicker"}}],"stop_reason":"tool_use","usage":{"input_tokens":5,"output_tokens":7}}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key", "", nil)
	p.apiURL = srv.URL

	raw, err := p.GenerateStructured(context.Background(), &StructuredRequest{
		Operation: "Refine",
		Prompt:    "tighten the title",
		Schema:    testSchema(),
	})
	if err != nil {
		t.Fatalf("GenerateStructured() error = %v", err)
	}
	if string(raw) != `{"title":"Fix flicker"}` {
		t.Errorf("payload = %s", raw)
	}
}

func TestAnthropicProvider_GenerateStructured_NoToolUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"msg_1","content":[{"type":"text","text":"I cannot"}],"stop_reason":"end_turn"}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key", "", nil)
	p.apiURL = srv.URL

	_, err := p.GenerateStructured(context.Background(), &StructuredRequest{Operation: "Refine", Prompt: "x", Schema: testSchema()})
	if err == nil || !shadowerrors.IsAIError(err) {
		t.Fatalf("expected AIError, got %v", err)
	}
}

func TestToJSONSchemaLowercasesTypes(t *testing.T) {
	got := toJSONSchema(testSchema())
	if got["type"] != "object" {
		t.Errorf("type = %v", got["type"])
	}
	props := got["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	if tags["type"] != "array" {
		t.Errorf("tags type = %v", tags["type"])
	}
	items := tags["items"].(map[string]any)
	if items["type"] != "string" {
		t.Errorf("items type = %v", items["type"])
	}
}

func TestNewProviderUnsupported(t *testing.T) {
	_, err := NewProvider(nil, false)
	if err == nil {
		t.Fatal("expected error for nil config")
	}
}
