package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	shadowerrors "thoreinstein.com/shadow/pkg/errors"
)

// Gemini API configuration.
const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-2.5-flash"
)

// GeminiProvider implements Provider for the Gemini API. Structured output is
// enforced server-side through responseMimeType and responseSchema.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	logger  *slog.Logger
	client  *http.Client
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(apiKey, model string, logger *slog.Logger) *GeminiProvider {
	if model == "" {
		model = geminiDefaultModel
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		logger:  logger,
		client:  &http.Client{},
	}
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// IsAvailable checks if the provider is configured and ready.
func (p *GeminiProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// geminiRequest represents a generateContent request.
type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  geminiGenOptions `json:"generationConfig"`
}

// geminiContent is a role-tagged list of parts.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiPart holds one text fragment.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiGenOptions carries the structured-output settings.
type geminiGenOptions struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema"`
}

// geminiResponse represents a generateContent response.
type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// geminiError represents a Gemini API error response.
type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateStructured asks Gemini for JSON conforming to the request schema.
func (p *GeminiProvider) GenerateStructured(ctx context.Context, req *StructuredRequest) (json.RawMessage, error) {
	if !p.IsAvailable() {
		return nil, shadowerrors.NewAIError(ProviderGemini, req.Operation, "provider not configured")
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: geminiGenOptions{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		},
	}
	if req.System != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	p.logDebug("sending structured request", "model", p.model, "operation", req.Operation)

	respBody, err := p.doRequest(ctx, req.Operation, reqBody)
	if err != nil {
		return nil, err
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, shadowerrors.NewAIErrorWithCause(ProviderGemini, req.Operation,
			"failed to parse response", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, shadowerrors.NewAIError(ProviderGemini, req.Operation, "response has no candidates")
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		content.WriteString(part.Text)
	}

	p.logDebug("received response",
		"finish_reason", resp.Candidates[0].FinishReason,
		"prompt_tokens", resp.UsageMetadata.PromptTokenCount,
		"candidate_tokens", resp.UsageMetadata.CandidatesTokenCount)

	text := strings.TrimSpace(content.String())
	if text == "" {
		return nil, shadowerrors.NewAIError(ProviderGemini, req.Operation, "response has no text content")
	}

	return json.RawMessage(text), nil
}

// doRequest performs an HTTP request and returns the response body.
func (p *GeminiProvider) doRequest(ctx context.Context, operation string, reqBody geminiRequest) ([]byte, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, shadowerrors.NewAIErrorWithCause(ProviderGemini, operation,
			"failed to marshal request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, shadowerrors.NewAIErrorWithCause(ProviderGemini, operation,
			"failed to create request", err)
	}

	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, shadowerrors.NewAIErrorWithCause(ProviderGemini, operation,
			"request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleErrorResponse(resp, operation)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, shadowerrors.NewAIErrorWithCause(ProviderGemini, operation,
			"failed to read response", err)
	}

	return respBody, nil
}

// setHeaders sets the required headers for Gemini API requests.
func (p *GeminiProvider) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)
}

// handleErrorResponse parses error responses from the Gemini API.
func (p *GeminiProvider) handleErrorResponse(resp *http.Response, operation string) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr geminiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return shadowerrors.NewAIErrorWithStatus(ProviderGemini, operation,
			resp.StatusCode, apiErr.Error.Message)
	}

	return shadowerrors.NewAIErrorWithStatus(ProviderGemini, operation,
		resp.StatusCode, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}

// logDebug logs a debug message if verbose logging is enabled.
func (p *GeminiProvider) logDebug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
