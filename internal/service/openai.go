package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pageza/pantry-chef/config"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to an OpenAI-compatible chat completions API
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat requests schema-constrained output
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema is a named strict schema
type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// ImageGenerationRequest represents a request to the images API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format,omitempty"`
}

// ImageGenerationResponse represents the response from the images API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		B64JSON       string `json:"b64_json,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// wrapperField holds an array result, since strict structured output requires
// an object at the top level
const wrapperField = "items"

// OpenAIProvider talks to an OpenAI-compatible API over HTTP
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	client     *http.Client
}

// NewOpenAIProvider creates a new OpenAIProvider instance
func NewOpenAIProvider(cfg config.ProviderConfig) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Name identifies the provider
func (p *OpenAIProvider) Name() string {
	return config.ProviderOpenAI
}

// GenerateJSON sends a chat completion constrained to the request schema and
// returns the JSON content. Array schemas are wrapped in an object on the way
// out and unwrapped on the way back.
func (p *OpenAIProvider) GenerateJSON(ctx context.Context, req StructuredRequest) (string, error) {
	schema := req.Schema.JSONSchema()
	wrapped := req.Schema != nil && req.Schema.Type == TypeArray
	if wrapped {
		schema = map[string]any{
			"type":                 TypeObject,
			"properties":           map[string]any{wrapperField: schema},
			"required":             []string{wrapperField},
			"additionalProperties": false,
		}
	}

	messages := make([]Message, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, Message{Role: "system", Content: req.SystemInstruction})
	}
	messages = append(messages, Message{Role: "user", Content: req.Prompt})

	chatReq := ChatRequest{
		Model:    p.textModel,
		Messages: messages,
	}
	if schema != nil {
		chatReq.ResponseFormat = &ResponseFormat{
			Type:       "json_schema",
			JSONSchema: &JSONSchema{Name: "response", Strict: true, Schema: schema},
		}
	}

	body, err := p.post(ctx, "/chat/completions", chatReq)
	if err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
				Refusal string `json:"refusal"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}
	if refusal := result.Choices[0].Message.Refusal; refusal != "" {
		return "", fmt.Errorf("model refused the request: %s", refusal)
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if !wrapped || content == "" {
		return content, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	items, ok := envelope[wrapperField]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedResponse, wrapperField)
	}
	return string(items), nil
}

// GenerateImage requests exactly one base64-encoded PNG
func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	reqBody := ImageGenerationRequest{
		Model:  p.imageModel,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}
	// gpt-image models always answer in base64 and reject the parameter
	if !strings.HasPrefix(p.imageModel, "gpt-image") {
		reqBody.ResponseFormat = "b64_json"
	}

	body, err := p.post(ctx, "/images/generations", reqBody)
	if err != nil {
		return nil, err
	}

	var result ImageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return nil, ErrNoImageBytes
	}

	data, err := base64.StdEncoding.DecodeString(result.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return &Image{Data: data, MIMEType: "image/png"}, nil
}

func (p *OpenAIProvider) post(ctx context.Context, path string, payload any) ([]byte, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("API key is not configured")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, apiErrorMessage(body))
	}
	return body, nil
}

// apiErrorMessage extracts error.message from an API error body without
// echoing the raw payload
func apiErrorMessage(body []byte) string {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return "unexpected response from provider"
}
