package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-chef/config"
)

func newTestOpenAIProvider(url string) *OpenAIProvider {
	return NewOpenAIProvider(config.ProviderConfig{
		Name:       config.ProviderOpenAI,
		APIKey:     "dummy",
		BaseURL:    url + "/",
		TextModel:  "gpt-4o-mini",
		ImageModel: "dall-e-3",
		Timeout:    5 * time.Second,
	})
}

func TestOpenAIGenerateJSONWrapsArraySchema(t *testing.T) {
	var captured ChatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer dummy", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"{\"items\":[{\"recipeName\":\"Soup\"}]}"}}]}`)
	}))
	defer ts.Close()

	p := newTestOpenAIProvider(ts.URL)
	out, err := p.GenerateJSON(context.Background(), StructuredRequest{
		SystemInstruction: "be a chef",
		Prompt:            "make soup",
		Schema:            RecipeListSchema,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"recipeName":"Soup"}]`, out)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "make soup", captured.Messages[1].Content)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_schema", captured.ResponseFormat.Type)
	assert.True(t, captured.ResponseFormat.JSONSchema.Strict)
	assert.Equal(t, "object", captured.ResponseFormat.JSONSchema.Schema["type"])
}

func TestOpenAIGenerateJSONStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided"}}`)
	}))
	defer ts.Close()

	_, err := newTestOpenAIProvider(ts.URL).GenerateJSON(context.Background(), StructuredRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAIMissingKeyMakesNoCall(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	p := newTestOpenAIProvider(ts.URL)
	p.apiKey = ""

	_, err := p.GenerateImage(context.Background(), "soup")
	assert.Error(t, err)
	assert.False(t, called)
}

func TestOpenAIGenerateImage(t *testing.T) {
	var captured ImageGenerationRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"created":1,"data":[{"b64_json":"cG5nLWJ5dGVz"}]}`)
	}))
	defer ts.Close()

	img, err := newTestOpenAIProvider(ts.URL).GenerateImage(context.Background(), "soup")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, 1, captured.N)
	assert.Equal(t, "b64_json", captured.ResponseFormat)
}

func TestOpenAIGenerateImageEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"created":1,"data":[]}`)
	}))
	defer ts.Close()

	_, err := newTestOpenAIProvider(ts.URL).GenerateImage(context.Background(), "soup")
	assert.ErrorIs(t, err, ErrNoImageBytes)
}
