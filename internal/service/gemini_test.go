package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-chef/config"
)

func TestGeminiGenerateJSON(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"[{\"recipeName\":\"Soup\"}]"}]}}]}`)
	}))
	defer ts.Close()

	p, err := NewGeminiProvider(context.Background(), config.ProviderConfig{
		APIKey:     "dummy",
		BaseURL:    ts.URL,
		TextModel:  "gemini-2.5-flash",
		ImageModel: "imagen-4.0-generate-001",
		Timeout:    5 * time.Second,
	})
	require.NoError(t, err)

	out, err := p.GenerateJSON(context.Background(), StructuredRequest{
		SystemInstruction: RecipeSystemInstruction,
		Prompt:            BuildRecipePrompt([]string{"leeks"}),
		Schema:            RecipeListSchema,
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"recipeName":"Soup"}]`, out)

	genCfg, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generation config is sent")
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.Contains(t, body, "systemInstruction")
}

func TestGeminiProviderName(t *testing.T) {
	assert.Equal(t, config.ProviderGemini, (&GeminiProvider{}).Name())
}
