package service

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/pageza/pantry-chef/config"
)

// GeminiProvider generates recipes with Gemini and images with Imagen
type GeminiProvider struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGeminiProvider creates a client bound to the configured credential.
// The client is created once per process and shared by all requests.
func NewGeminiProvider(ctx context.Context, cfg config.ProviderConfig) (*GeminiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:     client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
	}, nil
}

// Name identifies the provider
func (p *GeminiProvider) Name() string {
	return config.ProviderGemini
}

// GenerateJSON runs a schema-constrained generateContent call and returns the response text
func (p *GeminiProvider) GenerateJSON(ctx context.Context, req StructuredRequest) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(req.Schema),
	}
	if req.SystemInstruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.textModel, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generateContent: %w", err)
	}

	return resp.Text(), nil
}

// GenerateImage requests exactly one JPEG image
func (p *GeminiProvider) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	resp, err := p.client.Models.GenerateImages(ctx, p.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: DefaultImageMIMEType,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generateImages: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil || resp.GeneratedImages[0].Image == nil {
		return nil, ErrNoImageBytes
	}

	img := resp.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}
	return &Image{Data: img.ImageBytes, MIMEType: mimeType}, nil
}

// toGenaiSchema translates a provider-neutral schema to Gemini's dialect
func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	if len(s.PropertyOrder) > 0 {
		out.PropertyOrdering = append([]string(nil), s.PropertyOrder...)
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
