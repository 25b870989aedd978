package service

import (
	"context"
	"errors"

	"github.com/pageza/pantry-chef/internal/model"
)

var (
	// ErrEmptyResponse is returned when the provider produced no text
	ErrEmptyResponse = errors.New("received an empty response from the model")
	// ErrMalformedResponse is returned when the provider output does not match the recipe schema
	ErrMalformedResponse = errors.New("the model returned recipes in an unexpected format")
	// ErrNoImageBytes is returned when the provider produced no image
	ErrNoImageBytes = errors.New("failed to get image bytes from the model")
)

// StructuredRequest asks a language model for JSON conforming to Schema
type StructuredRequest struct {
	SystemInstruction string
	Prompt            string
	Schema            *Schema
}

// Image is a generated image
type Image struct {
	Data     []byte
	MIMEType string
}

// Provider is a generative-AI backend. Implementations make exactly one
// upstream call per method invocation and never retry.
type Provider interface {
	Name() string
	GenerateJSON(ctx context.Context, req StructuredRequest) (string, error)
	GenerateImage(ctx context.Context, prompt string) (*Image, error)
}

// IGenerationService defines the recipe and image generation operations
// served by the backend
type IGenerationService interface {
	GenerateRecipes(ctx context.Context, ingredients []string) ([]model.Recipe, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
