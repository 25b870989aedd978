package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pageza/pantry-chef/internal/logger"
	"github.com/pageza/pantry-chef/internal/metrics"
	"github.com/pageza/pantry-chef/internal/model"
	"github.com/pageza/pantry-chef/internal/tracer"
)

// GenerationService turns ingredient lists into recipes and dish descriptions
// into images using a Provider
type GenerationService struct {
	provider Provider
	logger   *slog.Logger
}

// NewGenerationService creates a GenerationService bound to one provider
func NewGenerationService(provider Provider) *GenerationService {
	return &GenerationService{
		provider: provider,
		logger:   logger.L().With("component", "generation", "provider", provider.Name()),
	}
}

// GenerateRecipes asks the provider for recipes featuring the ingredients.
// The output is validated against RecipeListSchema and returned without image
// references.
func (s *GenerationService) GenerateRecipes(ctx context.Context, ingredients []string) ([]model.Recipe, error) {
	timer := metrics.NewGenerationTimer(metrics.KindRecipes, s.provider.Name())
	ctx, span := tracer.Start(ctx, "GenerationService.GenerateRecipes", trace.WithAttributes(
		attribute.String("provider", s.provider.Name()),
		attribute.Int("ingredients", len(ingredients)),
	))
	defer span.End()

	recipes, err := s.generateRecipes(ctx, ingredients)
	timer.Observe(err)
	endSpan(span, err)
	return recipes, err
}

func (s *GenerationService) generateRecipes(ctx context.Context, ingredients []string) ([]model.Recipe, error) {
	log := s.logger.With(requestAttrs(ctx)...)
	log.Info("generating recipes", "ingredients", len(ingredients))

	text, err := s.provider.GenerateJSON(ctx, StructuredRequest{
		SystemInstruction: RecipeSystemInstruction,
		Prompt:            BuildRecipePrompt(ingredients),
		Schema:            RecipeListSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipes: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var recipes []model.Recipe
	if err := json.Unmarshal([]byte(extractJSONArray(text)), &recipes); err != nil {
		log.Warn("unparseable recipe response", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := model.ValidateRecipes(recipes); err != nil {
		log.Warn("recipe response failed validation", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(recipes) != RecipeCount {
		log.Warn("unexpected recipe count", "want", RecipeCount, "got", len(recipes))
	}

	return model.StripImages(recipes), nil
}

// GenerateImage renders the dish description as a photograph and returns it
// as a data URI
func (s *GenerationService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	timer := metrics.NewGenerationTimer(metrics.KindImage, s.provider.Name())
	ctx, span := tracer.Start(ctx, "GenerationService.GenerateImage", trace.WithAttributes(
		attribute.String("provider", s.provider.Name()),
	))
	defer span.End()

	uri, err := s.generateImage(ctx, prompt)
	timer.Observe(err)
	endSpan(span, err)
	return uri, err
}

func (s *GenerationService) generateImage(ctx context.Context, prompt string) (string, error) {
	s.logger.With(requestAttrs(ctx)...).Info("generating image", "prompt", prompt)

	img, err := s.provider.GenerateImage(ctx, BuildImagePrompt(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}
	if img == nil || len(img.Data) == 0 {
		return "", ErrNoImageBytes
	}

	return EncodeDataURI(img.MIMEType, img.Data), nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func requestAttrs(ctx context.Context) []any {
	if requestID, ok := ctx.Value(logger.RequestIDKey).(string); ok && requestID != "" {
		return []any{"request_id", requestID}
	}
	return nil
}
