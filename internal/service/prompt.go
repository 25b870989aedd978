package service

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// RecipeCount is the number of recipes requested per generation
const RecipeCount = 3

// DefaultImageMIMEType is assumed when a provider does not report one
const DefaultImageMIMEType = "image/jpeg"

// RecipeSystemInstruction frames the model as a chef
var RecipeSystemInstruction = fmt.Sprintf(
	"You are a world-class chef. Your task is to generate %d creative and delicious recipes based on a list of ingredients. Prioritize recipes that heavily feature the provided ingredients.",
	RecipeCount,
)

// BuildRecipePrompt creates the user prompt for recipe generation
func BuildRecipePrompt(ingredients []string) string {
	return fmt.Sprintf("Generate %d recipes using the following ingredients: %s.", RecipeCount, strings.Join(ingredients, ", "))
}

// BuildImagePrompt wraps a dish description in the food-photography template
func BuildImagePrompt(description string) string {
	return fmt.Sprintf("A vibrant, professional food photograph of %s, presented beautifully on a clean background.", strings.TrimSpace(description))
}

// EncodeDataURI encodes image bytes as a data URI
func EncodeDataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// extractJSONArray trims prose or code fences a model may wrap around a JSON array
func extractJSONArray(s string) string {
	raw := strings.TrimSpace(s)
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
