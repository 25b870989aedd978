package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecipe is returned when a recipe does not carry the generated fields
var ErrInvalidRecipe = errors.New("recipe does not match the expected shape")

// Recipe is a generated recipe suggestion. ImageURL is empty until an image
// has been generated for it.
type Recipe struct {
	Name             string   `json:"recipeName"`
	Description      string   `json:"description"`
	Ingredients      []string `json:"ingredients"`
	Instructions     []string `json:"instructions"`
	ImageDescription string   `json:"imageDescription"`
	ImageURL         string   `json:"imageUrl,omitempty"`
}

// HasImage reports whether an image reference has been attached
func (r Recipe) HasImage() bool {
	return r.ImageURL != ""
}

// WithImage returns a copy of the recipe carrying the given image reference
func (r Recipe) WithImage(imageURL string) Recipe {
	out := r
	out.Ingredients = append([]string(nil), r.Ingredients...)
	out.Instructions = append([]string(nil), r.Instructions...)
	out.ImageURL = imageURL
	return out
}

// Validate checks that every generated field is present and non-empty
func (r Recipe) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("%w: missing recipeName", ErrInvalidRecipe)
	case strings.TrimSpace(r.Description) == "":
		return fmt.Errorf("%w: missing description for %q", ErrInvalidRecipe, r.Name)
	case len(r.Ingredients) == 0:
		return fmt.Errorf("%w: no ingredients for %q", ErrInvalidRecipe, r.Name)
	case len(r.Instructions) == 0:
		return fmt.Errorf("%w: no instructions for %q", ErrInvalidRecipe, r.Name)
	case strings.TrimSpace(r.ImageDescription) == "":
		return fmt.Errorf("%w: missing imageDescription for %q", ErrInvalidRecipe, r.Name)
	}
	return nil
}

// ValidateRecipes validates a generated batch. An empty batch is invalid.
func ValidateRecipes(recipes []Recipe) error {
	if len(recipes) == 0 {
		return fmt.Errorf("%w: no recipes", ErrInvalidRecipe)
	}
	for i := range recipes {
		if err := recipes[i].Validate(); err != nil {
			return fmt.Errorf("recipe %d: %w", i, err)
		}
	}
	return nil
}

// StripImages returns copies of the recipes without image references
func StripImages(recipes []Recipe) []Recipe {
	out := make([]Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.WithImage("")
	}
	return out
}
