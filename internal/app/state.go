package app

import "github.com/pageza/pantry-chef/internal/model"

// Phase is the stage of the generation cycle
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseLoadingRecipes Phase = "loading-recipes"
	PhaseLoadingImages  Phase = "loading-images"
	PhaseSuccess        Phase = "success"
	PhaseError          Phase = "error"
)

// Messages shown while loading or after a failure
const (
	MsgLoadingRecipes = "Generating delicious recipes..."
	MsgLoadingImages  = "Creating beautiful images for your recipes..."
	MsgNoIngredients  = "Please add some ingredients first."
	MsgUnexpected     = "An unexpected error occurred."
)

// State is a snapshot of the application. Recipes is empty while loading
// and after a failed cycle.
type State struct {
	Ingredients    []string
	Recipes        []model.Recipe
	IsLoading      bool
	LoadingMessage string
	ErrorMessage   string
	Phase          Phase
}
