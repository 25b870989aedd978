// Package app holds the application controller that drives a generation
// cycle: recipes first, then one image per recipe.
package app

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/pantry-chef/internal/logger"
	"github.com/pageza/pantry-chef/internal/model"
)

var (
	ErrNoIngredients      = errors.New("no ingredients")
	ErrGenerationInFlight = errors.New("generation already in progress")
)

// Generator performs the backend calls of a generation cycle
type Generator interface {
	RequestRecipes(ctx context.Context, ingredients []string) ([]model.Recipe, error)
	RequestImage(ctx context.Context, prompt string) (string, error)
}

// Controller owns the application state. It is safe for concurrent use.
type Controller struct {
	gen Generator

	mu          sync.Mutex
	ingredients *model.IngredientList
	recipes     []model.Recipe
	isLoading   bool
	loadingMsg  string
	errorMsg    string
	phase       Phase
	listeners   []func(State)
}

// NewController creates an idle controller with an empty ingredient list
func NewController(gen Generator) *Controller {
	return &Controller{
		gen:         gen,
		ingredients: model.NewIngredientList(),
		phase:       PhaseIdle,
	}
}

// Subscribe registers fn to be called with a snapshot after every change
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// CanGenerate reports whether a cycle may start now
func (c *Controller) CanGenerate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.isLoading && c.ingredients.Len() > 0
}

// AddIngredient adds a trimmed, case-insensitively unique ingredient
func (c *Controller) AddIngredient(ingredient string) bool {
	return c.mutate(func() bool { return c.ingredients.Add(ingredient) })
}

// RemoveIngredient removes an ingredient exactly as listed
func (c *Controller) RemoveIngredient(ingredient string) bool {
	return c.mutate(func() bool { return c.ingredients.Remove(ingredient) })
}

// Generate starts a generation cycle. The loading-recipes transition happens
// before Generate returns; the rest runs in the background and the returned
// channel is closed once the cycle settles.
func (c *Controller) Generate(ctx context.Context) (<-chan struct{}, error) {
	done := make(chan struct{})

	c.mu.Lock()
	if c.isLoading {
		c.mu.Unlock()
		close(done)
		return done, ErrGenerationInFlight
	}

	if c.ingredients.Len() == 0 {
		c.errorMsg = MsgNoIngredients
		c.phase = PhaseError
		snap, listeners := c.snapshot(), c.listeners
		c.mu.Unlock()

		notify(listeners, snap)
		close(done)
		return done, ErrNoIngredients
	}

	ingredients := c.ingredients.Values()
	c.isLoading = true
	c.loadingMsg = MsgLoadingRecipes
	c.errorMsg = ""
	c.recipes = nil
	c.phase = PhaseLoadingRecipes
	snap, listeners := c.snapshot(), c.listeners
	c.mu.Unlock()

	notify(listeners, snap)

	go func() {
		defer close(done)
		c.run(ctx, ingredients)
	}()
	return done, nil
}

func (c *Controller) run(ctx context.Context, ingredients []string) {
	log := logger.FromContext(ctx)

	recipes, err := c.gen.RequestRecipes(ctx, ingredients)
	if err != nil {
		log.Error("recipe generation failed", "error", err)
		msg := err.Error()
		if msg == "" {
			msg = MsgUnexpected
		}
		c.transition(func() {
			c.isLoading = false
			c.loadingMsg = ""
			c.errorMsg = msg
			c.recipes = nil
			c.phase = PhaseError
		})
		return
	}

	c.transition(func() {
		c.loadingMsg = MsgLoadingImages
		c.phase = PhaseLoadingImages
	})

	recipes = c.attachImages(ctx, recipes)

	c.transition(func() {
		c.isLoading = false
		c.loadingMsg = ""
		c.recipes = recipes
		c.phase = PhaseSuccess
	})
}

// attachImages requests every image concurrently and waits for all of them.
// A failed image leaves its recipe without one.
func (c *Controller) attachImages(ctx context.Context, recipes []model.Recipe) []model.Recipe {
	out := make([]model.Recipe, len(recipes))

	var g errgroup.Group
	for i, recipe := range recipes {
		g.Go(func() error {
			url, err := c.gen.RequestImage(ctx, recipe.ImageDescription)
			if err != nil {
				logger.FromContext(ctx).Warn("image generation failed",
					"recipe", recipe.Name,
					"error", err,
				)
				out[i] = recipe
				return nil
			}
			out[i] = recipe.WithImage(url)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (c *Controller) mutate(fn func() bool) bool {
	c.mu.Lock()
	changed := fn()
	snap, listeners := c.snapshot(), c.listeners
	c.mu.Unlock()

	if changed {
		notify(listeners, snap)
	}
	return changed
}

func (c *Controller) transition(fn func()) {
	c.mu.Lock()
	fn()
	snap, listeners := c.snapshot(), c.listeners
	c.mu.Unlock()

	notify(listeners, snap)
}

// snapshot must be called with mu held
func (c *Controller) snapshot() State {
	recipes := make([]model.Recipe, len(c.recipes))
	copy(recipes, c.recipes)

	return State{
		Ingredients:    c.ingredients.Values(),
		Recipes:        recipes,
		IsLoading:      c.isLoading,
		LoadingMessage: c.loadingMsg,
		ErrorMessage:   c.errorMsg,
		Phase:          c.phase,
	}
}

func notify(listeners []func(State), s State) {
	for _, fn := range listeners {
		fn(s)
	}
}
