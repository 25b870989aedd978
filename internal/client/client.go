// Package client talks to the pantry-chef backend over HTTP
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pageza/pantry-chef/internal/logger"
	"github.com/pageza/pantry-chef/internal/model"
)

// GeneratePath is the backend endpoint both requests are sent to
const GeneratePath = "/api/generate"

var (
	// ErrRecipeGeneration is the user-facing failure for a recipe request
	ErrRecipeGeneration = errors.New("Failed to generate recipes. The model may be unavailable or the request was invalid. Please check your ingredients and try again.")
	// ErrImageGeneration is the user-facing failure for an image request
	ErrImageGeneration = errors.New("Failed to generate image.")
	// ErrNoIngredients is the cause when RequestRecipes is called with an empty list
	ErrNoIngredients = errors.New("at least one ingredient is required")
)

// RequestError carries the generic failure shown to users and the
// underlying cause, which is only logged.
type RequestError struct {
	Kind   error
	Status int
	Cause  error
}

func (e *RequestError) Error() string {
	return e.Kind.Error()
}

func (e *RequestError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Client sends generation requests to the backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default transport
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the per-request timeout of the default transport
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient.Timeout = d
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type recipesRequest struct {
	Type        string   `json:"type"`
	Ingredients []string `json:"ingredients"`
}

type imageRequest struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RequestRecipes asks the backend for recipes built from the ingredients
func (c *Client) RequestRecipes(ctx context.Context, ingredients []string) ([]model.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, &RequestError{Kind: ErrRecipeGeneration, Cause: ErrNoIngredients}
	}

	body, status, err := c.post(ctx, recipesRequest{Type: "recipes", Ingredients: ingredients})
	if err != nil {
		return nil, c.fail(ctx, ErrRecipeGeneration, status, err)
	}

	var recipes []model.Recipe
	if err := json.Unmarshal(body, &recipes); err != nil {
		return nil, c.fail(ctx, ErrRecipeGeneration, status, fmt.Errorf("failed to decode recipes: %w", err))
	}
	if err := model.ValidateRecipes(recipes); err != nil {
		return nil, c.fail(ctx, ErrRecipeGeneration, status, err)
	}
	return recipes, nil
}

// RequestImage asks the backend for an image of the described dish and
// returns its URL.
func (c *Client) RequestImage(ctx context.Context, prompt string) (string, error) {
	body, status, err := c.post(ctx, imageRequest{Type: "image", Prompt: prompt})
	if err != nil {
		return "", c.fail(ctx, ErrImageGeneration, status, err)
	}

	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", c.fail(ctx, ErrImageGeneration, status, fmt.Errorf("failed to decode image response: %w", err))
	}
	if resp.ImageURL == "" {
		return "", c.fail(ctx, ErrImageGeneration, status, errors.New("response has no imageUrl"))
	}
	return resp.ImageURL, nil
}

// post sends payload and returns the body of a 2xx response. For any other
// status the server's error message becomes the returned error.
func (c *Client) post(ctx context.Context, payload any) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GeneratePath, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, resp.StatusCode, errors.New(errResp.Error)
		}
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) fail(ctx context.Context, kind error, status int, cause error) error {
	logger.FromContext(ctx).Error("generation request failed",
		"status", status,
		"error", cause,
	)
	return &RequestError{Kind: kind, Status: status, Cause: cause}
}
