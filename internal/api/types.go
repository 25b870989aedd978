package api

import "encoding/json"

// Request types accepted by the generate endpoint
const (
	RequestTypeRecipes = "recipes"
	RequestTypeImage   = "image"
)

// Error messages returned to clients
const (
	MsgMethodNotAllowed    = "Method not allowed"
	MsgInvalidBody         = "Invalid request body"
	MsgInvalidType         = "Invalid request type"
	MsgIngredientsRequired = "Ingredients are required"
	MsgPromptRequired      = "A prompt is required"
	MsgInternal            = "An internal server error occurred."
)

// GenerateRequest is the body of POST /api/generate. All fields are kept raw
// so a wrongly typed field is reported by name rather than as a bad body.
type GenerateRequest struct {
	Type        json.RawMessage `json:"type,omitempty"`
	Ingredients json.RawMessage `json:"ingredients,omitempty"`
	Prompt      json.RawMessage `json:"prompt,omitempty"`
}

// ImageResponse is the response for an image request
type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
