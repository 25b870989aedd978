package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-chef/internal/logger"
	"github.com/pageza/pantry-chef/internal/service"
)

// GenerateHandler serves recipe and image generation over a single endpoint
type GenerateHandler struct {
	generation service.IGenerationService
}

// NewGenerateHandler creates a new GenerateHandler instance
func NewGenerateHandler(generation service.IGenerationService) *GenerateHandler {
	return &GenerateHandler{generation: generation}
}

// RegisterRoutes registers the generate routes
func (h *GenerateHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/generate", h.Generate)
		api.OPTIONS("/generate", Preflight)
	}
}

// Preflight answers CORS preflight requests. The CORS middleware normally
// short-circuits these; the route keeps the endpoint correct without it.
func Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// MethodNotAllowed rejects every method other than POST and OPTIONS
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: MsgMethodNotAllowed})
}

// Generate dispatches on the request type
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgInvalidBody})
		return
	}

	switch parseType(req.Type) {
	case RequestTypeRecipes:
		h.generateRecipes(c, req)
	case RequestTypeImage:
		h.generateImage(c, req)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgInvalidType})
	}
}

func (h *GenerateHandler) generateRecipes(c *gin.Context, req GenerateRequest) {
	ingredients, ok := parseIngredients(req.Ingredients)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgIngredientsRequired})
		return
	}

	recipes, err := h.generation.GenerateRecipes(c.Request.Context(), ingredients)
	if err != nil {
		h.internalError(c, "recipe generation failed", err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *GenerateHandler) generateImage(c *gin.Context, req GenerateRequest) {
	prompt, ok := parsePrompt(req.Prompt)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgPromptRequired})
		return
	}

	imageURL, err := h.generation.GenerateImage(c.Request.Context(), prompt)
	if err != nil {
		h.internalError(c, "image generation failed", err)
		return
	}

	c.JSON(http.StatusOK, ImageResponse{ImageURL: imageURL})
}

func (h *GenerateHandler) internalError(c *gin.Context, msg string, err error) {
	logger.FromContext(c.Request.Context()).Error(msg, "error", err)

	message := MsgInternal
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// parseType returns the request type, or "" when it is missing or not a string
func parseType(raw json.RawMessage) string {
	var requestType string
	if len(raw) == 0 || json.Unmarshal(raw, &requestType) != nil {
		return ""
	}
	return requestType
}

// parseIngredients accepts only a JSON array of strings. Blank entries are
// dropped; the result must not be empty.
func parseIngredients(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			ingredients = append(ingredients, item)
		}
	}
	return ingredients, len(ingredients) > 0
}

// parsePrompt accepts only a non-blank JSON string
func parsePrompt(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var prompt string
	if err := json.Unmarshal(raw, &prompt); err != nil {
		return "", false
	}

	prompt = strings.TrimSpace(prompt)
	return prompt, prompt != ""
}
