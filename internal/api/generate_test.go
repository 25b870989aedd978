package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-chef/internal/mocks"
	"github.com/pageza/pantry-chef/internal/model"
)

func setupRouter(svc *mocks.MockGenerationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewGenerateHandler(svc).RegisterRoutes(router)
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestGenerateRecipes(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	recipes := []model.Recipe{{
		Name:             "Fried Rice",
		Description:      "Leftover magic",
		Ingredients:      []string{"rice", "egg"},
		Instructions:     []string{"Fry"},
		ImageDescription: "A wok of fried rice",
	}}
	svc.On("GenerateRecipes", mock.Anything, []string{"rice", "egg"}).Return(recipes, nil)

	w := post(setupRouter(svc), `{"type":"recipes","ingredients":["rice"," egg ",""]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got []model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, recipes, got)
	assert.NotContains(t, w.Body.String(), "imageUrl")
	svc.AssertExpectations(t)
}

func TestGenerateRecipesValidation(t *testing.T) {
	bodies := []string{
		`{"type":"recipes"}`,
		`{"type":"recipes","ingredients":[]}`,
		`{"type":"recipes","ingredients":["  "]}`,
		`{"type":"recipes","ingredients":"rice"}`,
		`{"type":"recipes","ingredients":["rice",3]}`,
		`{"type":"recipes","ingredients":null}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			svc := new(mocks.MockGenerationService)
			w := post(setupRouter(svc), body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, MsgIngredientsRequired, decodeError(t, w))
			svc.AssertNotCalled(t, "GenerateRecipes", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateRecipesProviderFailure(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	svc.On("GenerateRecipes", mock.Anything, mock.Anything).Return(nil, errors.New("failed to generate recipes: quota exceeded"))

	w := post(setupRouter(svc), `{"type":"recipes","ingredients":["rice"]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to generate recipes: quota exceeded", decodeError(t, w))
}

func TestGenerateImage(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	svc.On("GenerateImage", mock.Anything, "tomato soup").Return("data:image/jpeg;base64,AAAA", nil)

	w := post(setupRouter(svc), `{"type":"image","prompt":"tomato soup"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "data:image/jpeg;base64,AAAA", resp.ImageURL)
}

func TestGenerateImageValidation(t *testing.T) {
	bodies := []string{
		`{"type":"image"}`,
		`{"type":"image","prompt":""}`,
		`{"type":"image","prompt":"   "}`,
		`{"type":"image","prompt":42}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			svc := new(mocks.MockGenerationService)
			w := post(setupRouter(svc), body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, MsgPromptRequired, decodeError(t, w))
		})
	}
}

func TestGenerateImageFailure(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	svc.On("GenerateImage", mock.Anything, mock.Anything).Return("", errors.New("failed to get image bytes from the model"))

	w := post(setupRouter(svc), `{"type":"image","prompt":"soup"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to get image bytes from the model", decodeError(t, w))
}

func TestGenerateInvalidType(t *testing.T) {
	bodies := []string{
		`{"type":"bogus"}`,
		`{}`,
		`{"ingredients":["rice"]}`,
		`{"type":5}`,
		`{"type":["recipes"]}`,
		`{"type":null}`,
		`{"type":{"name":"image"}}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			w := post(setupRouter(new(mocks.MockGenerationService)), body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid request type"}`, w.Body.String())
		})
	}
}

func TestGenerateInvalidBody(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1,2]`} {
		w := post(setupRouter(new(mocks.MockGenerationService)), body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, MsgInvalidBody, decodeError(t, w))
	}
}

func TestInternalErrorDefaultMessage(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	svc.On("GenerateImage", mock.Anything, mock.Anything).Return("", errors.New(""))

	w := post(setupRouter(svc), `{"type":"image","prompt":"soup"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, MsgInternal, decodeError(t, w))
}
