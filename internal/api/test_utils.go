package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chef4u/backend/internal/service"
	"github.com/chef4u/backend/internal/types"
)

// fakeGateway implements service.GenerationGateway with per-call function
// fields so each test wires only the operation it exercises.
type fakeGateway struct {
	generateRecipes     func(ctx context.Context, ingredients []string) ([]types.Recipe, error)
	identifyIngredients func(ctx context.Context, image []byte, mimeType string) ([]string, error)
	chat                func(ctx context.Context, history []types.ChatTurn, message string) (string, error)
	nutritionPlan       func(ctx context.Context, profile types.NutritionProfile) (*types.NutritionPlan, error)
	searchPrices        func(ctx context.Context, query string) (*types.Product, error)
}

func (f *fakeGateway) GenerateRecipes(ctx context.Context, ingredients []string) ([]types.Recipe, error) {
	return f.generateRecipes(ctx, ingredients)
}

func (f *fakeGateway) IdentifyIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	return f.identifyIngredients(ctx, image, mimeType)
}

func (f *fakeGateway) Chat(ctx context.Context, history []types.ChatTurn, message string) (string, error) {
	return f.chat(ctx, history, message)
}

func (f *fakeGateway) GenerateNutritionPlan(ctx context.Context, profile types.NutritionProfile) (*types.NutritionPlan, error) {
	return f.nutritionPlan(ctx, profile)
}

func (f *fakeGateway) SearchProductPrices(ctx context.Context, query string) (*types.Product, error) {
	return f.searchPrices(ctx, query)
}

// fakeBook implements service.RecipeBook over a plain map.
type fakeBook struct {
	recipes map[string]*types.Recipe
	saveErr error
}

func newFakeBook() *fakeBook {
	return &fakeBook{recipes: map[string]*types.Recipe{}}
}

func (b *fakeBook) Save(ctx context.Context, recipe *types.Recipe) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	if recipe.ID == "" {
		recipe.ID = "assigned-id"
	}
	b.recipes[recipe.ID] = recipe
	return nil
}

func (b *fakeBook) Get(ctx context.Context, id string) (*types.Recipe, error) {
	recipe, ok := b.recipes[id]
	if !ok {
		return nil, service.ErrRecipeNotFound
	}
	return recipe, nil
}

func (b *fakeBook) Delete(ctx context.Context, id string) error {
	delete(b.recipes, id)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// performJSON issues a request with a JSON body against the router.
func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	body := map[string]json.RawMessage{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON object: %v (body %q)", err, w.Body.String())
	}
	return body
}
