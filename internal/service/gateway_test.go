package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chef4u/backend/internal/provider/gemini"
	"github.com/chef4u/backend/internal/types"
)

// providerStub fakes the completion endpoint: it answers every request with
// the configured text (or status) and counts the calls it received.
type providerStub struct {
	srv    *httptest.Server
	calls  int64
	text   string
	status int
	// last request body, for asserting what went over the wire
	lastBody map[string]json.RawMessage
}

func newProviderStub(t *testing.T) *providerStub {
	t.Helper()
	stub := &providerStub{status: http.StatusOK}
	stub.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.calls, 1)
		body := map[string]json.RawMessage{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		stub.lastBody = body

		if stub.status != http.StatusOK {
			http.Error(w, "provider unavailable", stub.status)
			return
		}
		resp, _ := json.Marshal(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": stub.text}},
				}},
			},
		})
		w.Write(resp)
	}))
	t.Cleanup(stub.srv.Close)
	return stub
}

func (s *providerStub) gateway(t *testing.T, apiKey string) *Gateway {
	t.Helper()
	client := gemini.NewClient(apiKey, s.srv.URL, "test-model", s.srv.Client())
	return NewGateway(client, zaptest.NewLogger(t))
}

const recipesJSON = `[
	{
		"title": "Arroz con huevo frito",
		"description": "El clásico que nunca falla",
		"time": "15 min",
		"difficulty": "Easy",
		"ingredients": ["arroz", "huevo", "aceite"],
		"steps": ["Cocer el arroz", "Freír el huevo", "Juntar y disfrutar"],
		"calories": "420 kcal"
	},
	{
		"title": "Tortilla de arroz",
		"description": "Sobras con estilo",
		"time": "20 min",
		"difficulty": "Medium",
		"ingredients": ["arroz", "huevo"],
		"steps": ["Batir los huevos", "Mezclar con el arroz", "Cuajar en la sartén"]
	}
]`

func TestGateway_GenerateRecipes(t *testing.T) {
	t.Run("returns validated recipes with fresh distinct ids", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = recipesJSON
		g := stub.gateway(t, "test-key")

		recipes, err := g.GenerateRecipes(context.Background(), []string{"egg", "rice"})

		require.NoError(t, err)
		require.NotEmpty(t, recipes)
		seen := map[string]bool{}
		for _, r := range recipes {
			assert.NotEmpty(t, r.Title)
			assert.NotEmpty(t, r.Steps)
			assert.NotEmpty(t, r.Ingredients)
			assert.Contains(t, types.Difficulties(), string(r.Difficulty))
			assert.NotEmpty(t, r.ID)
			assert.False(t, seen[r.ID], "ids must be pairwise distinct")
			seen[r.ID] = true
		}
	})

	t.Run("embeds the ingredient list verbatim in the prompt", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = recipesJSON
		g := stub.gateway(t, "test-key")

		_, err := g.GenerateRecipes(context.Background(), []string{"egg", "rice"})
		require.NoError(t, err)

		assert.Contains(t, string(stub.lastBody["contents"]), "egg, rice")
		assert.Contains(t, string(stub.lastBody["generationConfig"]), "responseSchema")
	})

	t.Run("empty provider text yields an empty list, not an error", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = ""
		g := stub.gateway(t, "test-key")

		recipes, err := g.GenerateRecipes(context.Background(), []string{"egg"})

		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("missing credential fails without a network call", func(t *testing.T) {
		stub := newProviderStub(t)
		g := stub.gateway(t, "")

		_, err := g.GenerateRecipes(context.Background(), []string{"egg"})

		assert.ErrorIs(t, err, ErrMissingCredential)
		assert.Zero(t, atomic.LoadInt64(&stub.calls))
	})

	t.Run("provider failure surfaces as ProviderError", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.status = http.StatusInternalServerError
		g := stub.gateway(t, "test-key")

		_, err := g.GenerateRecipes(context.Background(), []string{"egg"})

		var provErr *ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, http.StatusInternalServerError, provErr.StatusCode)
		assert.Equal(t, int64(1), atomic.LoadInt64(&stub.calls), "no retry on failure")
	})

	t.Run("schema violation discards the whole response", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = `[{"title": "Sin receta", "difficulty": "Imposible"}]`
		g := stub.gateway(t, "test-key")

		recipes, err := g.GenerateRecipes(context.Background(), []string{"egg"})

		var schemaErr *SchemaViolationError
		require.ErrorAs(t, err, &schemaErr)
		assert.Nil(t, recipes)
	})

	t.Run("non-JSON text is a schema violation", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = "here are some nice recipes for you"
		g := stub.gateway(t, "test-key")

		_, err := g.GenerateRecipes(context.Background(), []string{"egg"})

		var schemaErr *SchemaViolationError
		assert.ErrorAs(t, err, &schemaErr)
	})
}

func TestGateway_IdentifyIngredients(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF} // jpeg magic, content is irrelevant

	t.Run("returns recognized names and sends the image inline", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = `["Tomate", "Huevo", " "]`
		g := stub.gateway(t, "test-key")

		names, err := g.IdentifyIngredients(context.Background(), image, "image/jpeg")

		require.NoError(t, err)
		assert.Equal(t, []string{"Tomate", "Huevo"}, names)
		assert.Contains(t, string(stub.lastBody["contents"]), "inlineData")
		assert.Contains(t, string(stub.lastBody["contents"]), "image/jpeg")
	})

	t.Run("empty answer is an empty list", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = ""
		g := stub.gateway(t, "test-key")

		names, err := g.IdentifyIngredients(context.Background(), image, "image/jpeg")

		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("missing credential is surfaced", func(t *testing.T) {
		stub := newProviderStub(t)
		g := stub.gateway(t, "")

		_, err := g.IdentifyIngredients(context.Background(), image, "image/jpeg")
		assert.ErrorIs(t, err, ErrMissingCredential)
	})
}

func TestMergeIngredients(t *testing.T) {
	t.Run("deduplicates case-insensitively keeping first casing", func(t *testing.T) {
		merged := MergeIngredients([]string{"Tomate", "arroz"}, []string{"tomate", "Huevo", "ARROZ"})
		assert.Equal(t, []string{"Tomate", "arroz", "Huevo"}, merged)
	})

	t.Run("never produces two entries equal under case folding", func(t *testing.T) {
		merged := MergeIngredients([]string{"a", "A", "b"}, []string{"B", "a", "c"})
		seen := map[string]bool{}
		for _, m := range merged {
			low := strings.ToLower(m)
			assert.False(t, seen[low], "duplicate %q", m)
			seen[low] = true
		}
		assert.Equal(t, []string{"a", "b", "c"}, merged)
	})

	t.Run("drops blank entries", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, MergeIngredients([]string{"", "a"}, []string{"  "}))
	})
}

func TestGateway_Chat(t *testing.T) {
	history := []types.ChatTurn{
		{ID: "1", Role: types.RoleUser, Text: "¿Cómo cuezo arroz?"},
		{ID: "2", Role: types.RoleAssistant, Text: "Dos partes de agua por una de arroz."},
	}

	t.Run("returns the provider reply", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = "¡Añade un chorrito de aceite!"
		g := stub.gateway(t, "test-key")

		reply, err := g.Chat(context.Background(), history, "¿Algún truco más?")

		require.NoError(t, err)
		assert.Equal(t, "¡Añade un chorrito de aceite!", reply)
	})

	t.Run("replays the whole history every call", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = "ok"
		g := stub.gateway(t, "test-key")

		_, err := g.Chat(context.Background(), history, "nuevo mensaje")
		require.NoError(t, err)

		var contents []gemini.Content
		require.NoError(t, json.Unmarshal(stub.lastBody["contents"], &contents))
		require.Len(t, contents, 3)
		assert.Equal(t, "user", contents[0].Role)
		assert.Equal(t, "model", contents[1].Role)
		assert.Equal(t, "nuevo mensaje", contents[2].Parts[0].Text)
	})

	t.Run("missing credential returns the fixed string and never calls out", func(t *testing.T) {
		stub := newProviderStub(t)
		g := stub.gateway(t, "")

		reply, err := g.Chat(context.Background(), history, "hola")

		require.NoError(t, err)
		assert.Equal(t, ChatMissingKeyReply, reply)
		assert.Zero(t, atomic.LoadInt64(&stub.calls))
	})

	t.Run("provider failure becomes the apologetic string, not an error", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.status = http.StatusBadGateway
		g := stub.gateway(t, "test-key")

		reply, err := g.Chat(context.Background(), history, "hola")

		require.NoError(t, err)
		assert.Equal(t, ChatFailureReply, reply)
	})

	t.Run("empty provider reply becomes the out-of-ideas string", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = ""
		g := stub.gateway(t, "test-key")

		reply, err := g.Chat(context.Background(), history, "hola")

		require.NoError(t, err)
		assert.Equal(t, ChatEmptyReply, reply)
	})
}

const planJSON = `{
	"summary": "Plan de 1800 kcal para perder peso a ritmo moderado",
	"recommendations": ["avena", "pollo", "verdura de temporada"],
	"menu": [
		{"day": "Día 1", "breakfast": "Avena con plátano", "lunch": "Pollo con arroz", "dinner": "Tortilla francesa"},
		{"day": "Día 2", "breakfast": "Yogur con nueces", "lunch": "Lentejas", "dinner": "Merluza al horno"},
		{"day": "Día 3", "breakfast": "Tostadas integrales", "lunch": "Pasta con atún", "dinner": "Ensalada completa"}
	]
}`

func TestGateway_GenerateNutritionPlan(t *testing.T) {
	profile := types.NutritionProfile{
		Age: "20", Weight: "70", Height: "175",
		Goal: types.GoalLoseWeight, Pace: types.PaceModerate,
	}

	t.Run("returns a plan with exactly three menu days", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = planJSON
		g := stub.gateway(t, "test-key")

		plan, err := g.GenerateNutritionPlan(context.Background(), profile)

		require.NoError(t, err)
		assert.NotEmpty(t, plan.Summary)
		require.Len(t, plan.Menu, 3)
		for _, day := range plan.Menu {
			assert.NotEmpty(t, day.Day)
			assert.NotEmpty(t, day.Breakfast)
			assert.NotEmpty(t, day.Lunch)
			assert.NotEmpty(t, day.Dinner)
		}
	})

	t.Run("embeds every profile field in the prompt", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = planJSON
		g := stub.gateway(t, "test-key")

		_, err := g.GenerateNutritionPlan(context.Background(), profile)
		require.NoError(t, err)

		contents := string(stub.lastBody["contents"])
		for _, want := range []string{"20", "70", "175", "LoseWeight", "Moderate"} {
			assert.Contains(t, contents, want)
		}
	})

	t.Run("a menu that is not three days is a schema violation", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = `{
			"summary": "Plan corto",
			"recommendations": [],
			"menu": [{"day": "Día 1", "breakfast": "a", "lunch": "b", "dinner": "c"}]
		}`
		g := stub.gateway(t, "test-key")

		_, err := g.GenerateNutritionPlan(context.Background(), profile)

		var schemaErr *SchemaViolationError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Error(), "3 day entries")
	})

	t.Run("missing credential is surfaced", func(t *testing.T) {
		stub := newProviderStub(t)
		g := stub.gateway(t, "")

		_, err := g.GenerateNutritionPlan(context.Background(), profile)
		assert.ErrorIs(t, err, ErrMissingCredential)
	})
}

func TestGateway_SearchProductPrices(t *testing.T) {
	t.Run("returns a product with a fresh id", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = `{
			"found": true,
			"name": "Leche Entera 1L",
			"category": "Lácteos",
			"image": "🥛",
			"prices": [
				{"supermarket": "Mercadona", "price": 0.95, "logo": "🟢"},
				{"supermarket": "Lidl", "price": 0.91, "logo": "🟡"}
			]
		}`
		g := stub.gateway(t, "test-key")

		product, err := g.SearchProductPrices(context.Background(), "leche")

		require.NoError(t, err)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Leche Entera 1L", product.Name)
		cheapest, ok := product.Cheapest()
		require.True(t, ok)
		assert.Equal(t, 0.91, cheapest.Price)
	})

	t.Run("found=false is not-found, not a failure", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = `{"found": false}`
		g := stub.gateway(t, "test-key")

		_, err := g.SearchProductPrices(context.Background(), "un unicornio")

		assert.ErrorIs(t, err, ErrProductNotFound)
		var provErr *ProviderError
		assert.False(t, errors.As(err, &provErr), "not-found must stay distinct from provider failure")
	})

	t.Run("empty provider text is also not-found", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = ""
		g := stub.gateway(t, "test-key")

		_, err := g.SearchProductPrices(context.Background(), "leche")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("provider failure stays a ProviderError", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.status = http.StatusServiceUnavailable
		g := stub.gateway(t, "test-key")

		_, err := g.SearchProductPrices(context.Background(), "leche")

		var provErr *ProviderError
		assert.ErrorAs(t, err, &provErr)
		assert.False(t, errors.Is(err, ErrProductNotFound))
	})

	t.Run("a found product without prices is a schema violation", func(t *testing.T) {
		stub := newProviderStub(t)
		stub.text = `{"found": true, "name": "Leche", "prices": []}`
		g := stub.gateway(t, "test-key")

		_, err := g.SearchProductPrices(context.Background(), "leche")

		var schemaErr *SchemaViolationError
		assert.ErrorAs(t, err, &schemaErr)
	})
}
