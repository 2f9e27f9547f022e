package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chef4u/backend/internal/provider/gemini"
	"github.com/chef4u/backend/internal/schema"
	"github.com/chef4u/backend/internal/types"
)

// Fixed chat replies. Chat never surfaces an error to its caller: a missing
// credential and a failed provider call each map to one of these strings so
// the conversation flow never halts.
const (
	ChatMissingKeyReply = "Por favor configura tu API KEY para hablar con el chef."
	ChatFailureReply    = "Tuve un problema de conexión. Intenta de nuevo más tarde."
	ChatEmptyReply      = "Lo siento, me quedé sin ideas. ¿Intentamos otra vez?"
)

const (
	recipeSystemInstruction = "You are Chef4U, a helpful and motivating chef for students and beginners. Always answer in Spanish."

	chatSystemInstruction = "You are Chef4U, a friendly, young cooking assistant and an expert in saving money. " +
		"You help beginners cook tasty and cheap food. Your answers are brief and direct. Always answer in Spanish."

	nutritionSystemInstruction = "You are a careful nutritionist designing realistic plans for students on a budget. Always answer in Spanish."

	pricesSystemInstruction = "You are a grocery price comparison assistant for supermarkets in Spain. " +
		"You estimate realistic current prices in EUR."
)

// Gateway is the single boundary between the feature screens and the
// language-model provider: it builds prompts from structured input, declares
// the exact JSON shape the model must return, and validates every response
// before handing typed data to the caller. It holds no mutable state between
// calls; the credential is captured at startup inside the provider client.
type Gateway struct {
	client *gemini.Client
	logger *zap.Logger
}

// NewGateway creates a Gateway around a provider client.
func NewGateway(client *gemini.Client, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{client: client, logger: logger}
}

// recipePayload is the provider-side recipe shape, before an ID is assigned.
type recipePayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Time        string   `json:"time"`
	Difficulty  string   `json:"difficulty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Calories    string   `json:"calories"`
}

// GenerateRecipes asks the provider for recipe suggestions built from the
// given ingredient list. Each returned recipe gets a fresh client-side ID;
// provider-supplied identifiers are never requested nor trusted. An empty
// provider answer yields an empty list, not an error.
func (g *Gateway) GenerateRecipes(ctx context.Context, ingredients []string) ([]types.Recipe, error) {
	if !g.client.Configured() {
		return nil, ErrMissingCredential
	}

	prompt := fmt.Sprintf(
		"I have the following ingredients: %s.\n"+
			"Suggest 3 creative, simple and delicious recipes I can make mostly with them.\n"+
			"You can assume I have basics like salt, oil, pepper and water.\n"+
			"Keep a young and fun tone.",
		strings.Join(ingredients, ", "))

	temperature := 0.9 // creative output, matches the assistant persona
	text, err := g.generate(ctx, recipeSystemInstruction, []gemini.Content{userText(prompt)}, schema.Recipes(), &temperature)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []types.Recipe{}, nil
	}

	var payload []recipePayload
	if err := decodeValidated(text, schema.Recipes(), &payload); err != nil {
		return nil, err
	}

	recipes := make([]types.Recipe, 0, len(payload))
	for _, p := range payload {
		recipes = append(recipes, types.Recipe{
			ID:          uuid.New().String(),
			Title:       p.Title,
			Description: p.Description,
			Ingredients: p.Ingredients,
			Steps:       p.Steps,
			Time:        p.Time,
			Difficulty:  types.Difficulty(p.Difficulty),
			Calories:    p.Calories,
		})
	}

	g.logger.Info("generated recipes",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("recipes", len(recipes)))
	return recipes, nil
}

// IdentifyIngredients sends a photo to the provider and returns the
// ingredient names it recognizes. Blank names are dropped; merging into an
// existing pantry list is the caller's job via MergeIngredients.
func (g *Gateway) IdentifyIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	if !g.client.Configured() {
		return nil, ErrMissingCredential
	}

	content := gemini.Content{
		Role: "user",
		Parts: []gemini.Part{
			{InlineData: &gemini.InlineData{
				MIMEType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(image),
			}},
			{Text: "List every food ingredient you can identify in this photo. Names only, in Spanish, no quantities."},
		},
	}

	text, err := g.generate(ctx, recipeSystemInstruction, []gemini.Content{content}, schema.Ingredients(), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	var names []string
	if err := decodeValidated(text, schema.Ingredients(), &names); err != nil {
		return nil, err
	}

	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return cleaned, nil
}

// MergeIngredients merges newly identified ingredients into an existing list.
// Case-insensitive string equality is the de-dup key, so "Tomate" and
// "tomate" are the same ingredient; the first-seen casing wins.
func MergeIngredients(existing, found []string) []string {
	merged := make([]string, 0, len(existing)+len(found))
	seen := make(map[string]bool, len(existing)+len(found))
	for _, list := range [][]string{existing, found} {
		for _, name := range list {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, strings.TrimSpace(name))
		}
	}
	return merged
}

// Chat sends one assistant turn. The caller-supplied history is the whole
// session state and is replayed to the provider on every call; no
// server-side session is kept or trusted. Chat never returns a non-nil
// error: degraded outcomes become fixed reply strings.
func (g *Gateway) Chat(ctx context.Context, history []types.ChatTurn, message string) (string, error) {
	if !g.client.Configured() {
		return ChatMissingKeyReply, nil
	}

	contents := make([]gemini.Content, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.Role == types.RoleAssistant {
			role = "model"
		}
		contents = append(contents, gemini.Content{Role: role, Parts: []gemini.Part{{Text: turn.Text}}})
	}
	contents = append(contents, userText(message))

	req := &gemini.Request{
		Contents:          contents,
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: chatSystemInstruction}}},
	}
	text, err := g.client.GenerateContent(ctx, req)
	if err != nil {
		g.logger.Warn("chat provider call failed", zap.Error(err))
		return ChatFailureReply, nil
	}
	if strings.TrimSpace(text) == "" {
		return ChatEmptyReply, nil
	}
	return text, nil
}

// GenerateNutritionPlan asks the provider for a three-day plan built from
// the user's profile. A menu of any other length is a schema violation.
func (g *Gateway) GenerateNutritionPlan(ctx context.Context, profile types.NutritionProfile) (*types.NutritionPlan, error) {
	if !g.client.Configured() {
		return nil, ErrMissingCredential
	}

	prompt := fmt.Sprintf(
		"Design a nutrition plan for me.\n"+
			"Age: %s. Weight: %s kg. Height: %s cm.\n"+
			"Goal: %s. Pace: %s.\n"+
			"Return a short summary, a list of recommended foods, and a menu for exactly 3 days "+
			"with breakfast, lunch and dinner for each day.",
		profile.Age, profile.Weight, profile.Height, profile.Goal, profile.Pace)

	text, err := g.generate(ctx, nutritionSystemInstruction, []gemini.Content{userText(prompt)}, schema.NutritionPlan(), nil)
	if err != nil {
		return nil, err
	}

	var plan types.NutritionPlan
	if err := decodeValidated(text, schema.NutritionPlan(), &plan); err != nil {
		return nil, err
	}
	if len(plan.Menu) != 3 {
		return nil, &SchemaViolationError{Reasons: []string{
			fmt.Sprintf("$.menu: expected exactly 3 day entries, got %d", len(plan.Menu)),
		}}
	}
	return &plan, nil
}

// productPayload is the provider-side price search shape.
type productPayload struct {
	Found    bool                 `json:"found"`
	Name     string               `json:"name"`
	Category string               `json:"category"`
	Image    string               `json:"image"`
	Prices   []types.ProductPrice `json:"prices"`
}

// SearchProductPrices asks the provider to estimate per-retailer prices for
// one product. A query with no matching product is a successful absent
// outcome (ErrProductNotFound), not a provider failure.
func (g *Gateway) SearchProductPrices(ctx context.Context, query string) (*types.Product, error) {
	if !g.client.Configured() {
		return nil, ErrMissingCredential
	}

	prompt := fmt.Sprintf(
		"Find the grocery product matching %q and estimate its price at 3 or 4 Spanish "+
			"supermarket chains (for example Mercadona, Carrefour, Lidl, Dia).\n"+
			"If the query does not describe a real grocery product, return found=false.",
		query)

	text, err := g.generate(ctx, pricesSystemInstruction, []gemini.Content{userText(prompt)}, schema.Product(), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrProductNotFound
	}

	var payload productPayload
	if err := decodeValidated(text, schema.Product(), &payload); err != nil {
		return nil, err
	}
	if !payload.Found {
		return nil, ErrProductNotFound
	}
	if payload.Name == "" || len(payload.Prices) == 0 {
		return nil, &SchemaViolationError{Reasons: []string{"$: found product is missing name or prices"}}
	}

	return &types.Product{
		ID:       uuid.New().String(),
		Name:     payload.Name,
		Category: payload.Category,
		Image:    payload.Image,
		Prices:   payload.Prices,
	}, nil
}

// generate performs one schema-constrained provider round trip and maps
// transport failures into the error taxonomy.
func (g *Gateway) generate(ctx context.Context, system string, contents []gemini.Content, s *schema.Schema, temperature *float64) (string, error) {
	schemaJSON, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema: %w", err)
	}

	req := &gemini.Request{
		Contents:          contents,
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: system}}},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schemaJSON,
			Temperature:      temperature,
		},
	}

	text, err := g.client.GenerateContent(ctx, req)
	if err != nil {
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) {
			return "", &ProviderError{StatusCode: apiErr.StatusCode, Message: apiErr.Body, Err: err}
		}
		return "", &ProviderError{Message: err.Error(), Err: err}
	}
	return text, nil
}

// decodeValidated parses provider text, validates it against the declared
// schema, and only then decodes into the typed destination. A response that
// fails anywhere is discarded wholesale.
func decodeValidated(text string, s *schema.Schema, out interface{}) error {
	var raw interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return &SchemaViolationError{Reasons: []string{"response is not valid JSON: " + err.Error()}}
	}
	if res := schema.Validate(raw, s); !res.Valid() {
		return &SchemaViolationError{Reasons: res.Messages()}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &SchemaViolationError{Reasons: []string{"response does not fit expected shape: " + err.Error()}}
	}
	return nil
}

func userText(text string) gemini.Content {
	return gemini.Content{Role: "user", Parts: []gemini.Part{{Text: text}}}
}
