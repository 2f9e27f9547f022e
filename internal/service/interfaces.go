package service

import (
	"context"

	"github.com/chef4u/backend/internal/types"
)

// GenerationGateway defines the contract every feature screen calls into to
// obtain AI-produced content. Implementations carry no mutable state between
// calls beyond the credential captured at startup.
type GenerationGateway interface {
	GenerateRecipes(ctx context.Context, ingredients []string) ([]types.Recipe, error)
	IdentifyIngredients(ctx context.Context, image []byte, mimeType string) ([]string, error)
	Chat(ctx context.Context, history []types.ChatTurn, message string) (string, error)
	GenerateNutritionPlan(ctx context.Context, profile types.NutritionProfile) (*types.NutritionPlan, error)
	SearchProductPrices(ctx context.Context, query string) (*types.Product, error)
}

// PriceCatalog answers product price searches. Both the seeded mock catalog
// and the live generation-backed catalog implement it.
type PriceCatalog interface {
	Search(ctx context.Context, query string) (*types.Product, error)
}

// RecipeBook stores generated recipes the user chose to keep.
type RecipeBook interface {
	Save(ctx context.Context, recipe *types.Recipe) error
	Get(ctx context.Context, id string) (*types.Recipe, error)
	Delete(ctx context.Context, id string) error
}
