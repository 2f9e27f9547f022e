package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chef4u/backend/internal/types"
)

// ErrRecipeNotFound means the recipe book has no entry under the given id,
// either because it was never saved or because its TTL expired.
var ErrRecipeNotFound = errors.New("recipe not found")

const recipeBookTTL = 24 * time.Hour

// RedisRecipeBook keeps generated recipes the user chose to save. Entries
// expire after a day; the book is a convenience, not durable storage.
type RedisRecipeBook struct {
	redis *redis.Client
}

// NewRedisRecipeBook creates a recipe book on the given Redis client.
func NewRedisRecipeBook(client *redis.Client) *RedisRecipeBook {
	return &RedisRecipeBook{redis: client}
}

// Save stores a recipe. A recipe without an ID gets one assigned; saved
// recipes keep the identifier they were generated with.
func (b *RedisRecipeBook) Save(ctx context.Context, recipe *types.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	key := recipeBookKey(recipe.ID)
	if err := b.redis.Set(ctx, key, data, recipeBookTTL).Err(); err != nil {
		return fmt.Errorf("failed to save recipe to Redis: %w", err)
	}
	return nil
}

// Get retrieves a saved recipe by id.
func (b *RedisRecipeBook) Get(ctx context.Context, id string) (*types.Recipe, error) {
	data, err := b.redis.Get(ctx, recipeBookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe from Redis: %w", err)
	}

	var recipe types.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &recipe, nil
}

// Delete removes a saved recipe.
func (b *RedisRecipeBook) Delete(ctx context.Context, id string) error {
	if err := b.redis.Del(ctx, recipeBookKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete recipe from Redis: %w", err)
	}
	return nil
}

func recipeBookKey(id string) string {
	return fmt.Sprintf("recipe:book:%s", id)
}
