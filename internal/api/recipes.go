package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chef4u/backend/internal/service"
	"github.com/chef4u/backend/internal/types"
)

// RecipeHandler handles recipe generation and the recipe book.
type RecipeHandler struct {
	gateway service.GenerationGateway
	book    service.RecipeBook
}

// NewRecipeHandler creates a new RecipeHandler instance. The recipe book may
// be nil when no Redis is configured; the book routes then answer 503.
func NewRecipeHandler(gateway service.GenerationGateway, book service.RecipeBook) *RecipeHandler {
	return &RecipeHandler{gateway: gateway, book: book}
}

// Generate handles POST /recipes/generate
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, ing := range req.Ingredients {
		if ing == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients must be non-empty strings"})
			return
		}
	}

	recipes, err := h.gateway.GenerateRecipes(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.GenerateRecipesResponse{Recipes: recipes})
}

// SaveToBook handles POST /recipes/book
func (h *RecipeHandler) SaveToBook(c *gin.Context) {
	if h.book == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe book is not configured"})
		return
	}

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe title is required"})
		return
	}

	if err := h.book.Save(c.Request.Context(), &req.Recipe); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": req.Recipe})
}

// GetFromBook handles GET /recipes/book/:id
func (h *RecipeHandler) GetFromBook(c *gin.Context) {
	if h.book == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe book is not configured"})
		return
	}

	recipe, err := h.book.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteFromBook handles DELETE /recipes/book/:id
func (h *RecipeHandler) DeleteFromBook(c *gin.Context) {
	if h.book == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe book is not configured"})
		return
	}

	if err := h.book.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
