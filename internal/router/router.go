package router

import (
	"github.com/gin-gonic/gin"

	"github.com/chef4u/backend/internal/api"
	"github.com/chef4u/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	pantryHandler *api.PantryHandler,
	chatHandler *api.ChatHandler,
	nutritionHandler *api.NutritionHandler,
	priceHandler *api.PriceHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	// One generation call per control at a time
	guard := middleware.NewInFlightGuard()

	v1 := router.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.POST("/generate", guard.Middleware(), recipeHandler.Generate)
			recipes.POST("/book", recipeHandler.SaveToBook)
			recipes.GET("/book/:id", recipeHandler.GetFromBook)
			recipes.DELETE("/book/:id", recipeHandler.DeleteFromBook)
		}

		v1.POST("/pantry/identify", guard.Middleware(), pantryHandler.Identify)
		v1.POST("/chat", guard.Middleware(), chatHandler.Send)
		v1.POST("/nutrition/plan", guard.Middleware(), nutritionHandler.GeneratePlan)
		v1.GET("/prices/search", priceHandler.Search)
	}

	return router
}
