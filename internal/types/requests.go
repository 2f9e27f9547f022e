package types

// GenerateRecipesRequest is the request body for recipe generation
type GenerateRecipesRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}

// GenerateRecipesResponse wraps the generated recipes
type GenerateRecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
}

// IdentifyIngredientsResponse carries the merged ingredient list after a
// photo scan
type IdentifyIngredientsResponse struct {
	Identified  []string `json:"identified"`
	Ingredients []string `json:"ingredients"`
}

// ChatRequest is the request body for an assistant turn. History is the full
// prior conversation; the server keeps no session of its own.
type ChatRequest struct {
	History []ChatTurn `json:"history"`
	Message string     `json:"message" binding:"required"`
}

// ChatResponse carries the assistant's reply turn
type ChatResponse struct {
	Reply ChatTurn `json:"reply"`
}

// NutritionPlanRequest is the request body for plan generation
type NutritionPlanRequest struct {
	Age    string `json:"age" binding:"required"`
	Weight string `json:"weight" binding:"required"`
	Height string `json:"height" binding:"required"`
	Goal   string `json:"goal" binding:"required"`
	Pace   string `json:"pace" binding:"required"`
}

// SaveRecipeRequest is the request body for saving a generated recipe to the
// recipe book
type SaveRecipeRequest struct {
	Recipe Recipe `json:"recipe" binding:"required"`
}
