package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chef4u/backend/internal/service"
	"github.com/chef4u/backend/internal/types"
)

// NutritionHandler handles nutrition plan generation.
type NutritionHandler struct {
	gateway service.GenerationGateway
}

// NewNutritionHandler creates a new NutritionHandler instance.
func NewNutritionHandler(gateway service.GenerationGateway) *NutritionHandler {
	return &NutritionHandler{gateway: gateway}
}

// GeneratePlan handles POST /nutrition/plan
func (h *NutritionHandler) GeneratePlan(c *gin.Context) {
	var req types.NutritionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for name, value := range map[string]string{"age": req.Age, "weight": req.Weight, "height": req.Height} {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be numeric"})
			return
		}
	}

	goal, ok := types.ParseNutritionGoal(req.Goal)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal must be one of LoseWeight, GainMuscle, Maintain"})
		return
	}
	pace, ok := types.ParseNutritionPace(req.Pace)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pace must be one of Slow, Moderate, Fast"})
		return
	}

	profile := types.NutritionProfile{
		Age:    req.Age,
		Weight: req.Weight,
		Height: req.Height,
		Goal:   goal,
		Pace:   pace,
	}

	plan, err := h.gateway.GenerateNutritionPlan(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
