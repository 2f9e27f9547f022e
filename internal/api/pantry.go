package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chef4u/backend/internal/service"
	"github.com/chef4u/backend/internal/types"
)

// maxImageBytes caps the photo upload size.
const maxImageBytes = 8 << 20

// PantryHandler handles photo-based ingredient identification.
type PantryHandler struct {
	gateway service.GenerationGateway
}

// NewPantryHandler creates a new PantryHandler instance.
func NewPantryHandler(gateway service.GenerationGateway) *PantryHandler {
	return &PantryHandler{gateway: gateway}
}

// Identify handles POST /pantry/identify. The request is multipart: an
// "image" file plus zero or more "ingredients" values holding the current
// pantry list. Reading the upload and calling the provider are two steps; a
// failure at either one reports the same recoverable error so the client can
// clear its selection and retry.
func (h *PantryHandler) Identify(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image: " + err.Error()})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image: " + err.Error()})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}

	existing := c.PostFormArray("ingredients")

	identified, err := h.gateway.IdentifyIngredients(c.Request.Context(), image, mimeType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.IdentifyIngredientsResponse{
		Identified:  identified,
		Ingredients: service.MergeIngredients(existing, identified),
	})
}
