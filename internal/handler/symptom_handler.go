package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gramhealth-go/internal/service"
)

// SymptomHandler lists the selectable symptoms.
type SymptomHandler struct {
	screeningService service.ScreeningService
}

func NewSymptomHandler(screeningService service.ScreeningService) *SymptomHandler {
	return &SymptomHandler{screeningService: screeningService}
}

// List returns the bilingual symptom labels. Values are always English tokens.
func (h *SymptomHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, "success", gin.H{
		"options": h.screeningService.SymptomOptions(),
	})
}
