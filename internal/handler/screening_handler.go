package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"gramhealth-go/internal/middleware"
	"gramhealth-go/internal/model"
	"gramhealth-go/internal/service"
	"gramhealth-go/pkg/log"
)

// ScreeningHandler runs screenings and serves report downloads.
type ScreeningHandler struct {
	screeningService service.ScreeningService
}

// NewScreeningHandler creates a ScreeningHandler.
func NewScreeningHandler(screeningService service.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{screeningService: screeningService}
}

// ScreeningRequest is the body shared by the screening and report endpoints.
type ScreeningRequest struct {
	Age      int      `json:"age" binding:"required,min=1,max=120"`
	Gender   string   `json:"gender" binding:"required,oneof=Male Female Other"`
	Symptoms []string `json:"symptoms"`
	FreeText string   `json:"freeText"`
	Lang     string   `json:"lang"`
}

func (r ScreeningRequest) toService() service.ScreeningRequest {
	return service.ScreeningRequest{
		Age:      r.Age,
		Gender:   model.Gender(r.Gender),
		Selected: r.Symptoms,
		FreeText: r.FreeText,
		Language: model.ParseLanguage(r.Lang),
	}
}

func bindScreening(c *gin.Context) (ScreeningRequest, bool) {
	var req ScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Screening: invalid request payload, error: %v", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respond(c, http.StatusBadRequest,
				fmt.Sprintf("age must be %d-%d and gender one of Male, Female, Other", model.MinAge, model.MaxAge), nil)
			return req, false
		}
		respond(c, http.StatusBadRequest, "invalid request payload", nil)
		return req, false
	}
	return req, true
}

// Screen returns the ranked and resolved diagnosis.
func (h *ScreeningHandler) Screen(c *gin.Context) {
	req, ok := bindScreening(c)
	if !ok {
		return
	}
	result, err := h.screeningService.Screen(c.Request.Context(), middleware.CurrentSession(c), req.toService())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "success", result)
}

// Report returns the PDF report as an attachment.
func (h *ScreeningHandler) Report(c *gin.Context) {
	req, ok := bindScreening(c)
	if !ok {
		return
	}
	doc, err := h.screeningService.Report(c.Request.Context(), middleware.CurrentSession(c), req.toService())
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Header("X-Report-ID", doc.ID)
	if doc.URL != "" {
		c.Header("X-Report-URL", doc.URL)
	}
	c.Data(http.StatusOK, doc.MIMEType, doc.Data)
}
