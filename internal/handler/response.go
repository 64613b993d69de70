// Package handler holds the gin handlers for the HTTP API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gramhealth-go/internal/pipeline"
	"gramhealth-go/internal/repository"
	"gramhealth-go/internal/service"
	"gramhealth-go/internal/symptom"
	"gramhealth-go/pkg/token"
)

func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"code": status, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, symptom.ErrEmptyQuery),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrEmptyUsername):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenRevoked),
		errors.Is(err, token.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, pipeline.ErrNoReport):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internal failure details from clients.
func messageFor(status int, err error) string {
	if status == http.StatusInternalServerError {
		if errors.Is(err, pipeline.ErrInference) {
			return "the classifier could not process the symptoms"
		}
		return "internal server error"
	}
	return err.Error()
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	respond(c, status, messageFor(status, err), nil)
}
