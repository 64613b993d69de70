package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gramhealth-go/internal/service"
	"gramhealth-go/pkg/log"
)

// AuthHandler serves token refresh.
type AuthHandler struct {
	userService service.UserService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RefreshTokenRequest is the refresh body.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("RefreshToken: invalid request payload, error: %v", err)
		respond(c, http.StatusBadRequest, "refreshToken is required", nil)
		return
	}

	res, err := h.userService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Warnf("RefreshToken: failed to refresh token, error: %v", err)
		respond(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	respond(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"token":        res.AccessToken,
		"refreshToken": res.RefreshToken,
	})
}
