package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gramhealth-go/internal/middleware"
	"gramhealth-go/internal/service"
	"gramhealth-go/pkg/log"
)

// UserHandler serves signup, login, profile and logout.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest is the signup body. Empty usernames are rejected by the service
// after the password confirmation check.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// Register creates a credential.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Register: invalid request payload, error: %v", err)
		respond(c, http.StatusBadRequest, "password and confirmPassword are required", nil)
		return
	}

	user, err := h.userService.Register(req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		log.Warnf("Register: registration failed for '%s', error: %v", req.Username, err)
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "User registered successfully", gin.H{"username": user.Username})
}

// LoginRequest is the login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login opens a session and returns its tokens.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: invalid request payload, error: %v", err)
		respond(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Warnf("Login: authentication failed for '%s', error: %v", req.Username, err)
		fail(c, err)
		return
	}

	log.Infof("User '%s' logged in", req.Username)
	respond(c, http.StatusOK, "Login successful", gin.H{
		"username":     res.Session.Username,
		"token":        res.AccessToken,
		"refreshToken": res.RefreshToken,
	})
}

// GetProfile greets the session user.
func (h *UserHandler) GetProfile(c *gin.Context) {
	session := middleware.CurrentSession(c)
	respond(c, http.StatusOK, "success", gin.H{
		"username": session.Username,
		"greeting": "Hello, " + session.Username,
	})
}

// Logout revokes the current access token.
func (h *UserHandler) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if err := h.userService.Logout(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		log.Error("Logout: failed to revoke token", err)
		fail(c, err)
		return
	}
	log.Infof("User '%s' logged out", session.Username)
	respond(c, http.StatusOK, "Logout successful", nil)
}
