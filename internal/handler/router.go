package handler

import (
	"github.com/gin-gonic/gin"

	"gramhealth-go/internal/middleware"
	"gramhealth-go/internal/service"
)

// NewRouter builds the engine with every route registered.
func NewRouter(userService service.UserService, screeningService service.ScreeningService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	userHandler := NewUserHandler(userService)
	authGate := middleware.AuthMiddleware(userService)

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			authed := users.Group("/")
			authed.Use(authGate)
			{
				authed.GET("/me", userHandler.GetProfile)
				authed.POST("/logout", userHandler.Logout)
			}
		}

		symptoms := apiV1.Group("/symptoms")
		symptoms.Use(authGate)
		{
			symptoms.GET("", NewSymptomHandler(screeningService).List)
		}

		screeningHandler := NewScreeningHandler(screeningService)
		screenings := apiV1.Group("/screenings")
		screenings.Use(authGate)
		{
			screenings.POST("", screeningHandler.Screen)
			screenings.POST("/report", screeningHandler.Report)
		}
	}
	return r
}
