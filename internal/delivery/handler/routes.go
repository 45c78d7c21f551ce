package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"user-service/internal/config"
	"user-service/internal/infrastructure"
)

// RegisterRoutes mounts the versioned user API and its middleware chain.
func RegisterRoutes(e *echo.Echo, h *Handler, cfg *config.Config) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(GlobalRateLimit(cfg.GlobalRateLimit, cfg.GlobalRateBurst))

	registerLimiter := infrastructure.NewRateLimiter(cfg.RegisterRateWindow, cfg.RegisterRateLimit)

	users := e.Group("/api/v1/users")

	users.POST("/register", h.Register, PerClientRateLimit(registerLimiter))
	users.GET("/search", h.SearchUsers)
	users.GET("/active", h.GetAllActiveUsers)
	users.GET("/count", h.CountActiveUsers)
	users.GET("/check-username/:username", h.CheckUsernameAvailability)
	users.GET("/check-email/:email", h.CheckEmailAvailability)
	users.GET("/username/:username", h.GetUserByUsername)
	users.GET("/:id", h.GetUserByID)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	// Internal consistency hooks for the follow and posting services.
	users.POST("/:id/increment-followers", h.IncrementFollowers)
	users.POST("/:id/decrement-followers", h.DecrementFollowers)
	users.POST("/:id/increment-following", h.IncrementFollowing)
	users.POST("/:id/decrement-following", h.DecrementFollowing)
	users.POST("/:id/increment-tweets", h.IncrementTweets)
}
