package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"user-service/internal/infrastructure"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID, assigning one when the
// client did not provide it.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(requestIDHeader, requestID)
			return next(c)
		}
	}
}

// GlobalRateLimit applies a process-wide token-bucket budget to the whole
// HTTP surface.
func GlobalRateLimit(requestsPerSecond, burst int) echo.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			}
			return next(c)
		}
	}
}

// PerClientRateLimit throttles by client address within a sliding window;
// mounted on /register to slow down account-creation abuse.
func PerClientRateLimit(limiter *infrastructure.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many requests, please try again later"})
			}
			return next(c)
		}
	}
}
