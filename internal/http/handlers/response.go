// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities shared across endpoints.
// The two public POST endpoints use success-flag bodies dictated by the
// presentation-layer contract; ErrorResponse/fail cover the generic cases
// (404, 405, panic recovery) where no endpoint contract applies.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reblaw/go-law-proxy/internal/http/middleware"
)

// ErrorResponse is the error envelope for fallback routes.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID, for matching
//     server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Message: a human-readable description, safe to show to users.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// fail aborts the request with a structured error and logs server-side
// errors (>= 500) with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
