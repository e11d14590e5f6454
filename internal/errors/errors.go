package errors

import (
	"net/http"

	"codeberg.org/wayfare/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For the streaming endpoint:
//   - Errors are delivered as stream events, not HTTP status codes; the stream
//     package maps codes itself and the handlers here are not used mid-stream
//
// For services/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeUnauthorized     = "unauthorized"
	CodeValidationError  = "validation_error"
	CodeLimitExceeded    = "limit_exceeded"
	CodeRateLimited      = "rate_limited"
	CodeGenerationFailed = "generation_failed"
	CodeTimeout          = "timeout"
	CodeInternalError    = "internal_error"
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	details := ""
	if err != nil {
		details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
		Details: details,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 429 error for quota gate rejections, with usage context
func LimitExceeded(c *gin.Context, usage *UsageDetails) {
	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeLimitExceeded,
		Message: "generation limit reached for the current period",
		Usage:   usage,
	})
}

// returns a 429 error for burst rate limit rejections
func RateLimited(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeRateLimited,
		Message: "too many requests, slow down",
	})
}

// returns a 502 error when the creative provider produced no usable payload
func GenerationFailed(c *gin.Context, message string, err error) {
	if message == "" {
		message = "itinerary generation failed"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"user_id", c.GetString("user_id"),
	)

	response := ErrorResponse{
		Error:   CodeGenerationFailed,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadGateway, response)
}

// returns a 504 error for protocol-level deadline expiry
func Timeout(c *gin.Context) {
	c.JSON(http.StatusGatewayTimeout, ErrorResponse{
		Error:   CodeTimeout,
		Message: "request timed out",
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeInternalError,
		Message: message,
		Details: sanitizeError(err),
	})
}
