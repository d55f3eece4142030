package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metricdeck/insights/internal/analytics"
	seatsdomain "github.com/metricdeck/insights/internal/seats/domain"
	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware renders the last collected error as a typed JSON
// body. Flatten failures reach the caller whole: no handler writes a table
// before its pipeline has fully succeeded.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, usagedomain.ErrMalformedJSON),
		errors.Is(err, seatsdomain.ErrMalformedJSON):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_json",
			Message: "input is not valid JSON, re-check and re-submit",
		}
	case errors.Is(err, usagedomain.ErrInvalidShape),
		errors.Is(err, seatsdomain.ErrInvalidShape):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_schema",
			Message: "input parsed but does not match the expected schema",
		}
	case errors.Is(err, usagedomain.ErrInvalidDate),
		errors.Is(err, seatsdomain.ErrInvalidDate):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_date",
			Message: "a record carries an unparseable date, the batch was not processed",
		}
	case errors.Is(err, analytics.ErrUnknownMetric):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "unknown metric name",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
