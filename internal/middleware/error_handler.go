package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/flashcart/chargeback-intelligence/internal/filter"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// MapError translates engine errors into a status code and response body.
// Validation failures are client errors; anything else is unexpected.
func MapError(err error) (int, ErrorResponse) {
	var filterErr *filter.InvalidFilterError
	if errors.As(err, &filterErr) {
		return http.StatusBadRequest, ErrorResponse{
			Error: filterErr.Error(),
			Field: filterErr.Field,
		}
	}

	var pageErr *filter.InvalidPageSpecError
	if errors.As(err, &pageErr) {
		return http.StatusBadRequest, ErrorResponse{
			Error: pageErr.Error(),
			Field: pageErr.Field,
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
