package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"bazaar_back_end/internal/apperr"
)

// ErrorHandler is the single place that turns failures into response bodies.
// Handlers attach errors with c.Error and return without writing; everything
// lands here as `{success:false, message}` (validation as `{errors:[...]}`).
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var ae *apperr.Error
		if !errors.As(err, &ae) {
			ae = normalize(err)
		}

		if ae.Kind == apperr.Validation {
			c.JSON(http.StatusBadRequest, gin.H{"errors": ae.Rules})
			return
		}
		c.JSON(ae.Status(), gin.H{
			"success": false,
			"message": ae.Error(),
		})
	}
}

// normalize classifies errors that reach this layer untyped.
func normalize(err error) *apperr.Error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.ExpiredToken()
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return apperr.InvalidToken()
	default:
		return apperr.Internalf(err, "Internal Server Error")
	}
}
