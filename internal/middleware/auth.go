package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"bazaar_back_end/internal/store"
	"bazaar_back_end/internal/utils"
)

// ContextUserKey is where the authenticated user lands in the gin context.
const ContextUserKey = "user"

// Authenticated reads the session token from the "token" cookie, verifies it
// and attaches the resolved user. Every verification failure is answered the
// same way; the caller cannot tell expiry from tampering here.
func Authenticated(users store.UserStore, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Please login to access this resource",
			})
			return
		}

		userID, err := utils.ParseJWT(tokenString, secret)
		if err != nil {
			invalidToken(c)
			return
		}
		uid, err := gocql.ParseUUID(userID)
		if err != nil {
			invalidToken(c)
			return
		}

		user, err := users.ByID(c.Request.Context(), uid)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				invalidToken(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Internal Server Error",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func invalidToken(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Invalid token",
	})
}
