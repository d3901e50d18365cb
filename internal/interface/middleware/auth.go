package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/securekeep/pkg/helpers"
	"github.com/oksasatya/securekeep/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth reads the session cookie, verifies the token and injects the user id
// into the Gin context. Malformed, expired and badly signed tokens all
// produce the same generic 401; the failure class never reaches the client.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
