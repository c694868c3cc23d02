// Authentication middleware and session routes.
// A valid auth cookie puts the user identity into the gin context; the
// calendar routes and the websocket endpoint both require it.
package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Binaergewitter/datefinder/internal/jwt"
	"github.com/Binaergewitter/datefinder/internal/model"
)

const AuthCookieName = "auth_token"

const userContextKey = "user"

// setAuthCookie sets the session cookie, expiring when the token expires.
func setAuthCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"

	c.SetCookie(
		AuthCookieName,
		token,
		int(ttl.Seconds()),
		"/",
		"",
		secure,
		true,
	)
}

func clearAuthCookie(c *gin.Context) {
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
}

// GetUser returns the authenticated identity set by AuthMiddleware.
func GetUser(c *gin.Context) (model.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

// AuthMiddleware verifies the auth cookie and stores the user identity in
// the context. Requests without a valid cookie are rejected with 401.
func AuthMiddleware(auth *jwt.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AuthCookieName)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := auth.Decode(token)
		if err != nil {
			slog.Warn("AuthMiddleware: Invalid auth token", "error", err)
			AbortWithError(c, jwt.ErrNonValidToken)
			return
		}

		c.Set(userContextKey, model.User{
			ID:          claims.UserID,
			Username:    claims.Username,
			DisplayName: claims.DisplayName,
		})
		c.Next()
	}
}

// RequireUser is a convenience for handlers behind AuthMiddleware.
func RequireUser(c *gin.Context) (model.User, bool) {
	user, ok := GetUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return user, ok
}
