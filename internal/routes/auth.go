package routes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Binaergewitter/datefinder/internal/jwt"
	"github.com/Binaergewitter/datefinder/internal/model"
)

// UserStore is the slice of the storage provider the auth routes need.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// AuthHandler implements the identity boundary: it turns credentials into
// the {user_id, display_name} identity the calendar core consumes.
type AuthHandler struct {
	auth  *jwt.Authenticator
	store UserStore
}

func NewAuthHandler(auth *jwt.Authenticator, store UserStore) *AuthHandler {
	return &AuthHandler{auth: auth, store: store}
}

func (h *AuthHandler) Routes(r *gin.RouterGroup) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/status", AuthMiddleware(h.auth), h.Status)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	user, err := h.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if user == nil {
		AbortWithError(c, ErrInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("Login failed", "username", req.Username)
		AbortWithError(c, ErrInvalidCredentials)
		return
	}

	token, err := h.auth.Generate(*user)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	setAuthCookie(c, token, h.auth.TTL())

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"user_id":  user.ID,
		"username": user.Name(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Status(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "authenticated",
		"user_id":  user.ID,
		"username": user.Name(),
	})
}
