package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	tokens *services.TokenService
}

func NewAuthHandler(auth *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

func (r registerRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return domain.ErrUsernameEmpty
	}
	if strings.TrimSpace(r.Name) == "" {
		return domain.ErrDisplayNameEmpty
	}
	return nil
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RegisterRoutes mounts login and register on public and the session
// routes on protected.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	authGroup := public.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
	}

	session := protected.Group("/auth")
	{
		session.GET("/me", h.Me)
		session.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, ok := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrInvalidCredentials.Error()})
		return
	}
	h.respondSession(c, http.StatusOK, user)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindValid(c, &req) {
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSession(c, http.StatusCreated, user)
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, user domain.User) {
	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, sessionResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
