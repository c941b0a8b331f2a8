package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type ThemeHandler struct {
	svc *services.ThemeService
}

func NewThemeHandler(svc *services.ThemeService) *ThemeHandler {
	return &ThemeHandler{svc: svc}
}

func (h *ThemeHandler) RegisterRoutes(router *gin.RouterGroup) {
	themes := router.Group("/themes")
	{
		themes.GET("", h.List)
		themes.GET("/current", h.Current)
		themes.GET("/:key", h.Get)
		themes.PUT("/:key", h.Save)
		themes.DELETE("/:key", h.Remove)
		themes.POST("/:key/apply", h.Apply)
	}
}

func (h *ThemeHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Themes())
}

func (h *ThemeHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Current())
}

func (h *ThemeHandler) Get(c *gin.Context) {
	t, err := h.svc.Get(c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Save creates or replaces the custom theme named by the path.
func (h *ThemeHandler) Save(c *gin.Context) {
	var theme domain.Theme
	if err := c.ShouldBindJSON(&theme); err != nil {
		badRequest(c, err)
		return
	}
	theme.Key = c.Param("key")
	if err := theme.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.svc.SaveCustom(c.Request.Context(), theme)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *ThemeHandler) Remove(c *gin.Context) {
	if err := h.svc.RemoveCustom(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ThemeHandler) Apply(c *gin.Context) {
	user, err := h.svc.Change(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
