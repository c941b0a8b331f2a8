package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type MealHandler struct {
	svc *services.MealService
}

func NewMealHandler(svc *services.MealService) *MealHandler {
	return &MealHandler{svc: svc}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.List)
		meals.POST("", h.Create)
		meals.GET("/:id", h.Get)
		meals.PATCH("/:id", h.Update)
		meals.DELETE("/:id", h.Delete)
		meals.POST("/:id/toggle", h.Toggle)
	}
}

// List accepts an optional ?date=YYYY-MM-DD filter.
func (h *MealHandler) List(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		c.JSON(http.StatusOK, h.svc.ForDate(date))
		return
	}
	c.JSON(http.StatusOK, h.svc.List())
}

func (h *MealHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	meal, err := h.svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) Create(c *gin.Context) {
	var draft domain.MealDraft
	if !bindValid(c, &draft) {
		return
	}
	meal, err := h.svc.Add(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var patch domain.MealPatch
	if !bindValid(c, &patch) {
		return
	}
	meal, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealHandler) Toggle(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	meal, err := h.svc.ToggleCompletion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}
