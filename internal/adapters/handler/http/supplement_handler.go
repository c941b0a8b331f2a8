package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type SupplementHandler struct {
	svc *services.SupplementService
}

func NewSupplementHandler(svc *services.SupplementService) *SupplementHandler {
	return &SupplementHandler{svc: svc}
}

func (h *SupplementHandler) RegisterRoutes(router *gin.RouterGroup) {
	supplements := router.Group("/supplements")
	{
		supplements.GET("", h.List)
		supplements.POST("", h.Create)
		supplements.GET("/:id", h.Get)
		supplements.PATCH("/:id", h.Update)
		supplements.DELETE("/:id", h.Delete)
		supplements.POST("/:id/toggle", h.Toggle)
	}
}

func (h *SupplementHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

func (h *SupplementHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	supplement, err := h.svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplement)
}

func (h *SupplementHandler) Create(c *gin.Context) {
	var draft domain.SupplementDraft
	if !bindValid(c, &draft) {
		return
	}
	supplement, err := h.svc.Add(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplement)
}

func (h *SupplementHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var patch domain.SupplementPatch
	if !bindValid(c, &patch) {
		return
	}
	supplement, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplement)
}

func (h *SupplementHandler) Delete(c *gin.Context) {
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

func (h *SupplementHandler) Toggle(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	supplement, err := h.svc.ToggleCompletion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplement)
}
