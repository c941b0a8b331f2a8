package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type AddictionHandler struct {
	svc *services.AddictionService
}

func NewAddictionHandler(svc *services.AddictionService) *AddictionHandler {
	return &AddictionHandler{svc: svc}
}

type labelRequest struct {
	Label string `json:"label" binding:"required"`
}

func (h *AddictionHandler) RegisterRoutes(router *gin.RouterGroup) {
	addictions := router.Group("/addictions")
	{
		addictions.GET("", h.List)
		addictions.POST("", h.Create)
		addictions.GET("/tips", h.Tips)
		addictions.GET("/stats", h.Stats)
		addictions.GET("/:id", h.Get)
		addictions.PATCH("/:id", h.Update)
		addictions.DELETE("/:id", h.Delete)
		addictions.POST("/:id/relapse", h.Relapse)
		addictions.POST("/:id/sober-day", h.SoberDay)
		addictions.POST("/:id/triggers", h.AddTrigger)
		addictions.DELETE("/:id/triggers/:label", h.RemoveTrigger)
		addictions.POST("/:id/strategies", h.AddStrategy)
		addictions.DELETE("/:id/strategies/:label", h.RemoveStrategy)
	}
}

// List accepts ?type= and ?active=true filters.
func (h *AddictionHandler) List(c *gin.Context) {
	list := h.svc.List()
	if c.Query("active") == "true" {
		list = domain.ActiveAddictions(list)
	}
	if t := c.Query("type"); t != "" {
		addictionType := domain.AddictionType(t)
		if !addictionType.Valid() {
			badRequest(c, domain.ErrInvalidAddictionType)
			return
		}
		list = domain.AddictionsByType(list, addictionType)
	}
	if list == nil {
		list = []domain.Addiction{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *AddictionHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AddictionHandler) Create(c *gin.Context) {
	var draft domain.AddictionDraft
	if !bindValid(c, &draft) {
		return
	}
	a, err := h.svc.Add(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AddictionHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var patch domain.AddictionPatch
	if !bindValid(c, &patch) {
		return
	}
	a, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AddictionHandler) Delete(c *gin.Context) {
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

func (h *AddictionHandler) Relapse(c *gin.Context) {
	h.apply(c, h.svc.RecordRelapse)
}

func (h *AddictionHandler) SoberDay(c *gin.Context) {
	h.apply(c, h.svc.IncrementSoberDay)
}

func (h *AddictionHandler) AddTrigger(c *gin.Context) {
	h.applyLabel(c, h.svc.AddTrigger)
}

func (h *AddictionHandler) RemoveTrigger(c *gin.Context) {
	h.removeLabel(c, h.svc.RemoveTrigger)
}

func (h *AddictionHandler) AddStrategy(c *gin.Context) {
	h.applyLabel(c, h.svc.AddCopingStrategy)
}

func (h *AddictionHandler) RemoveStrategy(c *gin.Context) {
	h.removeLabel(c, h.svc.RemoveCopingStrategy)
}

func (h *AddictionHandler) apply(c *gin.Context, fn func(context.Context, int) (domain.Addiction, error)) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	a, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AddictionHandler) applyLabel(c *gin.Context, fn func(context.Context, int, string) (domain.Addiction, error)) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := fn(c.Request.Context(), id, req.Label)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AddictionHandler) removeLabel(c *gin.Context, fn func(context.Context, int, string) (domain.Addiction, error)) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	a, err := fn(c.Request.Context(), id, c.Param("label"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Tips accepts ?type= and ?category= filters, each optional.
func (h *AddictionHandler) Tips(c *gin.Context) {
	category := domain.TipCategory(c.Query("category"))
	if category != "" && !category.Valid() {
		badRequest(c, domain.ErrInvalidTipCategory)
		return
	}

	var tips []domain.AddictionTip
	if t := c.Query("type"); t != "" {
		addictionType := domain.AddictionType(t)
		if !addictionType.Valid() {
			badRequest(c, domain.ErrInvalidAddictionType)
			return
		}
		tips = h.svc.TipsFor(addictionType, category)
	} else {
		tips = h.svc.TipsByCategory(category)
	}

	if tips == nil {
		tips = []domain.AddictionTip{}
	}
	c.JSON(http.StatusOK, tips)
}

func (h *AddictionHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Recovery())
}
