package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type CoachHandler struct {
	svc *services.CoachService
}

func NewCoachHandler(svc *services.CoachService) *CoachHandler {
	return &CoachHandler{svc: svc}
}

type askRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type speakRequest struct {
	Text string `json:"text" binding:"required"`
}

type voiceRequest struct {
	Path string `json:"path" binding:"required"`
}

func (h *CoachHandler) RegisterRoutes(router *gin.RouterGroup) {
	coach := router.Group("/coach")
	{
		coach.GET("/settings", h.Settings)
		coach.PATCH("/settings", h.UpdateSettings)
		coach.POST("/capabilities/:name/toggle", h.ToggleCapability)
		coach.POST("/ask", h.Ask)
		coach.GET("/history", h.History)
		coach.DELETE("/history", h.ClearHistory)
		coach.POST("/speak", h.Speak)
		coach.PUT("/voice", h.UploadVoice)
		coach.DELETE("/voice", h.RemoveVoice)
		coach.GET("/motivation", h.Motivation)
		coach.GET("/emergency", h.Emergency)
	}
}

func (h *CoachHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Settings())
}

func (h *CoachHandler) UpdateSettings(c *gin.Context) {
	var patch domain.CoachSettingsPatch
	if !bindValid(c, &patch) {
		return
	}
	settings, err := h.svc.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *CoachHandler) ToggleCapability(c *gin.Context) {
	settings, err := h.svc.ToggleCapability(c.Request.Context(), domain.Capability(c.Param("name")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *CoachHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	answer, err := h.svc.Ask(c.Request.Context(), req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (h *CoachHandler) History(c *gin.Context) {
	history := h.svc.History()
	if history == nil {
		history = []domain.Message{}
	}
	c.JSON(http.StatusOK, history)
}

func (h *CoachHandler) ClearHistory(c *gin.Context) {
	h.svc.ClearConversation()
	c.Status(http.StatusNoContent)
}

func (h *CoachHandler) Speak(c *gin.Context) {
	var req speakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.svc.Speak(c.Request.Context(), req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *CoachHandler) UploadVoice(c *gin.Context) {
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uploaded, err := h.svc.UploadCustomVoice(c.Request.Context(), req.Path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploaded": uploaded})
}

func (h *CoachHandler) RemoveVoice(c *gin.Context) {
	if err := h.svc.RemoveCustomVoice(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CoachHandler) Motivation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.svc.MotivationalMessage()})
}

func (h *CoachHandler) Emergency(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.svc.EmergencySupport()})
}
