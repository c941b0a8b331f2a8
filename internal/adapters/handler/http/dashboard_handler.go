package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type DashboardHandler struct {
	svc *services.StatsService
}

func NewDashboardHandler(svc *services.StatsService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Dashboard)
	router.GET("/schedule", h.Schedule)
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	date, ok := h.date(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Dashboard(date))
}

func (h *DashboardHandler) Schedule(c *gin.Context) {
	date, ok := h.date(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Schedule(date))
}

// date reads ?date=YYYY-MM-DD, defaulting to today.
func (h *DashboardHandler) date(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		return h.svc.Today(), true
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		badRequest(c, domain.ErrInvalidDateFormat)
		return "", false
	}
	return date, true
}
