package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type ReminderHandler struct {
	svc *services.ReminderService
	now func() time.Time
}

func NewReminderHandler(svc *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{svc: svc, now: time.Now}
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	reminders := router.Group("/reminders")
	{
		reminders.GET("", h.List)
		reminders.POST("", h.Create)
		reminders.POST("/check", h.Check)
		reminders.GET("/:id", h.Get)
		reminders.PATCH("/:id", h.Update)
		reminders.DELETE("/:id", h.Delete)
		reminders.POST("/:id/complete", h.Complete)
	}
}

// List accepts ?type= and ?active=true filters.
func (h *ReminderHandler) List(c *gin.Context) {
	list := h.svc.List()
	if c.Query("active") == "true" {
		list = domain.ActiveReminders(list)
	}
	if t := c.Query("type"); t != "" {
		reminderType := domain.ReminderType(t)
		if !reminderType.Valid() {
			badRequest(c, domain.ErrInvalidReminderType)
			return
		}
		list = domain.RemindersByType(list, reminderType)
	}
	if list == nil {
		list = []domain.Reminder{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReminderHandler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var draft domain.ReminderDraft
	if !bindValid(c, &draft) {
		return
	}
	r, err := h.svc.Add(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *ReminderHandler) Update(c *gin.Context) {
	var patch domain.ReminderPatch
	if !bindValid(c, &patch) {
		return
	}
	r, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) Complete(c *gin.Context) {
	r, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Check returns the reminders due now and marks them as triggered.
func (h *ReminderHandler) Check(c *gin.Context) {
	due, err := h.svc.CheckDue(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	if due == nil {
		due = []domain.Reminder{}
	}
	c.JSON(http.StatusOK, due)
}
