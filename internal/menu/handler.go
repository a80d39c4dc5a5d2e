package menu

import (
	"errors"
	"net/http"
	"time"

	"menuboard/internal/core"
	"menuboard/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

type PublicHandler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func NewPublicHandler(service *Service) *PublicHandler {
	return &PublicHandler{service: service}
}

// --------------------------------------------------
// GET /public/venues/:slug/menus
// --------------------------------------------------
func (h *PublicHandler) Menus(c *gin.Context) {
	page, err := h.service.PublicMenus(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	if page.Menus == nil {
		page.Menus = []Menu{}
	}

	c.JSON(http.StatusOK, page)
}

// --------------------------------------------------
// GET /public/venues/:slug/menus/current
// --------------------------------------------------
func (h *PublicHandler) Current(c *gin.Context) {
	m, active, err := h.service.PrimaryMenu(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"menu":            m,
		"active_schedule": active,
	})
}

// --------------------------------------------------
// POST /venues/:venue_id/menus
// --------------------------------------------------
func (h *Handler) CreateMenu(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.CreateMenu(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("venue_id"),
		req.Name,
		req.SortOrder,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// --------------------------------------------------
// PATCH /menus/:id
// --------------------------------------------------
func (h *Handler) UpdateMenu(c *gin.Context) {
	var req MenuUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.service.UpdateMenu(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// GET /menus/:id/visibility?at=2024-06-03T12:00:00Z
// --------------------------------------------------
func (h *Handler) Visibility(c *gin.Context) {
	var at *time.Time
	if raw := c.Query("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at must be RFC3339"})
			return
		}
		at = &t
	}

	v, err := h.service.Visibility(c.Request.Context(), c.GetString("userID"), c.Param("id"), at)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

// --------------------------------------------------
// Schedules
// --------------------------------------------------
func (h *Handler) ListSchedules(c *gin.Context) {
	list, err := h.service.ListSchedules(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []schedule.Schedule{}
	}

	c.JSON(http.StatusOK, list)
}

// scheduleRequest is the body of schedule writes. An omitted is_active
// means the schedule is on, matching the column default.
type scheduleRequest struct {
	Name       string        `json:"name"`
	Type       schedule.Type `json:"schedule_type"`
	StartTime  *string       `json:"start_time"`
	EndTime    *string       `json:"end_time"`
	DaysOfWeek []int         `json:"days_of_week"`
	StartDate  *string       `json:"start_date"`
	EndDate    *string       `json:"end_date"`
	Priority   int           `json:"priority"`
	IsActive   *bool         `json:"is_active"`
}

func (r scheduleRequest) toSchedule() schedule.Schedule {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return schedule.Schedule{
		Name:       r.Name,
		Type:       r.Type,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		DaysOfWeek: r.DaysOfWeek,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Priority:   r.Priority,
		IsActive:   active,
	}
}

func (h *Handler) AddSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sc, err := h.service.AddSchedule(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.toSchedule())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sc)
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sc, err := h.service.UpdateSchedule(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
		c.Param("schedule_id"),
		req.toSchedule(),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sc)
}

func (h *Handler) RemoveSchedule(c *gin.Context) {
	err := h.service.RemoveSchedule(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
		c.Param("schedule_id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, ErrNoVisibleMenu):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, schedule.ErrInvalidSchedule),
		errors.Is(err, ErrMissingName),
		errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
