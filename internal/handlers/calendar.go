package handlers

import (
	"net/http"
	"time"

	"album-studio/internal/logger"
	"album-studio/internal/middleware"
	"album-studio/internal/models"
	"album-studio/internal/projects"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Calendar(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	now := h.now()

	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if v := c.Query("month"); v != "" {
		if t, err := time.ParseInLocation("2006-01", v, now.Location()); err == nil {
			month = t
		}
	}

	list, err := h.projects.List(c.Request.Context())
	if err != nil {
		logger.Errorf("calendar: %v", err)
	}
	visible := projects.Filter(list, user, projects.Query{})

	render(c, http.StatusOK, "calendar.html", gin.H{
		"Month":    month,
		"Prev":     month.AddDate(0, -1, 0).Format("2006-01"),
		"Next":     month.AddDate(0, 1, 0).Format("2006-01"),
		"Days":     projects.Calendar(visible, month.Year(), month.Month(), now.Location()),
		"Today":    now,
		"Statuses": models.ProjectStatuses,
	})
}
