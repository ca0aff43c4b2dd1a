package handlers

import (
	"net/http"

	"album-studio/internal/logger"
	"album-studio/internal/middleware"
	"album-studio/internal/models"
	"album-studio/internal/projects"

	"github.com/gin-gonic/gin"
)

const upcomingLimit = 5

func (h *Handlers) Dashboard(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	list, err := h.projects.List(ctx)
	if err != nil {
		logger.Errorf("dashboard: %v", err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки проектов")
		return
	}
	visible := projects.Filter(list, user, projects.Query{})
	summary := projects.Summarize(visible, h.now(), upcomingLimit)

	counts, err := h.registry.CountByRole(ctx)
	if err != nil {
		logger.Errorf("dashboard: %v", err)
		counts = map[models.Role]int{}
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Summary":    summary,
		"Statuses":   models.ProjectStatuses,
		"Roles":      models.Roles,
		"RoleCounts": counts,
		"Now":        h.now(),
	})
}
