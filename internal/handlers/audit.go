package handlers

import (
	"net/http"

	"album-studio/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	auditLimit = 200
	logsLimit  = 100
)

// Audit: журнал действий и последние строки лога приложения.
func (h *Handlers) Audit(c *gin.Context) {
	entries, err := h.audit.Recent(auditLimit)
	if err != nil {
		logger.Errorf("audit: %v", err)
	}
	level := c.DefaultQuery("level", "info")

	render(c, http.StatusOK, "audit.html", gin.H{
		"Entries": entries,
		"Logs":    logger.GetLogs(logsLimit, level),
		"Level":   level,
	})
}
