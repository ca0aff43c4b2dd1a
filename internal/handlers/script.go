package handlers

import (
	"net/http"

	"album-studio/internal/models"
	"album-studio/internal/projects"

	"github.com/gin-gonic/gin"
)

type scriptSection struct {
	AlbumType models.AlbumType
	Steps     []string
}

func (h *Handlers) Script(c *gin.Context) {
	selected := models.AlbumType(c.Query("type"))

	sections := make([]scriptSection, 0, len(models.AlbumTypes))
	for _, t := range models.AlbumTypes {
		if selected.Valid() && t != selected {
			continue
		}
		sections = append(sections, scriptSection{AlbumType: t, Steps: projects.ShootingScript(t)})
	}

	render(c, http.StatusOK, "script.html", gin.H{
		"Sections":   sections,
		"AlbumTypes": models.AlbumTypes,
		"Selected":   string(selected),
	})
}
