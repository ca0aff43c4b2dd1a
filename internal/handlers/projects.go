package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"album-studio/internal/logger"
	"album-studio/internal/middleware"
	"album-studio/internal/models"
	"album-studio/internal/projects"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type projectRow struct {
	models.Project
	Next []models.ProjectStatus
}

func (h *Handlers) ListProjects(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	q := projects.Query{
		Search: strings.TrimSpace(c.Query("q")),
		Status: c.DefaultQuery("status", "all"),
	}

	list, err := h.projects.List(ctx)
	if err != nil {
		logger.Errorf("list projects: %v", err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки проектов")
		return
	}

	filtered := projects.Filter(list, user, q)
	rows := make([]projectRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, projectRow{Project: p, Next: projects.NextStatuses(user, p)})
	}

	render(c, http.StatusOK, "projects.html", gin.H{
		"Projects": rows,
		"Query":    q,
		"Statuses": models.ProjectStatuses,
		"Names":    h.userNames(c),
		"Now":      h.now(),
	})
}

func (h *Handlers) NewProject(c *gin.Context) {
	h.renderProjectForm(c, http.StatusOK, nil, projectForm{}, "")
}

func (h *Handlers) CreateProject(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	form := bindProjectForm(c)
	in, err := form.input()
	if err == nil {
		var p *models.Project
		p, err = h.projects.Create(c.Request.Context(), in)
		if err == nil {
			h.audit.Record(&user, "project", p.ID, "create", "Создан проект: "+p.Title)
			c.Redirect(http.StatusFound, "/projects")
			return
		}
	}
	h.renderProjectForm(c, http.StatusBadRequest, nil, form, projectErrorMessage(err))
}

func (h *Handlers) EditProject(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.projectNotFound(c, err)
		return
	}
	h.renderProjectForm(c, http.StatusOK, p, formFromProject(*p), "")
}

func (h *Handlers) UpdateProject(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	current, err := h.projects.Get(ctx, c.Param("id"))
	if err != nil {
		h.projectNotFound(c, err)
		return
	}

	form := bindProjectForm(c)
	in, err := form.input()
	if err == nil {
		var p *models.Project
		p, err = h.projects.Update(ctx, current.ID, in)
		if err == nil {
			h.audit.Record(&user, "project", p.ID, "update", "Изменён проект: "+p.Title)
			c.Redirect(http.StatusFound, "/projects")
			return
		}
	}
	h.renderProjectForm(c, http.StatusBadRequest, current, form, projectErrorMessage(err))
}

func (h *Handlers) ChangeProjectStatus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	next := models.ProjectStatus(c.PostForm("status"))

	p, err := h.projects.ChangeStatus(c.Request.Context(), user, c.Param("id"), next)
	switch {
	case err == nil:
		h.audit.Record(&user, "project", p.ID, "status", "Статус: "+p.Status.Label())
		c.Redirect(http.StatusFound, "/projects")
	case errors.Is(err, projects.ErrProjectNotFound):
		h.projectNotFound(c, err)
	case errors.Is(err, projects.ErrStatusChange):
		c.String(http.StatusForbidden, "Недостаточно прав для смены статуса")
	case errors.Is(err, projects.ErrValidation):
		c.String(http.StatusBadRequest, projectErrorMessage(err))
	default:
		logger.Errorf("change status: %v", err)
		c.String(http.StatusInternalServerError, "Ошибка смены статуса")
	}
}

func (h *Handlers) DeleteProject(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	p, err := h.projects.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.projectNotFound(c, err)
		return
	}
	h.audit.Record(&user, "project", p.ID, "delete", "Удалён проект: "+p.Title)
	c.Redirect(http.StatusFound, "/projects")
}

func (h *Handlers) ProjectHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.projectNotFound(c, err)
		return
	}
	if !projects.Visible(user, *p) {
		c.String(http.StatusForbidden, "Доступ запрещен")
		return
	}

	logs, err := h.audit.ForEntity("project", p.ID)
	if err != nil {
		logger.Errorf("project history %s: %v", p.ID, err)
	}
	render(c, http.StatusOK, "project_history.html", gin.H{
		"Project": p,
		"Logs":    logs,
		"Names":   h.userNames(c),
	})
}

type projectForm struct {
	Title          string
	AlbumType      string
	Description    string
	ManagerID      string
	PhotographerID string
	DesignerID     string
	Deadline       string
}

func bindProjectForm(c *gin.Context) projectForm {
	return projectForm{
		Title:          strings.TrimSpace(c.PostForm("title")),
		AlbumType:      strings.TrimSpace(c.PostForm("album_type")),
		Description:    strings.TrimSpace(c.PostForm("description")),
		ManagerID:      strings.TrimSpace(c.PostForm("manager_id")),
		PhotographerID: strings.TrimSpace(c.PostForm("photographer_id")),
		DesignerID:     strings.TrimSpace(c.PostForm("designer_id")),
		Deadline:       strings.TrimSpace(c.PostForm("deadline")),
	}
}

func formFromProject(p models.Project) projectForm {
	return projectForm{
		Title:          p.Title,
		AlbumType:      string(p.AlbumType),
		Description:    p.Description,
		ManagerID:      p.ManagerID,
		PhotographerID: p.PhotographerID,
		DesignerID:     p.DesignerID,
		Deadline:       p.Deadline.Format(dateLayout),
	}
}

func (f projectForm) input() (projects.Input, error) {
	in := projects.Input{
		Title:          f.Title,
		AlbumType:      models.AlbumType(f.AlbumType),
		Description:    f.Description,
		ManagerID:      f.ManagerID,
		PhotographerID: f.PhotographerID,
		DesignerID:     f.DesignerID,
	}
	if f.Deadline != "" {
		d, err := time.ParseInLocation(dateLayout, f.Deadline, time.Local)
		if err != nil {
			return in, &projects.ValidationError{Field: "deadline", Message: "Некорректная дата"}
		}
		in.Deadline = d
	}
	return in, nil
}

func (h *Handlers) renderProjectForm(c *gin.Context, status int, p *models.Project, form projectForm, errMsg string) {
	ctx := c.Request.Context()
	team := gin.H{}
	for _, role := range models.Roles {
		users, err := h.registry.ListByRole(ctx, role)
		if err != nil {
			logger.Errorf("list %s: %v", role, err)
		}
		team[string(role)] = users
	}

	action := "/projects"
	if p != nil {
		action = fmt.Sprintf("/projects/%s", p.ID)
	}
	render(c, status, "project_form.html", gin.H{
		"Project":    p,
		"Form":       form,
		"Action":     action,
		"AlbumTypes": models.AlbumTypes,
		"Team":       team,
		"error":      errMsg,
	})
}

func (h *Handlers) projectNotFound(c *gin.Context, err error) {
	if errors.Is(err, projects.ErrProjectNotFound) {
		c.String(http.StatusNotFound, "Проект не найден")
		return
	}
	logger.Errorf("project: %v", err)
	c.String(http.StatusInternalServerError, "Ошибка загрузки проекта")
}

// userNames: id сотрудника -> имя для таблиц.
func (h *Handlers) userNames(c *gin.Context) map[string]string {
	users, err := h.registry.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list users: %v", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

func projectErrorMessage(err error) string {
	var ve *projects.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, projects.ErrProjectNotFound):
		return "Проект не найден"
	}
	logger.Errorf("projects: %v", err)
	return "Ошибка сохранения проекта"
}
