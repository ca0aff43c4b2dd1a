package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"album-studio/internal/logger"
	"album-studio/internal/middleware"
	"album-studio/internal/models"
	"album-studio/internal/projects"
	"album-studio/internal/staging"

	"github.com/gin-gonic/gin"
)

var uploadViews = map[string]string{
	"upload":    "Загрузка файлов",
	"gallery":   "Галерея",
	"design":    "Дизайн",
	"templates": "Шаблоны",
}

func (h *Handlers) UploadPage(c *gin.Context) {
	h.renderUpload(c, http.StatusOK, c.DefaultQuery("view", "upload"), "")
}

func (h *Handlers) renderUpload(c *gin.Context, status int, view, errMsg string) {
	user, _ := middleware.CurrentUser(c)

	title, ok := uploadViews[view]
	if !ok {
		view, title = "upload", uploadViews["upload"]
	}

	list, err := h.projects.List(c.Request.Context())
	if err != nil {
		logger.Errorf("upload page: %v", err)
	}
	render(c, status, "upload.html", gin.H{
		"View":     view,
		"Title":    title,
		"Projects": projects.Filter(list, user, projects.Query{}),
		"Files":    h.stager.List(user.ID),
		"error":    errMsg,
	})
}

// uploadError: fetch получает JSON, обычная форма перерисовывается с ошибкой.
func (h *Handlers) uploadError(c *gin.Context, status int, msg string) {
	if wantsJSON(c) {
		jsonError(c, status, msg)
		return
	}
	h.renderUpload(c, status, "upload", msg)
}

type stageResult struct {
	Files  []staging.File `json:"files"`
	Errors []string       `json:"errors"`
}

// Upload ставит присланные файлы в очередь; отвечает JSON для fetch
// или редирект для обычной формы.
func (h *Handlers) Upload(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	projectID := strings.TrimSpace(c.PostForm("project_id"))
	if projectID != "" {
		p, err := h.projects.Get(c.Request.Context(), projectID)
		if err != nil || !projects.Visible(user, *p) {
			h.uploadError(c, http.StatusBadRequest, "Проект не найден")
			return
		}
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		h.uploadError(c, http.StatusBadRequest, "Выберите файлы")
		return
	}

	res := stageResult{Files: []staging.File{}, Errors: []string{}}
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: не удалось прочитать файл", fh.Filename))
			continue
		}
		staged, err := h.stager.Stage(user.ID, projectID, fh.Filename, f)
		f.Close()
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", fh.Filename, stageErrorMessage(err)))
			continue
		}
		res.Files = append(res.Files, staged)
	}
	logger.Infof("user %s staged %d file(s), rejected %d", maskLogin(user.Login), len(res.Files), len(res.Errors))

	if !wantsJSON(c) {
		c.Redirect(http.StatusFound, "/upload")
		return
	}
	c.JSON(http.StatusOK, Msg{Success: len(res.Files) > 0, Msg: strings.Join(res.Errors, "; "), Obj: res})
}

func (h *Handlers) UploadFiles(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	jsonObj(c, h.stager.List(user.ID))
}

func (h *Handlers) RemoveUpload(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	if _, ok := h.ownedFile(c, user, id); !ok {
		return
	}
	if err := h.stager.Remove(id); err != nil {
		jsonError(c, http.StatusNotFound, "Файл не найден")
		return
	}
	if !wantsJSON(c) {
		c.Redirect(http.StatusFound, "/upload")
		return
	}
	c.JSON(http.StatusOK, Msg{Success: true, Msg: "Файл удалён"})
}

func (h *Handlers) UploadPreview(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := c.Param("id")

	if _, ok := h.ownedFile(c, user, id); !ok {
		return
	}
	data, mime, err := h.stager.Preview(id)
	if err != nil {
		c.String(http.StatusNotFound, "Превью недоступно")
		return
	}
	// превью только показывается в <img>, исполнять его браузер не должен
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Security-Policy", "sandbox; default-src 'none'")
	c.Header("Content-Disposition", "inline")
	c.Data(http.StatusOK, mime, data)
}

// ownedFile: чужие файлы видит только администратор.
func (h *Handlers) ownedFile(c *gin.Context, user models.User, id string) (staging.File, bool) {
	f, err := h.stager.Get(id)
	if err != nil || (f.Owner != user.ID && !user.IsAdmin()) {
		jsonError(c, http.StatusNotFound, "Файл не найден")
		return staging.File{}, false
	}
	return f, true
}

// AttachStaged: колбэк стейджера: готовый файл прикрепляется к проекту.
func (h *Handlers) AttachStaged(f staging.File) {
	if f.ProjectID == "" {
		return
	}
	p, err := h.projects.AttachFile(context.Background(), f.ProjectID, f.Name, f.MIME)
	if err != nil {
		logger.Warningf("attach %s to project %s: %v", f.Name, f.ProjectID, err)
		return
	}
	h.audit.Record(nil, "project", p.ID, "upload", "Загружен файл: "+f.Name)
}

func stageErrorMessage(err error) string {
	switch {
	case errors.Is(err, staging.ErrUnsupportedType):
		return "неподдерживаемый тип файла"
	case errors.Is(err, staging.ErrTooLarge):
		return "файл слишком большой"
	}
	logger.Errorf("stage: %v", err)
	return "ошибка загрузки"
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
