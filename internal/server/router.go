package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"album-studio/internal/config"
	"album-studio/internal/handlers"
	"album-studio/internal/middleware"
	"album-studio/internal/models"
	"album-studio/internal/registry"
	"album-studio/internal/salary"
	"album-studio/web"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "studio_session"

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"date":     func(t time.Time) string { return t.Format("02.01.2006") },
		"datetime": func(t time.Time) string { return t.Format("02.01.2006 15:04") },
		"monthName": func(t time.Time) string {
			return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
		},
		"overdue": func(deadline time.Time, status models.ProjectStatus, now time.Time) bool {
			return status != models.StatusCompleted && deadline.Before(now)
		},
		"rub": func(v any) string {
			switch n := v.(type) {
			case int:
				return salary.FormatRub(n)
			case *int:
				if n == nil {
					return ""
				}
				return salary.FormatRub(*n)
			}
			return fmt.Sprint(v)
		},
		"levels": func() []string { return []string{"debug", "info", "warning", "error"} },
	}
}

// parseTemplates собирает встроенные шаблоны вместе с функциями.
func parseTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcMap()).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func NewRouter(cfg *config.Config, reg *registry.Registry, h *handlers.Handlers) (*gin.Engine, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	tpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tpl)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookie, store))
	r.Use(middleware.LoadSession(reg))

	// ГЛАВНАЯ
	r.GET("/", h.Index)

	// AUTH
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/tab/:id", handlers.OpenTab)
	auth.GET("/dashboard", h.Dashboard)

	// ПРОЕКТЫ
	auth.GET("/projects", h.ListProjects)
	auth.GET("/projects/new", h.NewProject)
	auth.POST("/projects", h.CreateProject)
	auth.POST("/projects/:id/status", h.ChangeProjectStatus)
	auth.GET("/projects/:id/history", h.ProjectHistory)

	// редактирование и удаление проектов — только админ
	admin := auth.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("/projects/:id/edit", h.EditProject)
	admin.POST("/projects/:id", h.UpdateProject)
	admin.POST("/projects/:id/delete", h.DeleteProject)

	// СОТРУДНИКИ
	admin.GET("/employees", h.ListEmployees)
	admin.GET("/employees/new", h.NewEmployee)
	admin.POST("/employees", h.CreateEmployee)
	admin.GET("/employees/:id/edit", h.EditEmployee)
	admin.POST("/employees/:id", h.UpdateEmployee)
	admin.GET("/employees/:id/delete", h.ConfirmDeleteEmployee)
	admin.POST("/employees/:id/delete", h.DeleteEmployee)
	admin.GET("/employees/:id/contact.png", h.EmployeeContact)

	// ЗАРПЛАТЫ
	admin.GET("/salary", h.Salary)
	admin.GET("/salary/export", h.ExportSalary)

	// ЗАГРУЗКА
	auth.GET("/upload", h.UploadPage)
	auth.POST("/upload", h.Upload)
	auth.GET("/upload/files", h.UploadFiles)
	auth.POST("/upload/files/:id/delete", h.RemoveUpload)
	auth.GET("/upload/files/:id/preview", h.UploadPreview)

	auth.GET("/calendar", h.Calendar)
	auth.GET("/script", h.Script)

	// АУДИТ
	admin.GET("/audit", h.Audit)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r, nil
}
