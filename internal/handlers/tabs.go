package handlers

import (
	"net/http"

	"album-studio/internal/models"

	"github.com/gin-gonic/gin"
)

type Tab struct {
	ID        string
	Title     string
	Path      string
	AdminOnly bool
}

var tabs = []Tab{
	{ID: "dashboard", Title: "Главная", Path: "/dashboard"},
	{ID: "projects", Title: "Проекты", Path: "/projects"},
	{ID: "upload", Title: "Загрузка", Path: "/upload"},
	{ID: "calendar", Title: "Календарь", Path: "/calendar"},
	{ID: "script", Title: "Сценарий", Path: "/script"},
	{ID: "employees", Title: "Сотрудники", Path: "/employees", AdminOnly: true},
	{ID: "add-employee", Title: "Добавить сотрудника", Path: "/employees/new", AdminOnly: true},
	{ID: "salary", Title: "Зарплаты", Path: "/salary", AdminOnly: true},
	{ID: "audit", Title: "Журнал", Path: "/audit", AdminOnly: true},
}

// вкладки, которые открывают экран загрузки
var tabAliases = map[string]string{
	"gallery":   "upload",
	"design":    "upload",
	"templates": "upload",
}

// ResolveTab: неизвестный идентификатор ведёт на главную.
func ResolveTab(id string) Tab {
	if alias, ok := tabAliases[id]; ok {
		id = alias
	}
	for _, t := range tabs {
		if t.ID == id {
			return t
		}
	}
	return tabs[0]
}

func navFor(u models.User) []Tab {
	out := make([]Tab, 0, len(tabs))
	for _, t := range tabs {
		if t.AdminOnly && !u.IsAdmin() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// OpenTab сохраняет вид экрана загрузки (галерея, дизайн, шаблоны) в ?view=.
func OpenTab(c *gin.Context) {
	id := c.Param("id")
	tab := ResolveTab(id)
	if _, ok := tabAliases[id]; ok {
		c.Redirect(http.StatusFound, tab.Path+"?view="+id)
		return
	}
	c.Redirect(http.StatusFound, tab.Path)
}
