package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"album-studio/internal/logger"
	"album-studio/internal/middleware"
	"album-studio/internal/salary"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Salary(c *gin.Context) {
	now := h.now()
	search := strings.TrimSpace(c.Query("q"))

	month, err := salary.ParseMonth(c.Query("month"), now)
	if err != nil {
		month, _ = salary.ParseMonth("", now)
	}

	records, ok := h.salaryRecords(c, month)
	if !ok {
		return
	}
	records = salary.Search(records, search)

	render(c, http.StatusOK, "salary.html", gin.H{
		"Records": records,
		"Totals":  salary.Summarize(records),
		"Month":   month.Format("2006-01"),
		"Search":  search,
	})
}

// ExportSalary отдаёт ведомость за месяц JSON-файлом.
func (h *Handlers) ExportSalary(c *gin.Context) {
	now := h.now()
	month, err := salary.ParseMonth(c.Query("month"), now)
	if err != nil {
		c.String(http.StatusBadRequest, "Некорректный месяц")
		return
	}

	records, ok := h.salaryRecords(c, month)
	if !ok {
		return
	}
	records = salary.Search(records, strings.TrimSpace(c.Query("q")))

	data, err := salary.ExportJSON(records, month, now)
	if err != nil {
		logger.Errorf("salary export: %v", err)
		c.String(http.StatusInternalServerError, "Ошибка выгрузки")
		return
	}

	user, _ := middleware.CurrentUser(c)
	h.audit.Record(&user, "salary", month.Format("2006-01"), "export", fmt.Sprintf("Выгружено записей: %d", len(records)))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="salary-%s.json"`, month.Format("2006-01")))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *Handlers) salaryRecords(c *gin.Context, month time.Time) ([]salary.Record, bool) {
	users, err := h.registry.List(c.Request.Context())
	if err != nil {
		logger.Errorf("salary: %v", err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки сотрудников")
		return nil, false
	}
	return salary.Records(users, month), true
}
