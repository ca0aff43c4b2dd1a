package salary

import (
	"fmt"
	"time"

	"album-studio/internal/filter"
	"album-studio/internal/models"

	"github.com/goccy/go-json"
)

const noDepartment = "Не указан"

type Record struct {
	EmployeeID   string      `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	Role         models.Role `json:"role"`
	RoleLabel    string      `json:"roleLabel"`
	Department   string      `json:"department"`
	Salary       int         `json:"salary"`
	PaymentDate  string      `json:"paymentDate"`

	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Telegram string `json:"telegram,omitempty"`
}

// Records: ведомость за месяц: только сотрудники с окладом, выплата 1-го числа.
func Records(users []models.User, month time.Time) []Record {
	paymentDate := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	out := make([]Record, 0, len(users))
	for _, u := range users {
		if !u.HasSalary() {
			continue
		}
		dept := u.Department
		if dept == "" {
			dept = noDepartment
		}
		out = append(out, Record{
			EmployeeID:   u.ID,
			EmployeeName: u.Name,
			Role:         u.Role,
			RoleLabel:    u.Role.Label(),
			Department:   dept,
			Salary:       *u.Salary,
			PaymentDate:  paymentDate,
			Email:        u.Email,
			Phone:        u.Phone,
			Telegram:     u.Telegram,
		})
	}
	return out
}

// Search ищет по имени и отделу.
func Search(records []Record, term string) []Record {
	return filter.Apply(records, func(r Record) bool {
		return filter.MatchesSearch(term, r.EmployeeName, "\n", r.Department)
	})
}

type Totals struct {
	Count   int `json:"count"`
	Total   int `json:"total"`
	Average int `json:"average"`
	Max     int `json:"max"`
}

func Summarize(records []Record) Totals {
	var t Totals
	for _, r := range records {
		t.Count++
		t.Total += r.Salary
		if r.Salary > t.Max {
			t.Max = r.Salary
		}
	}
	if t.Count > 0 {
		t.Average = t.Total / t.Count
	}
	return t
}

type Report struct {
	Month       string   `json:"month"`
	GeneratedAt string   `json:"generatedAt"`
	Totals      Totals   `json:"totals"`
	Records     []Record `json:"records"`
}

// ExportJSON сериализует отчет для выгрузки.
func ExportJSON(records []Record, month, now time.Time) ([]byte, error) {
	report := Report{
		Month:       month.Format("2006-01"),
		GeneratedAt: now.Format(time.RFC3339),
		Totals:      Summarize(records),
		Records:     records,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export salary report: %w", err)
	}
	return data, nil
}

// ParseMonth разбирает значение <input type="month">; пустая строка означает текущий месяц.
func ParseMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", value, err)
	}
	return t, nil
}

// FormatRub: сумма с разделением разрядов пробелом: 140000 -> "140 000".
func FormatRub(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, s[i])
	}
	return sign + string(out)
}
