package salary

import (
	"testing"
	"time"

	"album-studio/internal/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func staff() []models.User {
	return []models.User{
		{ID: "1", Name: "Администратор", Role: models.RoleAdmin, Department: "Управление"},
		{ID: "2", Name: "John Doe", Role: models.RolePhotographer, Department: "Engineering", Salary: intp(75000)},
		{ID: "3", Name: "Jane Smith", Role: models.RoleDesigner, Department: "Marketing", Salary: intp(65000), Telegram: "jane"},
		{ID: "4", Name: "Пётр", Role: models.RolePhotographer, Salary: intp(40000)},
		{ID: "5", Name: "Zero", Role: models.RoleDesigner, Salary: intp(0)},
	}
}

func TestRecords(t *testing.T) {
	month := time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC)
	recs := Records(staff(), month)

	require.Len(t, recs, 3)
	assert.Equal(t, "2", recs[0].EmployeeID)
	assert.Equal(t, "Фотограф", recs[0].RoleLabel)
	assert.Equal(t, "2024-02-01", recs[0].PaymentDate)
	assert.Equal(t, "Не указан", recs[2].Department)
	assert.Equal(t, "jane", recs[1].Telegram)
}

func TestSearch(t *testing.T) {
	recs := Records(staff(), time.Now())

	assert.Len(t, Search(recs, ""), 3)
	assert.Len(t, Search(recs, "marketing"), 1)
	assert.Len(t, Search(recs, "JOHN"), 1)
	assert.Len(t, Search(recs, "не указан"), 1)
	assert.Empty(t, Search(recs, "Администратор"))
}

func TestSummarize(t *testing.T) {
	tot := Summarize(Records(staff(), time.Now()))
	assert.Equal(t, Totals{Count: 3, Total: 180000, Average: 60000, Max: 75000}, tot)
	assert.Equal(t, Totals{}, Summarize(nil))
}

func TestExportJSON(t *testing.T) {
	month := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC)

	data, err := ExportJSON(Records(staff(), month), month, now)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "2024-02", report.Month)
	assert.Equal(t, 180000, report.Totals.Total)
	assert.Len(t, report.Records, 3)
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 0, 0, 0, time.UTC)

	m, err := ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), m)

	m, err = ParseMonth("2024-02", now)
	require.NoError(t, err)
	assert.Equal(t, time.February, m.Month())

	_, err = ParseMonth("февраль", now)
	assert.Error(t, err)
}

func TestFormatRub(t *testing.T) {
	assert.Equal(t, "0", FormatRub(0))
	assert.Equal(t, "999", FormatRub(999))
	assert.Equal(t, "75 000", FormatRub(75000))
	assert.Equal(t, "1 140 000", FormatRub(1140000))
	assert.Equal(t, "-1 000", FormatRub(-1000))
}
