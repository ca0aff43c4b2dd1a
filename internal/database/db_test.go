package database

import (
	"os"
	"path/filepath"
	"testing"

	"album-studio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func openTestDB(t *testing.T) *Auditor {
	t.Helper()
	db, err := Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return NewAuditor(db)
}

func TestOpenIsolated(t *testing.T) {
	a, err := Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(a) })
	b, err := Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(b) })

	require.NoError(t, SeedStaff(a, DefaultStaff(), bcrypt.MinCost))

	var countA, countB int64
	require.NoError(t, a.Model(&models.User{}).Count(&countA).Error)
	require.NoError(t, b.Model(&models.User{}).Count(&countB).Error)
	assert.Equal(t, int64(3), countA)
	assert.Zero(t, countB)
}

func TestSeedStaffHashesAndIsIdempotent(t *testing.T) {
	db, err := Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, SeedStaff(db, DefaultStaff(), bcrypt.MinCost))
	require.NoError(t, SeedStaff(db, DefaultStaff(), bcrypt.MinCost))

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 3)

	admin := users[0]
	assert.Equal(t, "1", admin.ID)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEqual(t, "admin", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")))
	assert.Nil(t, admin.Salary)

	require.NotNil(t, users[1].Salary)
	assert.Equal(t, 75000, *users[1].Salary)
}

func TestLoadStaffFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "staff.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[staff]]
id = "10"
login = "olga"
password = "secret"
name = "Ольга"
role = "designer"
salary = 50000
telegram = "olga_design"
`), 0o600))

	staff, err := LoadStaffFile(path)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, models.RoleDesigner, staff[0].Role)
	assert.Equal(t, 50000, staff[0].Salary)
	assert.Equal(t, "olga_design", staff[0].Telegram)
}

func TestLoadStaffFileRejectsBadRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[staff]]
id = "10"
login = "olga"
password = "secret"
name = "Ольга"
role = "intern"
`), 0o600))

	_, err := LoadStaffFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intern")
}

func TestAuditor(t *testing.T) {
	a := openTestDB(t)
	actor := &models.User{ID: "1", Name: "Администратор"}

	a.Record(actor, "project", "p1", "create", "Создан проект")
	a.Record(actor, "project", "p1", "status_change", "in-progress")
	a.Record(nil, "user", "7", "delete", "")

	recent, err := a.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "delete", recent[0].Action)
	assert.Empty(t, recent[0].UserID)

	history, err := a.ForEntity("project", "p1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "create", history[0].Action)
	assert.Equal(t, "Администратор", history[1].UserName)
}
