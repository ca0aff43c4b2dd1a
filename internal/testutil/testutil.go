package testutil

import (
	"testing"

	"album-studio/internal/database"
	"album-studio/internal/models"
	"album-studio/internal/registry"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Env: изолированная база с демо-сотрудниками (admin / john / jane).
type Env struct {
	DB       *gorm.DB
	Registry *registry.Registry
	Audit    *database.Auditor
}

func New(t *testing.T) *Env {
	t.Helper()

	db, err := database.Open(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.SeedStaff(db, database.DefaultStaff(), bcrypt.MinCost))

	return &Env{
		DB:       db,
		Registry: registry.New(db, registry.WithHashCost(bcrypt.MinCost)),
		Audit:    database.NewAuditor(db),
	}
}

// FakeUser: заполненная форма сотрудника со случайными данными.
func FakeUser(role models.Role) registry.UserInput {
	salary := gofakeit.Number(30000, 150000)
	return registry.UserInput{
		Login:      gofakeit.Username(),
		Email:      gofakeit.Email(),
		Password:   gofakeit.Password(true, true, true, false, false, 10),
		Name:       gofakeit.Name(),
		Role:       role,
		Department: gofakeit.JobDescriptor(),
		Position:   gofakeit.JobTitle(),
		Salary:     &salary,
		Phone:      gofakeit.Phone(),
		Telegram:   gofakeit.Username(),
	}
}
