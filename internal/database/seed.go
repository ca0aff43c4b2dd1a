package database

import (
	"fmt"
	"os"
	"time"

	"album-studio/internal/logger"
	"album-studio/internal/models"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StaffMember: запись сид-файла. Пароль хранится только до хеширования.
type StaffMember struct {
	ID         string      `toml:"id"`
	Login      string      `toml:"login"`
	Email      string      `toml:"email"`
	Password   string      `toml:"password"`
	Name       string      `toml:"name"`
	Role       models.Role `toml:"role"`
	Department string      `toml:"department"`
	Position   string      `toml:"position"`
	Salary     int         `toml:"salary"`
	Phone      string      `toml:"phone"`
	Telegram   string      `toml:"telegram"`
}

type staffFile struct {
	Staff []StaffMember `toml:"staff"`
}

// DefaultStaff: демо-аккаунты студии.
func DefaultStaff() []StaffMember {
	return []StaffMember{
		{
			ID:         "1",
			Login:      "admin",
			Email:      "admin",
			Password:   "admin",
			Name:       "Администратор",
			Role:       models.RoleAdmin,
			Department: "Управление",
			Position:   "Системный администратор",
		},
		{
			ID:         "2",
			Login:      "john@company.com",
			Email:      "john@company.com",
			Password:   "john@company.com",
			Name:       "John Doe",
			Role:       models.RolePhotographer,
			Department: "Engineering",
			Position:   "Software Developer",
			Salary:     75000,
		},
		{
			ID:         "3",
			Login:      "jane@company.com",
			Email:      "jane@company.com",
			Password:   "jane@company.com",
			Name:       "Jane Smith",
			Role:       models.RoleDesigner,
			Department: "Marketing",
			Position:   "Marketing Manager",
			Salary:     65000,
		},
	}
}

func LoadStaffFile(path string) ([]StaffMember, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read staff file: %w", err)
	}

	var f staffFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse staff file %s: %w", path, err)
	}

	for i, m := range f.Staff {
		if m.ID == "" || m.Login == "" || m.Password == "" || m.Name == "" {
			return nil, fmt.Errorf("staff file %s: entry %d: id, login, password and name are required", path, i)
		}
		if !m.Role.Valid() {
			return nil, fmt.Errorf("staff file %s: entry %d: unknown role %q", path, i, m.Role)
		}
	}
	return f.Staff, nil
}

// SeedStaff добавляет сотрудников, чьих id ещё нет в базе.
func SeedStaff(db *gorm.DB, staff []StaffMember, cost int) error {
	for _, m := range staff {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("check seed user %s: %w", m.Login, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(m.Password), cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", m.Login, err)
		}

		user := models.User{
			ID:           m.ID,
			Login:        m.Login,
			Email:        m.Email,
			PasswordHash: string(hash),
			Name:         m.Name,
			Role:         m.Role,
			Department:   m.Department,
			Position:     m.Position,
			Phone:        m.Phone,
			Telegram:     m.Telegram,
			CreatedAt:    time.Now(),
		}
		if m.Salary > 0 {
			salary := m.Salary
			user.Salary = &salary
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create seed user %s: %w", m.Login, err)
		}
		logger.Infof("seeded user: %s (role=%s)", m.Login, m.Role)
	}
	return nil
}
