package models

import "time"

type Role string

const (
	RolePhotographer Role = "photographer"
	RoleDesigner     Role = "designer"
	RoleAdmin        Role = "admin"
)

// Roles: порядок вывода в фильтрах и формах.
var Roles = []Role{RolePhotographer, RoleDesigner, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RolePhotographer, RoleDesigner, RoleAdmin:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RolePhotographer:
		return "Фотограф"
	case RoleDesigner:
		return "Дизайнер"
	case RoleAdmin:
		return "Менеджер"
	}
	return string(r)
}

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Login        string `gorm:"index;size:255;not null"` // уникальность проверяется только при регистрации
	Email        string `gorm:"size:255"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"size:255;not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`

	Department string `gorm:"size:255"`
	Position   string `gorm:"size:255"`
	Salary     *int
	Phone      string `gorm:"size:50"`
	Telegram   string `gorm:"size:100"`
	Avatar     string `gorm:"size:500"`

	CreatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasSalary: в зарплатную ведомость попадают только сотрудники с окладом.
func (u User) HasSalary() bool {
	return u.Salary != nil && *u.Salary > 0
}
