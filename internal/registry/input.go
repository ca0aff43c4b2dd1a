package registry

import (
	"strings"

	"album-studio/internal/models"
)

// UserInput: данные для регистрации и для добавления сотрудника администратором.
type UserInput struct {
	Login    string
	Email    string
	Password string
	Name     string
	Role     models.Role

	Department string
	Position   string
	Salary     *int
	Phone      string
	Telegram   string
	Avatar     string
}

func (in *UserInput) normalize() {
	in.Login = strings.TrimSpace(in.Login)
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Department = strings.TrimSpace(in.Department)
	in.Position = strings.TrimSpace(in.Position)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Telegram = normalizeTelegram(in.Telegram)
	in.Avatar = strings.TrimSpace(in.Avatar)
}

func (in UserInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "Введите имя")
	}
	if strings.TrimSpace(in.Login) == "" {
		return invalid("login", "Введите логин")
	}
	if in.Password == "" {
		return invalid("password", "Введите пароль")
	}
	if !in.Role.Valid() {
		return invalid("role", "Неверная роль")
	}
	if in.Salary != nil && *in.Salary < 0 {
		return invalid("salary", "Зарплата не может быть отрицательной")
	}
	return nil
}

// UserPatch: частичное обновление: nil означает «не менять».
type UserPatch struct {
	Login    *string
	Email    *string
	Password *string // пустая строка не меняет пароль
	Name     *string
	Role     *models.Role

	Department *string
	Position   *string
	Salary     *int
	// ClearSalary убирает оклад; имеет приоритет над Salary
	ClearSalary bool
	Phone       *string
	Telegram    *string
	Avatar      *string
}

func (p UserPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("name", "Введите имя")
	}
	if p.Login != nil && strings.TrimSpace(*p.Login) == "" {
		return invalid("login", "Введите логин")
	}
	if p.Role != nil && !p.Role.Valid() {
		return invalid("role", "Неверная роль")
	}
	if !p.ClearSalary && p.Salary != nil && *p.Salary < 0 {
		return invalid("salary", "Зарплата не может быть отрицательной")
	}
	return nil
}

// columns переводит патч в набор колонок для gorm Updates; хеш пароля считает вызывающий.
func (p UserPatch) columns() map[string]any {
	cols := map[string]any{}
	setString := func(col string, v *string) {
		if v != nil {
			cols[col] = strings.TrimSpace(*v)
		}
	}
	setString("login", p.Login)
	setString("email", p.Email)
	setString("name", p.Name)
	setString("department", p.Department)
	setString("position", p.Position)
	setString("phone", p.Phone)
	setString("avatar", p.Avatar)
	if p.Telegram != nil {
		cols["telegram"] = normalizeTelegram(*p.Telegram)
	}
	if p.Role != nil {
		cols["role"] = string(*p.Role)
	}
	switch {
	case p.ClearSalary:
		cols["salary"] = nil
	case p.Salary != nil:
		cols["salary"] = *p.Salary
	}
	return cols
}

// normalizeTelegram хранит ник без ведущего @.
func normalizeTelegram(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "@")
}
