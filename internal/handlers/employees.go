package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"album-studio/internal/filter"
	"album-studio/internal/logger"
	"album-studio/internal/middleware"
	"album-studio/internal/models"
	"album-studio/internal/registry"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

func (h *Handlers) ListEmployees(c *gin.Context) {
	search := strings.TrimSpace(c.Query("q"))
	role := c.DefaultQuery("role", filter.All)

	users, err := h.registry.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list employees: %v", err)
		c.String(http.StatusInternalServerError, "Ошибка загрузки сотрудников")
		return
	}
	users = filter.Apply(users, func(u models.User) bool {
		return filter.MatchesSearch(search, u.Name, u.Email, u.Department) &&
			filter.MatchesCategory(role, u.Role)
	})

	render(c, http.StatusOK, "employees.html", gin.H{
		"Employees": users,
		"Search":    search,
		"Role":      role,
		"Roles":     models.Roles,
	})
}

func (h *Handlers) NewEmployee(c *gin.Context) {
	h.renderEmployeeForm(c, http.StatusOK, nil, employeeForm{Role: string(models.RolePhotographer)}, "")
}

func (h *Handlers) CreateEmployee(c *gin.Context) {
	form := bindEmployeeForm(c)

	salary, err := form.salary()
	if err != nil {
		h.renderEmployeeForm(c, http.StatusBadRequest, nil, form, userErrorMessage(err))
		return
	}
	if len(form.Password) < 4 {
		h.renderEmployeeForm(c, http.StatusBadRequest, nil, form, "Пароль должен быть не короче 4 символов")
		return
	}

	login := form.Login
	if login == "" {
		login = form.Email
	}
	in := registry.UserInput{
		Login:      login,
		Email:      form.Email,
		Password:   form.Password,
		Name:       form.Name,
		Role:       models.Role(form.Role),
		Department: form.Department,
		Position:   form.Position,
		Salary:     salary,
		Phone:      form.Phone,
		Telegram:   form.Telegram,
		Avatar:     form.Avatar,
	}

	s := middleware.CurrentSession(c)
	user, err := s.AddUser(c.Request.Context(), in)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, registry.ErrForbidden) {
			status = http.StatusForbidden
		}
		h.renderEmployeeForm(c, status, nil, form, userErrorMessage(err))
		return
	}

	h.audit.Record(s.User(), "user", user.ID, "create", "Добавлен сотрудник: "+user.Name)
	c.Redirect(http.StatusFound, "/employees")
}

func (h *Handlers) EditEmployee(c *gin.Context) {
	user, err := h.registry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.employeeNotFound(c, err)
		return
	}
	h.renderEmployeeForm(c, http.StatusOK, user, formFromUser(*user), "")
}

func (h *Handlers) UpdateEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	current, err := h.registry.Get(ctx, c.Param("id"))
	if err != nil {
		h.employeeNotFound(c, err)
		return
	}

	form := bindEmployeeForm(c)
	salary, err := form.salary()
	if err != nil {
		h.renderEmployeeForm(c, http.StatusBadRequest, current, form, userErrorMessage(err))
		return
	}
	if form.Password != "" && len(form.Password) < 4 {
		h.renderEmployeeForm(c, http.StatusBadRequest, current, form, "Пароль должен быть не короче 4 символов")
		return
	}

	role := models.Role(form.Role)
	patch := registry.UserPatch{
		Login:       &form.Login,
		Email:       &form.Email,
		Password:    &form.Password,
		Name:        &form.Name,
		Role:        &role,
		Department:  &form.Department,
		Position:    &form.Position,
		Salary:      salary,
		ClearSalary: salary == nil,
		Phone:       &form.Phone,
		Telegram:    &form.Telegram,
		Avatar:      &form.Avatar,
	}
	if form.Login == "" {
		patch.Login = nil
	}

	s := middleware.CurrentSession(c)
	user, err := s.UpdateUser(ctx, current.ID, patch)
	if err != nil {
		h.renderEmployeeForm(c, http.StatusBadRequest, current, form, userErrorMessage(err))
		return
	}
	if err := middleware.SaveSession(c, s); err != nil {
		logger.Errorf("save session: %v", err)
	}

	h.audit.Record(s.User(), "user", user.ID, "update", "Изменён сотрудник: "+user.Name)
	if !s.IsAdmin() {
		// администратор понизил сам себя
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/employees")
}

func (h *Handlers) ConfirmDeleteEmployee(c *gin.Context) {
	user, err := h.registry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.employeeNotFound(c, err)
		return
	}
	render(c, http.StatusOK, "employee_delete.html", gin.H{"Employee": user})
}

func (h *Handlers) DeleteEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	s := middleware.CurrentSession(c)
	actor := s.User()

	removed, err := s.DeleteUser(ctx, c.Param("id"))
	if err != nil {
		h.employeeNotFound(c, err)
		return
	}
	if err := h.projects.Unassign(ctx, removed.ID); err != nil {
		logger.Errorf("unassign %s: %v", removed.ID, err)
	}
	if err := middleware.SaveSession(c, s); err != nil {
		logger.Errorf("save session: %v", err)
	}

	h.audit.Record(actor, "user", removed.ID, "delete", "Удалён сотрудник: "+removed.Name)
	if !s.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/employees")
}

// EmployeeContact отдаёт QR-код со ссылкой на Telegram или почту сотрудника.
func (h *Handlers) EmployeeContact(c *gin.Context) {
	user, err := h.registry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.employeeNotFound(c, err)
		return
	}

	link := ContactLink(*user)
	if link == "" {
		c.String(http.StatusNotFound, "Контакты не указаны")
		return
	}
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		logger.Errorf("qr for %s: %v", user.ID, err)
		c.String(http.StatusInternalServerError, "Ошибка генерации QR-кода")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ContactLink: Telegram приоритетнее почты.
func ContactLink(u models.User) string {
	if u.Telegram != "" {
		return "https://t.me/" + url.PathEscape(u.Telegram)
	}
	if u.Email != "" {
		return "mailto:" + u.Email
	}
	return ""
}

type employeeForm struct {
	Login      string
	Email      string
	Password   string
	Name       string
	Role       string
	Department string
	Position   string
	Salary     string
	Phone      string
	Telegram   string
	Avatar     string
}

func bindEmployeeForm(c *gin.Context) employeeForm {
	return employeeForm{
		Login:      strings.TrimSpace(c.PostForm("login")),
		Email:      strings.TrimSpace(c.PostForm("email")),
		Password:   c.PostForm("password"),
		Name:       strings.TrimSpace(c.PostForm("name")),
		Role:       strings.TrimSpace(c.PostForm("role")),
		Department: strings.TrimSpace(c.PostForm("department")),
		Position:   strings.TrimSpace(c.PostForm("position")),
		Salary:     strings.TrimSpace(c.PostForm("salary")),
		Phone:      strings.TrimSpace(c.PostForm("phone")),
		Telegram:   strings.TrimSpace(c.PostForm("telegram")),
		Avatar:     strings.TrimSpace(c.PostForm("avatar")),
	}
}

func formFromUser(u models.User) employeeForm {
	f := employeeForm{
		Login:      u.Login,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Department: u.Department,
		Position:   u.Position,
		Phone:      u.Phone,
		Telegram:   u.Telegram,
		Avatar:     u.Avatar,
	}
	if u.Salary != nil {
		f.Salary = strconv.Itoa(*u.Salary)
	}
	return f
}

// salary: пустое поле значит, что оклада нет.
func (f employeeForm) salary() (*int, error) {
	if f.Salary == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(f.Salary, " ", ""))
	if err != nil {
		return nil, &registry.ValidationError{Field: "salary", Message: "Зарплата должна быть числом"}
	}
	return &v, nil
}

func (h *Handlers) renderEmployeeForm(c *gin.Context, status int, user *models.User, form employeeForm, errMsg string) {
	action := "/employees"
	if user != nil {
		action = "/employees/" + user.ID
	}
	render(c, status, "employee_form.html", gin.H{
		"Employee": user,
		"Form":     form,
		"Action":   action,
		"Roles":    models.Roles,
		"error":    errMsg,
	})
}

func (h *Handlers) employeeNotFound(c *gin.Context, err error) {
	if errors.Is(err, registry.ErrUserNotFound) {
		c.String(http.StatusNotFound, "Сотрудник не найден")
		return
	}
	logger.Errorf("employee: %v", err)
	c.String(http.StatusInternalServerError, "Ошибка загрузки сотрудника")
}
