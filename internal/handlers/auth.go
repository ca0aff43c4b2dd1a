package handlers

import (
	"errors"
	"net/http"
	"strings"

	"album-studio/internal/logger"
	"album-studio/internal/middleware"
	"album-studio/internal/models"
	"album-studio/internal/registry"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) Index(c *gin.Context) {
	if middleware.CurrentSession(c).IsAuthenticated() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handlers) ShowLogin(c *gin.Context) {
	if middleware.CurrentSession(c).IsAuthenticated() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"error": "", "login": ""})
}

type loginForm struct {
	Login    string `form:"login"`
	Password string `form:"password"`
}

func (h *Handlers) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Некорректные данные"})
		return
	}
	form.Login = strings.TrimSpace(form.Login)

	s := middleware.CurrentSession(c)
	if err := s.Login(c.Request.Context(), form.Login, form.Password); err != nil {
		if !errors.Is(err, registry.ErrInvalidCredentials) {
			logger.Errorf("login %s: %v", maskLogin(form.Login), err)
		}
		logger.Warningf("failed login for %s", maskLogin(form.Login))
		render(c, http.StatusUnauthorized, "login.html", gin.H{
			"error": "Неверный логин или пароль",
			"login": form.Login,
		})
		return
	}

	if err := middleware.SaveSession(c, s); err != nil {
		logger.Errorf("save session: %v", err)
	}
	logger.Infof("user %s logged in", maskLogin(form.Login))
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handlers) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"error": ""})
}

type registerForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

func (h *Handlers) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Некорректные данные"})
		return
	}

	role := models.Role(form.Role)
	if role == "" {
		role = models.RolePhotographer
	}
	// через форму регистрации админа не создать
	switch role {
	case models.RolePhotographer, models.RoleDesigner:
	default:
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Неверная роль", "form": form})
		return
	}

	email := strings.TrimSpace(form.Email)
	in := registry.UserInput{
		Login:    email,
		Email:    email,
		Password: form.Password,
		Name:     form.Name,
		Role:     role,
	}

	s := middleware.CurrentSession(c)
	user, err := s.Register(c.Request.Context(), in)
	if err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": userErrorMessage(err), "form": form})
		return
	}

	if err := middleware.SaveSession(c, s); err != nil {
		logger.Errorf("save session: %v", err)
	}
	h.audit.Record(user, "user", user.ID, "register", "Регистрация: "+user.Login)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handlers) Logout(c *gin.Context) {
	s := middleware.CurrentSession(c)
	s.Logout()
	if err := middleware.SaveSession(c, s); err != nil {
		logger.Errorf("save session: %v", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// userErrorMessage переводит ошибки реестра в текст для формы.
func userErrorMessage(err error) string {
	var ve *registry.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, registry.ErrLoginTaken):
		return "Пользователь с таким логином уже существует"
	case errors.Is(err, registry.ErrForbidden):
		return "У вас нет прав для выполнения этого действия"
	case errors.Is(err, registry.ErrUserNotFound):
		return "Сотрудник не найден"
	}
	logger.Errorf("registry: %v", err)
	return "Ошибка сохранения пользователя"
}
