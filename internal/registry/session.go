package registry

import (
	"context"
	"errors"

	"album-studio/internal/models"
)

// Session: ссылка на текущего пользователя (или её отсутствие).
// Значение принадлежит одному запросу и не защищено от конкурентного доступа.
type Session struct {
	reg  *Registry
	user *models.User
}

func (r *Registry) NewSession() *Session {
	return &Session{reg: r}
}

// Resume восстанавливает сессию по сохранённому id. Если пользователя уже нет,
// сессия возвращается пустой.
func (r *Registry) Resume(ctx context.Context, userID string) (*Session, error) {
	s := r.NewSession()
	if userID == "" {
		return s, nil
	}
	user, err := r.Get(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	s.user = user
	return s, nil
}

// User возвращает копию текущего пользователя или nil.
func (s *Session) User() *models.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) UserID() string {
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

func (s *Session) IsAuthenticated() bool {
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	return s.user != nil && s.user.IsAdmin()
}

// Login при неудаче оставляет сессию как была.
func (s *Session) Login(ctx context.Context, login, password string) error {
	if s.reg == nil {
		return ErrNoRegistry
	}
	user, err := s.reg.Authenticate(ctx, login, password)
	if err != nil {
		return err
	}
	s.user = user
	return nil
}

func (s *Session) Register(ctx context.Context, in UserInput) (*models.User, error) {
	if s.reg == nil {
		return nil, ErrNoRegistry
	}
	user, err := s.reg.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	s.user = user
	u := *user
	return &u, nil
}

func (s *Session) Logout() {
	s.user = nil
}

// AddUser доступен только администратору.
func (s *Session) AddUser(ctx context.Context, in UserInput) (*models.User, error) {
	if !s.IsAdmin() {
		return nil, ErrForbidden
	}
	if s.reg == nil {
		return nil, ErrNoRegistry
	}
	return s.reg.AddUser(ctx, in)
}

func (s *Session) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	if s.reg == nil {
		return nil, ErrNoRegistry
	}
	user, err := s.reg.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if s.user != nil && s.user.ID == id {
		u := *user
		s.user = &u
	}
	return user, nil
}

// DeleteUser сбрасывает сессию, если удалён её собственный пользователь.
func (s *Session) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	if s.reg == nil {
		return nil, ErrNoRegistry
	}
	removed, err := s.reg.DeleteUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.user != nil && s.user.ID == id {
		s.user = nil
	}
	return removed, nil
}
