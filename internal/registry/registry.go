package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"album-studio/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Registry struct {
	db    *gorm.DB
	cost  int
	now   func() time.Time
	newID func() string
}

type Option func(*Registry)

// WithHashCost задаёт стоимость bcrypt; в тестах удобно bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(r *Registry) { r.cost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func New(db *gorm.DB, opts ...Option) *Registry {
	r := &Registry{
		db:    db,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List возвращает пользователей в порядке добавления.
func (r *Registry) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at asc, rowid asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *Registry) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("name asc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users by role %s: %w", role, err)
	}
	return users, nil
}

func (r *Registry) CountByRole(ctx context.Context) (map[models.Role]int, error) {
	var rows []struct {
		Role  models.Role
		Count int
	}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	counts := make(map[models.Role]int, len(models.Roles))
	for _, role := range models.Roles {
		counts[role] = 0
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *Registry) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// Authenticate ищет пользователя с таким логином и совпадающим паролем.
// Логин уникален только по соглашению, поэтому проверяются все совпадения.
func (r *Registry) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var candidates []models.User
	err := r.db.WithContext(ctx).
		Where("login = ?", login).
		Order("created_at asc, rowid asc").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	for i := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].PasswordHash), []byte(password)) == nil {
			return &candidates[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register создаёт пользователя, если логин ещё не занят.
func (r *Registry) Register(ctx context.Context, in UserInput) (*models.User, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := r.newUser(in)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("login = ?", in.Login).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrLoginTaken
		}
		return tx.Create(user).Error
	})
	if errors.Is(err, ErrLoginTaken) {
		return nil, ErrLoginTaken
	}
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", in.Login, err)
	}
	return user, nil
}

// AddUser добавляет запись без проверки уникальности логина.
func (r *Registry) AddUser(ctx context.Context, in UserInput) (*models.User, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := r.newUser(in)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("add user %s: %w", in.Login, err)
	}
	return user, nil
}

// UpdateUser сливает в запись только переданные поля.
func (r *Registry) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	cols := patch.columns()
	if patch.Password != nil && *patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), r.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		cols["password_hash"] = string(hash)
	}

	if len(cols) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, fmt.Errorf("update user %s: %w", id, res.Error)
		}
		// RowsAffected == 0 и при отсутствии записи, и при неизменных значениях
	}
	return r.Get(ctx, id)
}

// DeleteUser удаляет запись и возвращает её последнее состояние.
func (r *Registry) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	user, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
		return nil, fmt.Errorf("delete user %s: %w", id, err)
	}
	return user, nil
}

func (r *Registry) newUser(in UserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), r.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           r.newID(),
		Login:        in.Login,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Department:   in.Department,
		Position:     in.Position,
		Phone:        in.Phone,
		Telegram:     in.Telegram,
		Avatar:       in.Avatar,
		CreatedAt:    r.now(),
	}
	if in.Salary != nil {
		salary := *in.Salary
		user.Salary = &salary
	}
	return user, nil
}
