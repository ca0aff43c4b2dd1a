package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"album-studio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Input: поля формы создания/редактирования проекта.
type Input struct {
	Title          string
	AlbumType      models.AlbumType
	Description    string
	ManagerID      string
	PhotographerID string
	DesignerID     string
	Deadline       time.Time
}

func (in *Input) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ManagerID = strings.TrimSpace(in.ManagerID)
	in.PhotographerID = strings.TrimSpace(in.PhotographerID)
	in.DesignerID = strings.TrimSpace(in.DesignerID)
}

func (in Input) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "Введите название проекта")
	}
	if !in.AlbumType.Valid() {
		return invalid("album_type", "Выберите тип альбома")
	}
	if in.Deadline.IsZero() {
		return invalid("deadline", "Укажите дедлайн")
	}
	return nil
}

type Store struct {
	db    *gorm.DB
	now   func() time.Time
	newID func() string
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now, newID: uuid.NewString}
}

func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	var list []models.Project
	if err := s.db.WithContext(ctx).Order("created_at desc, rowid desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return list, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &p, nil
}

// Create: новый проект всегда стартует в статусе «Планирование».
func (s *Store) Create(ctx context.Context, in Input) (*models.Project, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkTeam(ctx, in); err != nil {
		return nil, err
	}

	now := s.now()
	p := &models.Project{
		ID:             s.newID(),
		Title:          in.Title,
		AlbumType:      in.AlbumType,
		Description:    in.Description,
		Status:         models.StatusPlanning,
		ManagerID:      in.ManagerID,
		PhotographerID: in.PhotographerID,
		DesignerID:     in.DesignerID,
		Deadline:       in.Deadline,
		Files:          []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id string, in Input) (*models.Project, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTeam(ctx, in); err != nil {
		return nil, err
	}

	p.Title = in.Title
	p.AlbumType = in.AlbumType
	p.Description = in.Description
	p.ManagerID = in.ManagerID
	p.PhotographerID = in.PhotographerID
	p.DesignerID = in.DesignerID
	p.Deadline = in.Deadline
	p.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}
	return p, nil
}

// ChangeStatus проверяет права actor по CanChangeStatus.
func (s *Store) ChangeStatus(ctx context.Context, actor models.User, id string, next models.ProjectStatus) (*models.Project, error) {
	if !next.Valid() {
		return nil, invalid("status", "Некорректный статус")
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanChangeStatus(actor, *p, next) {
		return nil, fmt.Errorf("%w: %s -> %s by %s", ErrStatusChange, p.Status, next, actor.Role)
	}

	p.Status = next
	p.UpdatedAt = s.now()
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("change status of %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{}).Error; err != nil {
		return nil, fmt.Errorf("delete project %s: %w", id, err)
	}
	return p, nil
}

// AttachFile добавляет загруженный файл: изображения считаются фотографиями,
// остальное идёт в макеты дизайна.
func (s *Store) AttachFile(ctx context.Context, id, name, mimeType string) (*models.Project, error) {
	var out *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		err := tx.Where("id = ?", id).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		if err != nil {
			return err
		}

		p.Files = append(p.Files, name)
		if strings.HasPrefix(mimeType, "image/") {
			p.PhotosCount++
		} else {
			p.DesignsCount++
		}
		p.UpdatedAt = s.now()
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		out = &p
		return nil
	})
	if errors.Is(err, ErrProjectNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("attach file to %s: %w", id, err)
	}
	return out, nil
}

// Unassign снимает удалённого сотрудника со всех проектов.
func (s *Store) Unassign(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	for _, col := range []string{"manager_id", "photographer_id", "designer_id"} {
		err := s.db.WithContext(ctx).Model(&models.Project{}).
			Where(col+" = ?", userID).
			Update(col, "").Error
		if err != nil {
			return fmt.Errorf("unassign %s from %s: %w", userID, col, err)
		}
	}
	return nil
}

// checkTeam: назначенные люди должны существовать и иметь подходящую роль.
func (s *Store) checkTeam(ctx context.Context, in Input) error {
	slots := []struct {
		field string
		id    string
		role  models.Role
		msg   string
	}{
		{"manager_id", in.ManagerID, models.RoleAdmin, "Менеджер не найден"},
		{"photographer_id", in.PhotographerID, models.RolePhotographer, "Фотограф не найден"},
		{"designer_id", in.DesignerID, models.RoleDesigner, "Дизайнер не найден"},
	}
	for _, slot := range slots {
		if slot.id == "" {
			continue
		}
		var count int64
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND role = ?", slot.id, string(slot.role)).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check %s: %w", slot.field, err)
		}
		if count == 0 {
			return invalid(slot.field, slot.msg)
		}
	}
	return nil
}
