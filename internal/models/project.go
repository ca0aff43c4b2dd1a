package models

import "time"

type AlbumType string
type ProjectStatus string

const (
	AlbumWedding    AlbumType = "Свадебный альбом"
	AlbumGraduation AlbumType = "Выпускной альбом"
	AlbumKids       AlbumType = "Детский альбом"
	AlbumCorporate  AlbumType = "Корпоративный альбом"
	AlbumFamily     AlbumType = "Семейный альбом"
	AlbumPortrait   AlbumType = "Портретная съемка"

	StatusPlanning   ProjectStatus = "planning"
	StatusInProgress ProjectStatus = "in-progress"
	StatusReview     ProjectStatus = "review"
	StatusCompleted  ProjectStatus = "completed"
)

var AlbumTypes = []AlbumType{
	AlbumWedding,
	AlbumGraduation,
	AlbumKids,
	AlbumCorporate,
	AlbumFamily,
	AlbumPortrait,
}

var ProjectStatuses = []ProjectStatus{
	StatusPlanning,
	StatusInProgress,
	StatusReview,
	StatusCompleted,
}

func (a AlbumType) Valid() bool {
	switch a {
	case AlbumWedding, AlbumGraduation, AlbumKids, AlbumCorporate, AlbumFamily, AlbumPortrait:
		return true
	}
	return false
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

func (s ProjectStatus) Label() string {
	switch s {
	case StatusPlanning:
		return "Планирование"
	case StatusInProgress:
		return "В работе"
	case StatusReview:
		return "На проверке"
	case StatusCompleted:
		return "Завершен"
	}
	return string(s)
}

type Project struct {
	ID          string        `gorm:"primaryKey;size:36"`
	Title       string        `gorm:"size:255;not null"`
	AlbumType   AlbumType     `gorm:"size:100;not null"`
	Description string        `gorm:"type:text"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null"`

	// ссылки на User.ID, пустая строка, если никто не назначен
	ManagerID      string `gorm:"size:36"`
	PhotographerID string `gorm:"size:36"`
	DesignerID     string `gorm:"size:36"`

	Deadline     time.Time
	PhotosCount  int
	DesignsCount int
	Files        []string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssignedTo: участвует ли пользователь в проекте в какой-либо роли.
func (p Project) AssignedTo(userID string) bool {
	if userID == "" {
		return false
	}
	return p.ManagerID == userID || p.PhotographerID == userID || p.DesignerID == userID
}
