package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID string `gorm:"size:36"`
	// имя на момент действия: пользователь мог быть удалён позже
	UserName string `gorm:"size:255"`

	Entity   string `gorm:"size:50;not null"` // "user", "project"
	EntityID string `gorm:"size:36"`
	Action   string `gorm:"size:50;not null"` // "create", "update", "delete", "status_change"
	Details  string `gorm:"type:text"`
}
