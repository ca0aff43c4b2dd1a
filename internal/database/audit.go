package database

import (
	"album-studio/internal/logger"
	"album-studio/internal/models"

	"gorm.io/gorm"
)

// Auditor пишет журнал действий в ту же in-memory базу.
type Auditor struct {
	db *gorm.DB
}

func NewAuditor(db *gorm.DB) *Auditor {
	return &Auditor{db: db}
}

// Record не возвращает ошибку: журнал не должен ломать основное действие.
func (a *Auditor) Record(actor *models.User, entity, entityID, action, details string) {
	if a == nil || a.db == nil {
		return
	}
	record := models.AuditLog{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if actor != nil {
		record.UserID = actor.ID
		record.UserName = actor.Name
	}
	if err := a.db.Create(&record).Error; err != nil {
		logger.Warningf("audit %s/%s %s: %v", entity, entityID, action, err)
	}
}

func (a *Auditor) Recent(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := a.db.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error
	return logs, err
}

func (a *Auditor) ForEntity(entity, entityID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := a.db.Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at asc, id asc").
		Find(&logs).Error
	return logs, err
}
