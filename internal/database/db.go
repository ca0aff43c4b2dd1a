package database

import (
	"fmt"

	"album-studio/internal/logger"
	"album-studio/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open создаёт изолированную in-memory базу: у каждого вызова своё имя,
// после закрытия соединения данные пропадают.
func Open(debug bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	gormLogger := gormlogger.Discard
	if debug {
		gormLogger = gormlogger.Default
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open in-memory db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open in-memory db: %w", err)
	}
	// одно соединение живёт всё время работы процесса, иначе база исчезнет
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	// миграции
	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Debug("in-memory database ready")
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
