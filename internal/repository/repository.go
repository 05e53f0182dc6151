package repository

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"store-it/internal/config"
	"store-it/internal/models"
)

// Open connects to Postgres, applies pool limits and runs migrations.
// TranslateError is on so a duplicate-key insert surfaces as
// gorm.ErrDuplicatedKey, which is the real enforcement point for
// username uniqueness.
func Open(cfg config.DBConf) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s connect_timeout=%d", cfg.DSN, cfg.ConnectTimeoutSeconds)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.IdleTimeoutSeconds) * time.Second)

	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Media{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
