package database

import (
	"fmt"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/config"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/logger"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection opens the connection pool and migrates the schema
func NewConnection(cfg config.DBConfig) (*gorm.DB, error) {
	log := logger.Get("db")
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductVariant{},
		&model.StockMovement{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.Stock{},
		&model.StockVariant{},
		&model.Return{},
		&model.Business{},
		&model.WhatsappNotification{},
		&model.WhatsappMessage{},
		&model.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
