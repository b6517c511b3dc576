package database

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"residence/server/internal/models"
)

type Database struct {
	db *gorm.DB
}

// NewDatabase opens a booking database. driver is "sqlite" or "postgres".
func NewDatabase(driver, dsn string) (*Database, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported bookings driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Append records a booking. Bookings are never updated or deleted.
func (d *Database) Append(ctx context.Context, b models.Booking) error {
	if err := d.db.WithContext(ctx).Create(&b).Error; err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// List returns all bookings in submission order
func (d *Database) List(ctx context.Context) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	err := d.db.WithContext(ctx).
		Order("created_at asc").
		Order("id asc").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
