package database

import "residence/server/internal/models"

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(&models.Booking{})
}
