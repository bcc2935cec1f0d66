package database

import (
	"github.com/rhyn0/anime-rest-api/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Show{},
	)
}
