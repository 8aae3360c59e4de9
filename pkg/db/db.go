package db

import (
	"log"

	"redddate/pkg/models"

	"gorm.io/gorm"
)

// 전체 테이블 마이그레이션
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Printf("❌ Failed to migrate tables: %v", err)
		return err
	}
	log.Println("✅ Tables users, profiles, subreddits, subscriptions, flags, reports migrated or already exist.")
	return nil
}
