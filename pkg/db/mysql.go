package db

import (
	"log"

	"redddate/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectMySQL: MySQL 연결을 설정하고 반환
func ConnectMySQL(cfg config.MySQLConfig) (*gorm.DB, error) {
	dsn := MySQLDSN(cfg)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("❌ MySQL 연결 실패: %v", err)
		return nil, err
	}

	log.Println("✅ MySQL 연결 성공!")
	return db, nil
}
