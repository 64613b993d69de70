// Package database opens the MySQL and Redis connections.
package database

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"gramhealth-go/pkg/log"
)

var DB *gorm.DB

// InitMySQL connects to MySQL, sizes the pool and migrates the given models.
// Unique-key violations surface as gorm.ErrDuplicatedKey.
func InitMySQL(dsn string, models ...interface{}) {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if len(models) > 0 {
		if err := DB.AutoMigrate(models...); err != nil {
			log.Fatal("failed to migrate database", err)
		}
	}
	log.Info("MySQL database connected successfully")
}
