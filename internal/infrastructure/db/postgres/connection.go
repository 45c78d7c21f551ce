package postgres

import (
	driver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and migrates the users table. TranslateError
// turns constraint violations into gorm.ErrDuplicatedKey, which Create
// relies on for duplicate detection.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(driver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&UserModel{}); err != nil {
		return nil, err
	}

	return db, nil
}
