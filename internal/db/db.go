package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bookledger/library-api/internal/config"
	"github.com/bookledger/library-api/internal/log"
	"github.com/bookledger/library-api/internal/model"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
)

// ConnectWithRetry opens the gorm handle, pinging until the database is
// reachable. TranslateError is on so driver-level constraint failures
// surface as gorm sentinel errors the taxonomy understands.
func ConnectWithRetry(cfg *config.Config) *gorm.DB {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= defaultMaxAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					return db
				}
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Warn("db not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxAttempts),
			zap.Error(err),
		)
		time.Sleep(defaultDelayBetweenTry)
	}

	log.Fatal("could not connect to db", zap.Int("attempts", defaultMaxAttempts), zap.Error(err))
	return nil
}

// Migrate creates or updates the four tables. The explicit join model
// gives book_readers its composite primary key.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Reader{}, "Books", &model.BookReader{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&model.Book{}, "Readers", &model.BookReader{}); err != nil {
		return err
	}
	return db.AutoMigrate(&model.Author{}, &model.Book{}, &model.Reader{})
}
