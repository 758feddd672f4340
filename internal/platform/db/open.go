// Package db opens and migrates the service's relational storage.
package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task_backend/internal/app/config"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
	userentity "task_backend/internal/feature/users/domain/entity"
)

// OpenDB connects to the configured database and optionally runs schema
// migrations. Connection failures against a network database are retried
// for up to 60 seconds; an unreachable database after that is fatal.
// TranslateError is enabled so repositories can match
// gorm.ErrDuplicatedKey across dialects.
func OpenDB(cfg *config.Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector(cfg), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&userentity.User{},
			&taskentity.Task{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// dialector selects the GORM driver for the configured backend.
func dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DatabaseDriver {
	case "postgres":
		return postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		return sqlite.Open(cfg.DatabaseDSN)
	default:
		log.Fatalf("unsupported database driver: %q", cfg.DatabaseDriver)
		return nil
	}
}
