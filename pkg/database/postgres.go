package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the postgres database described by cfg. Driver errors are
// translated so unique violations surface as gorm.ErrDuplicatedKey.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.AppMode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// HealthCheck pings the database and runs a trivial query.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if err := Ping(ctx, db); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	var one int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

func TableExists(db *gorm.DB, table string) (bool, error) {
	if db == nil {
		return false, errors.New("database not initialized")
	}
	return db.Migrator().HasTable(table), nil
}

func GetTableCount(db *gorm.DB, table string) (int64, error) {
	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
