// Package db provides functions to initialize and manage the SQLite database
// holding shipper's deployment history.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB creates and configures the SQLite database at path. Use ":memory:"
// for an in-memory database. The caller runs migrations afterwards.
func InitDB(path string) (*gorm.DB, error) {
	dsn := path

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("Failed to create database directory", "dir", dir, "error", err)
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		slog.Debug("Initializing database", "path", path)
	} else {
		slog.Debug("Initializing in-memory database")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(getGormLogLevel()),
	})
	if err != nil {
		slog.Error("Failed to connect to database", "dsn", dsn, "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := "PRAGMA foreign_keys = ON;"
	if path != ":memory:" {
		pragmas += `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous  = NORMAL;`
	}

	if err := db.Exec(pragmas).Error; err != nil {
		slog.Error("Failed to configure database", "error", err)
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	return db, nil
}

// getGormLogLevel maps the application log level to a GORM log level
func getGormLogLevel() logger.LogLevel {
	l := slog.Default()

	switch {
	case l.Enabled(context.TODO(), slog.LevelDebug):
		return logger.Info // Show SQL queries only when debug logging is enabled
	case l.Enabled(context.TODO(), slog.LevelWarn):
		return logger.Warn
	case l.Enabled(context.TODO(), slog.LevelError):
		return logger.Error
	default:
		return logger.Silent
	}
}
