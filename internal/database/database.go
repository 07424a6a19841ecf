package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adhub/adhub/backend/config"
	"github.com/adhub/adhub/backend/internal/logging"
)

// DB is the gorm handle plus the pool underneath it.
type DB struct {
	*gorm.DB
	sql *sql.DB
}

// New opens a lib/pq pool, checks it and hands it to gorm.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*DB, error) {
	logger.Info("connecting to database", "host", cfg.DBHost, "port", cfg.DBPort, "user", cfg.DBUser, "name", cfg.DBName)

	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	level := gormlogger.Warn
	if cfg.Env == config.Development {
		level = gormlogger.Info
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error opening gorm: %w", err)
	}

	logger.Info("connected to database")
	return &DB{DB: gdb, sql: sqlDB}, nil
}

// SQL returns the underlying pool.
func (db *DB) SQL() *sql.DB {
	return db.sql
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.sql.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.sql.Close()
}
