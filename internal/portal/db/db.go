// Package db поднимает соединение с базой учетных записей портала.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"campusportal/internal/portal/config"
	"campusportal/pkg/db/postgres"
	"campusportal/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing portal database"
	LogDBInitialized     = "portal database initialized successfully"
	LogMigrationStarting = "starting portal database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply portal database migrations"
	ErrDBConnection = "failed to connect to portal database"
)

// DB представляет соединение с базой данных портала.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	sourceURL, err := postgres.SourceURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", sourceURL))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), sourceURL); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
