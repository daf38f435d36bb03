// Package config содержит конфигурацию сервиса портала.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "campusportal/pkg/config"
	"campusportal/pkg/logger"
)

// ServiceName - имя сервиса в логах и конфигурации.
const ServiceName = "portal"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "portal configuration loaded"
	ErrFailedLoadConfig = "failed to load portal configuration"
)

// Config представляет полную конфигурацию портала.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Security SecurityConfig `yaml:"security"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла path (если он есть) и переменных окружения.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("session_ttl", cfg.Session.TTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
