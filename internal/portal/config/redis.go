package config

import (
	"fmt"
	"time"

	"campusportal/pkg/db/redis"
)

// RedisConfig представляет конфигурацию хранилища сессий.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"PORTAL_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"PORTAL_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"PORTAL_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"PORTAL_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"PORTAL_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"PORTAL_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"PORTAL_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"PORTAL_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"PORTAL_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"PORTAL_REDIS_IDLE_TIMEOUT" env-default:"5m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ToClientConfig переводит секцию в настройки общего клиента.
func (c *RedisConfig) ToClientConfig() *redis.Config {
	return &redis.Config{
		Host:            c.Host,
		Port:            c.Port,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdle:         c.MinIdle,
		DialTimeout:     c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ConnMaxIdleTime: c.IdleTimeout,
	}
}
