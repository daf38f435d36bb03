// Package config предоставляет загрузку конфигурации из файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"campusportal/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgConfigFileMissing       = "configuration file not found, reading environment only"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"
	errFailedStatConfiguration = "failed to stat configuration file"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T. Если файл path существует, значения берутся
// из него и перекрываются переменными окружения, иначе читается только окружение.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName), zap.String(attrPath, path))
	log.Info(ctx, msgLoadingConfiguration)

	var cfg T

	fromFile := path != ""
	if fromFile {
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Error(ctx, errFailedStatConfiguration, zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errFailedStatConfiguration, err)
			}
			log.Debug(ctx, msgConfigFileMissing)
			fromFile = false
		}
	}

	var err error
	if fromFile {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
