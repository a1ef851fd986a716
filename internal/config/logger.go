package config

import (
	"go.uber.org/zap"
)

// InitLogger builds the zap logger for env. "production" selects the JSON
// production logger, anything else the development one.
func InitLogger(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	logger.Info("✅ Zap logger initialized", zap.String("env", env))
	return logger, nil
}
