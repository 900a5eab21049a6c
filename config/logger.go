package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the application logger. DEBUG=true switches to the development encoder.
func NewLogger() *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if GetEnvBool("DEBUG", false) {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l.With(zap.String("app", GetEnv("APP_NAME", "catalog")))
}
