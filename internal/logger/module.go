package logger

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
)

// Module wires zap logger for dependency injection.
var Module = fx.Options(
	fx.Provide(newLogger),
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l.Named("fx")}
	}),
)

func newLogger(cfg *config.Config) *zap.Logger {
	return New(cfg.LogMode, cfg.LogFile)
}
