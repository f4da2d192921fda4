package synclog

import (
	"context"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"synclog",
		logger.WithNamedLogger("synclog"),
		fx.Provide(New),
		fx.Invoke(func(log *Log, logger *zap.Logger, lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("sync log opened", zap.String("path", log.Path()))
					return nil
				},
				OnStop: func(_ context.Context) error {
					return log.Close()
				},
			})
		}),
	)
}
