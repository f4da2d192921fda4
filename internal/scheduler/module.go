package scheduler

import (
	"context"

	"github.com/go-core-fx/logger"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/syncer"
	"github.com/pullgit/pullgit/internal/synclog"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"scheduler",
		logger.WithNamedLogger("scheduler"),
		fx.Provide(
			func(
				config Config,
				repos *repositories.Service,
				executor *syncer.Service,
				journal *synclog.Log,
				logger *zap.Logger,
			) *Service {
				return NewService(config, repos, executor, journal, logger)
			},
		),
		fx.Invoke(func(svc *Service, logger *zap.Logger, lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					if err := svc.Start(ctx); err != nil {
						// A single bad repository must not keep the daemon down.
						logger.Error("scheduler started with errors", zap.Error(err))
					}
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return svc.Stop(ctx)
				},
			})
		}),
	)
}
