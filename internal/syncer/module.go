package syncer

import (
	"github.com/go-core-fx/logger"
	"github.com/pullgit/pullgit/internal/git"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/synclog"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"syncer",
		logger.WithNamedLogger("syncer"),
		fx.Provide(
			func(
				config Config,
				gitSvc *git.Service,
				reposSvc *repositories.Service,
				journal *synclog.Log,
				logger *zap.Logger,
			) *Service {
				return NewService(config, gitSvc, gitSvc, reposSvc, journal, logger)
			},
		),
	)
}
