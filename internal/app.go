package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/kardianos/service"
	"github.com/pullgit/pullgit/internal/config"
	"github.com/pullgit/pullgit/internal/daemon"
	"github.com/pullgit/pullgit/internal/deployments"
	"github.com/pullgit/pullgit/internal/git"
	"github.com/pullgit/pullgit/internal/github"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/scheduler"
	"github.com/pullgit/pullgit/internal/server"
	"github.com/pullgit/pullgit/internal/syncer"
	"github.com/pullgit/pullgit/internal/synclog"
	"github.com/pullgit/pullgit/pkg/badgerfx"
	"github.com/pullgit/pullgit/pkg/openapifx"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const version = "0.1.0"

func Run() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func appOptions() fx.Option {
	return fx.Options(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		openapifx.Module(),
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: version, ReleaseID: 1} }),
		repositories.Module(),
		git.Module(),
		github.Module(),
		synclog.Module(),
		syncer.Module(),
		scheduler.Module(),
		deployments.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 PullGit daemon starting up", zap.String("version", version))
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 PullGit daemon shutting down gracefully")
					return nil
				},
			})
		}),
	)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pullgit",
		Short:        "Keep local Git working copies in sync with their remotes",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newServiceCmd())

	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the sync scheduler in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			log, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			svc, err := newService(log)
			if err != nil {
				log.Warn("no service manager available, running detached", zap.Error(err))
				fx.New(appOptions()).Run()
				return nil
			}

			// Blocks until the service manager or an interrupt stops the program.
			if runErr := svc.Run(); runErr != nil {
				return fmt.Errorf("daemon exited: %w", runErr)
			}

			return nil
		},
	}
}

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage PullGit as an operating system service",
	}

	for _, action := range daemon.Actions() {
		cmd.AddCommand(&cobra.Command{
			Use:   action,
			Short: fmt.Sprintf("%s the PullGit service", action),
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				svc, err := newService(zap.NewNop())
				if err != nil {
					return err
				}

				if ctlErr := daemon.Control(svc, action); ctlErr != nil {
					return ctlErr
				}

				c.Printf("service %s: ok\n", action)
				return nil
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the PullGit service is running",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			svc, err := newService(zap.NewNop())
			if err != nil {
				return err
			}

			status, err := daemon.ReadStatus(svc)
			if err != nil {
				return err
			}

			c.Printf("state: %s\nisRunning: %t\n", status.State, status.IsRunning)
			return nil
		},
	})

	return cmd
}

func newService(log *zap.Logger) (service.Service, error) {
	prg := daemon.NewProgram(func() daemon.App { return fx.New(appOptions()) }, log)

	return daemon.New(prg, daemon.DefaultConfig())
}
