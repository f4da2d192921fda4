package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/pullgit/pullgit/internal/git"
	"github.com/pullgit/pullgit/internal/github"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/scheduler"
	"github.com/pullgit/pullgit/internal/syncer"
	"github.com/pullgit/pullgit/internal/synclog"
	"github.com/pullgit/pullgit/pkg/badgerfx"
	"github.com/pullgit/pullgit/pkg/openapifx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) openapifx.Config {
			return openapifx.Config{
				Enabled:    cfg.HTTP.OpenAPI.Enabled,
				PublicHost: cfg.HTTP.OpenAPI.PublicHost,
				PublicPath: cfg.HTTP.OpenAPI.PublicPath,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				Depth: cfg.Git.Depth,
				Auth: git.AuthConfig{
					HTTPS: git.HTTPSAuthConfig{
						DefaultToken:    cfg.Git.Auth.HTTPS.DefaultToken,
						DefaultUsername: cfg.Git.Auth.HTTPS.DefaultUsername,
					},
				},
			}
		}),
		fx.Provide(func(cfg Config) syncer.Config {
			return syncer.Config{
				ReposDir:    cfg.Git.ReposDir,
				Timeout:     cfg.Git.Timeout,
				Concurrency: cfg.Sync.Concurrency,
			}
		}),
		fx.Provide(func(cfg Config) repositories.Config {
			return repositories.Config{
				DefaultAutoSync:     cfg.Sync.AutoSync,
				DefaultSyncInterval: cfg.Sync.DefaultInterval,
			}
		}),
		fx.Provide(func(cfg Config) scheduler.Config {
			return scheduler.Config{
				Mode: scheduler.Mode(cfg.Sync.ScheduleMode),
			}
		}),
		fx.Provide(func(cfg Config) synclog.Config {
			return synclog.Config{
				Path: cfg.Sync.LogFile,
			}
		}),
		fx.Provide(func(cfg Config) github.Config {
			return github.Config{
				BaseURL: cfg.GitHub.BaseURL,
				Token:   cfg.Git.Auth.HTTPS.DefaultToken,
			}
		}),
	)
}
