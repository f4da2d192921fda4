package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`

	OpenAPI openAPIConfig `koanf:"openapi"`
}

type openAPIConfig struct {
	Enabled    bool   `koanf:"enabled"`
	PublicHost string `koanf:"public_host"`
	PublicPath string `koanf:"public_path"`
}

type storageConfig struct {
	DataDir string `koanf:"data_dir"`
}

type gitAuthConfig struct {
	HTTPS gitHTTPSAuthConfig `koanf:"https"`
}

type gitHTTPSAuthConfig struct {
	DefaultToken    string `koanf:"default_token"`
	DefaultUsername string `koanf:"default_username"`
}

type gitConfig struct {
	Timeout  time.Duration `koanf:"timeout"`
	ReposDir string        `koanf:"repos_dir"`
	Depth    int           `koanf:"depth"`
	Auth     gitAuthConfig `koanf:"auth"`
}

type syncConfig struct {
	AutoSync        bool   `koanf:"auto_sync"`
	DefaultInterval int    `koanf:"default_interval"`
	ScheduleMode    string `koanf:"schedule_mode"`
	LogFile         string `koanf:"log_file"`
	Concurrency     int    `koanf:"concurrency"`
}

type githubConfig struct {
	BaseURL string `koanf:"base_url"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage storageConfig `koanf:"storage"`
	Git     gitConfig     `koanf:"git"`
	Sync    syncConfig    `koanf:"sync"`
	GitHub  githubConfig  `koanf:"github"`
}

// baseDir is the per-user directory holding the database, working copies and the sync log.
func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".pullgit"
	}

	return filepath.Join(dir, "pullgit")
}

func Default() Config {
	base := baseDir()

	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
			OpenAPI: openAPIConfig{
				Enabled: true,
			},
		},

		Storage: storageConfig{
			DataDir: filepath.Join(base, "data"),
		},

		Git: gitConfig{
			Timeout:  10 * time.Minute,
			ReposDir: filepath.Join(base, "repositories"),
			Auth: gitAuthConfig{
				HTTPS: gitHTTPSAuthConfig{
					DefaultUsername: "x-access-token",
				},
			},
		},

		Sync: syncConfig{
			AutoSync:        true,
			DefaultInterval: 300,
			ScheduleMode:    "interval",
			LogFile:         filepath.Join(base, "sync.log"),
			Concurrency:     4,
		},

		GitHub: githubConfig{
			BaseURL: "",
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
