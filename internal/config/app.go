package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/bondtrack/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"BONDTRACK_RUNTIME_PATH" envDefault:".bondtrack"`

	// Default depth for history listings
	HistoryLimit int `env:"BONDTRACK_HISTORY_LIMIT" envDefault:"20"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(GetRuntimePath(), "bondtrack.db")
}
