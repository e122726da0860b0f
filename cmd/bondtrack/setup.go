package main

import (
	"context"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/bondtrack/internal/chatfile"
	"github.com/sandevgo/bondtrack/internal/config"
	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/internal/storage"
	"github.com/sandevgo/bondtrack/internal/storage/sqlite"
	"github.com/sandevgo/bondtrack/internal/tracker"
	"github.com/sandevgo/bondtrack/pkg/log"
)

type session struct {
	cfg     *config.AppConfig
	file    *chatfile.File
	scope   core.Scope
	tracker *tracker.Tracker
	close   func()
}

// openSession loads the chat export, opens the runtime KV database and wires
// the tracker over all three side-backends plus the global index.
func openSession(ctx context.Context, chatPath string) (*session, error) {
	logger := log.FromCtx(ctx)

	envPath := filepath.Join(config.GetRuntimePath(), ".env")
	if err := godotenv.Load(envPath); err != nil {
		logger.Debug().Err(err).Str("path", envPath).Msg("no .env file loaded")
	}

	cfg := config.NewAppConfig(ctx)

	file, err := chatfile.Load(ctx, chatPath)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}
	kv := sqlite.NewKVRepo(db)

	scope := core.Scope{ChatID: file.ChatID, TargetID: target}
	if scope.TargetID == "" {
		scope.TargetID = file.Character
	}

	backends := []core.Backend{
		storage.NewLocalStore(kv),
		storage.NewChatHead(file),
		storage.NewMetaStore(file),
	}
	tr := tracker.New(file, backends, storage.NewGlobalIndex(kv), file.IsTrackableAI)

	return &session{
		cfg:     cfg,
		file:    file,
		scope:   scope,
		tracker: tr,
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close kv database")
			}
		},
	}, nil
}
