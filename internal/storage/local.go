package storage

import (
	"context"
	"encoding/json"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// LocalStore serializes one record per scope under a namespaced key in the
// ambient key-value facility. Fastest of the side-backends and the least
// durable: the facility may be cleared or hit quota at any time, so it is
// never the sole source of truth.
type LocalStore struct {
	kv core.KV
}

func NewLocalStore(kv core.KV) *LocalStore {
	return &LocalStore{kv: kv}
}

func (s *LocalStore) Name() string { return "local" }

func (s *LocalStore) Read(ctx context.Context, scope core.Scope) core.StoreRecord {
	if s.kv == nil {
		return emptyRecord()
	}
	value, ok := s.kv.Get(ctx, localKey(scope))
	if !ok {
		return emptyRecord()
	}
	return decodeRecord(ctx, s.Name(), []byte(value))
}

func (s *LocalStore) Write(ctx context.Context, scope core.Scope, rec core.StoreRecord) bool {
	if s.kv == nil {
		return false
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("local record marshal failed")
		return false
	}
	if err := s.kv.Set(ctx, localKey(scope), string(data)); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("scope", scope.Key()).Msg("local record write failed")
		return false
	}
	return true
}

func (s *LocalStore) Clear(ctx context.Context, scope core.Scope) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(ctx, localKey(scope)); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("scope", scope.Key()).Msg("local record delete failed")
	}
}
