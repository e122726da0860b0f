package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// GlobalIndex maps every scope ever saved to its latest pointer, independent
// of which chat is currently loaded. It is a coarse recovery cache: the last
// resort when a chat's own stores have all been lost.
type GlobalIndex struct {
	kv core.KV
}

func NewGlobalIndex(kv core.KV) *GlobalIndex {
	return &GlobalIndex{kv: kv}
}

func (g *GlobalIndex) Latest(ctx context.Context, scope core.Scope) *core.LatestPointer {
	if g.kv == nil {
		return nil
	}
	value, ok := g.kv.Get(ctx, latestKey(scope))
	if !ok {
		return nil
	}
	var ptr core.LatestPointer
	if err := json.Unmarshal([]byte(value), &ptr); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("scope", scope.Key()).Msg("discarding corrupt index entry")
		return nil
	}
	return &ptr
}

func (g *GlobalIndex) Put(ctx context.Context, scope core.Scope, ptr core.LatestPointer) {
	if g.kv == nil {
		return
	}
	data, err := json.Marshal(ptr)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("index entry marshal failed")
		return
	}
	if err := g.kv.Set(ctx, latestKey(scope), string(data)); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("scope", scope.Key()).Msg("index entry write failed")
	}
}

func (g *GlobalIndex) Delete(ctx context.Context, scope core.Scope) {
	if g.kv == nil {
		return
	}
	if err := g.kv.Delete(ctx, latestKey(scope)); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("scope", scope.Key()).Msg("index entry delete failed")
	}
}

// Scopes lists every scope present in the index. Only KV facilities that
// support enumeration contribute; others yield an empty list.
func (g *GlobalIndex) Scopes(ctx context.Context) []core.Scope {
	lister, ok := g.kv.(interface {
		Keys(ctx context.Context, prefix string) []string
	})
	if !ok {
		return nil
	}
	var scopes []core.Scope
	for _, key := range lister.Keys(ctx, latestKeyPrefix) {
		scope, ok := core.ParseScopeKey(strings.TrimPrefix(key, latestKeyPrefix))
		if !ok {
			continue
		}
		scopes = append(scopes, scope)
	}
	return scopes
}
