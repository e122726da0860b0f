package storage

import (
	"context"
	"encoding/json"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// All keys the extension writes into host facilities carry this namespace
// so they never collide with other extensions sharing the same bags.
const (
	// SnapshotBagKey holds the per-message variant payload (embedded store).
	SnapshotBagKey = "bondtrack"

	recordKeyPrefix = "bondtrack_record::"
	localKeyPrefix  = "bondtrack_store::"
	latestKeyPrefix = "bondtrack_latest::"
)

func recordKey(scope core.Scope) string {
	return recordKeyPrefix + scope.Key()
}

func localKey(scope core.Scope) string {
	return localKeyPrefix + scope.Key()
}

func latestKey(scope core.Scope) string {
	return latestKeyPrefix + scope.Key()
}

// decodeRecord parses a serialized store record, degrading corrupt input to
// an empty record. Malformed state is indistinguishable from absent state
// for callers.
func decodeRecord(ctx context.Context, backend string, raw []byte) core.StoreRecord {
	var rec core.StoreRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("backend", backend).Msg("discarding corrupt store record")
		return core.StoreRecord{History: []core.HistoryEntry{}}
	}
	if rec.History == nil {
		rec.History = []core.HistoryEntry{}
	}
	return rec
}

func emptyRecord() core.StoreRecord {
	return core.StoreRecord{History: []core.HistoryEntry{}}
}
