package tracker

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/internal/storage"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// Save fans the snapshot out to every side-backend and upserts the global
// index entry for the scope. Each backend is persisted independently; a
// failure in one is logged and swallowed so the others still proceed. The
// embedded message store is written by the caller via Embed, not here.
func (t *Tracker) Save(ctx context.Context, scope core.Scope, snap core.Snapshot, messageIndex int) {
	now := t.now()
	snap = Normalize(snap, now)

	for _, b := range t.backends {
		rec := b.Read(ctx, scope)
		ptr := core.LatestPointer{Snapshot: snap, MessageIndex: messageIndex, Timestamp: now}
		rec.Latest = &ptr
		rec.Push(core.HistoryEntry{Snapshot: snap, Timestamp: now, MessageIndex: messageIndex})
		if !b.Write(ctx, scope, rec) {
			log.FromCtx(ctx).Warn().
				Str("backend", b.Name()).
				Str("scope", scope.Key()).
				Msg("snapshot write failed")
		}
	}

	if t.index != nil {
		t.index.Put(ctx, scope, core.LatestPointer{Snapshot: snap, MessageIndex: messageIndex, Timestamp: now})
	}
}

// Embed attaches snap to the message payload at the given variant id,
// upgrading a legacy single-shape payload to the keyed shape in place.
// Reports false when the message does not exist or the payload cannot be
// serialized.
func (t *Tracker) Embed(ctx context.Context, messageIndex, variant int, snap core.Snapshot) bool {
	if t.timeline == nil {
		return false
	}
	bag, ok := t.timeline.Bag(messageIndex)
	if !ok {
		return false
	}
	snap = Normalize(snap, t.now())

	variants := map[string]json.RawMessage{}
	if raw, ok := bag.Get(storage.SnapshotBagKey); ok {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err == nil && m != nil {
			if isSingleShape(m) {
				variants["0"] = raw
			} else {
				variants = m
			}
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("snapshot marshal failed")
		return false
	}
	variants[strconv.Itoa(variant)] = data

	payload, err := json.Marshal(variants)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("payload marshal failed")
		return false
	}
	bag.Set(storage.SnapshotBagKey, payload)
	return true
}
