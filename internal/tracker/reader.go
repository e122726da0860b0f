package tracker

import (
	"context"
	"sort"

	"github.com/sandevgo/bondtrack/internal/core"
)

// Latest returns the best-available current snapshot for the scope, or nil
// when nothing is recorded anywhere. Tiers are mutually exclusive, first hit
// wins: the timeline scan, then side-backend latest pointers in
// configuration order, then the global index. There is no cross-tier merge.
func (t *Tracker) Latest(ctx context.Context, scope core.Scope) *core.Snapshot {
	if snap := t.scanLatest(t.timelineLen()); snap != nil {
		return snap
	}
	for _, b := range t.backends {
		if rec := b.Read(ctx, scope); rec.Latest != nil {
			snap := rec.Latest.Snapshot
			return &snap
		}
	}
	if t.index != nil {
		if ptr := t.index.Latest(ctx, scope); ptr != nil {
			snap := ptr.Snapshot
			return &snap
		}
	}
	return nil
}

// LatestBefore returns the newest timeline snapshot strictly before
// beforeIndex. Side-backends are not consulted: callers diff against
// previous state, which only the position-addressed timeline can answer.
func (t *Tracker) LatestBefore(ctx context.Context, scope core.Scope, beforeIndex int) *core.Snapshot {
	return t.scanLatest(beforeIndex)
}

func (t *Tracker) scanLatest(before int) *core.Snapshot {
	if n := t.timelineLen(); before > n {
		before = n
	}
	for i := before - 1; i >= 0; i-- {
		if snap := t.resolveAt(i); snap != nil {
			return snap
		}
	}
	return nil
}

// History returns up to limit snapshots for the scope ordered by timestamp
// descending. Phase 1 scans the timeline backward and is authoritative for
// the positions it covers; when it finds fewer than limit entries, phase 2
// unions in side-store history entries revalidated against current timeline
// bounds and the trackability predicate. Candidates dedup by message index,
// greatest timestamp wins.
func (t *Tracker) History(ctx context.Context, scope core.Scope, limit int) []core.Snapshot {
	if limit <= 0 {
		return nil
	}

	n := t.timelineLen()
	best := make(map[int]core.HistoryEntry)

	found := 0
	for i := n - 1; i >= 0 && found < limit; i-- {
		snap := t.resolveAt(i)
		if snap == nil {
			continue
		}
		best[i] = core.HistoryEntry{Snapshot: *snap, Timestamp: snap.Timestamp, MessageIndex: i}
		found++
	}

	if found < limit {
		for _, b := range t.backends {
			rec := b.Read(ctx, scope)
			for _, e := range rec.History {
				if e.MessageIndex < 0 || e.MessageIndex >= n {
					continue
				}
				// The message may have been deleted, edited or swiped since
				// the entry was recorded.
				if t.trackable == nil || !t.trackable(e.MessageIndex) {
					continue
				}
				if cur, ok := best[e.MessageIndex]; !ok || e.Timestamp > cur.Timestamp {
					best[e.MessageIndex] = e
				}
			}
		}
	}

	entries := make([]core.HistoryEntry, 0, len(best))
	for _, e := range best {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]core.Snapshot, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Snapshot)
	}
	return out
}
