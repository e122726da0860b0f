package tracker

import (
	"context"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/internal/storage"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// ClearAll destroys every trace of the scope: the embedded payload on every
// message, each side-backend record, and the global index entry. Steps are
// independently best-effort. This is the only irreversible operation in the
// subsystem.
func (t *Tracker) ClearAll(ctx context.Context, scope core.Scope) {
	for i := 0; i < t.timelineLen(); i++ {
		if bag, ok := t.timeline.Bag(i); ok {
			bag.Delete(storage.SnapshotBagKey)
		}
	}
	for _, b := range t.backends {
		b.Clear(ctx, scope)
	}
	if t.index != nil {
		t.index.Delete(ctx, scope)
	}
	log.FromCtx(ctx).Info().Str("scope", scope.Key()).Msg("cleared tracker state")
}
