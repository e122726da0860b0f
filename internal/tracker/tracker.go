package tracker

import (
	"time"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/internal/storage"
)

// Tracker is the redundant snapshot store: writes fan out to every
// configured side-backend and the global index, reads reconcile the
// best-available state across the timeline, the backends and the index.
// No operation ever returns an error to its caller; missing data is the
// only observable failure signal.
type Tracker struct {
	timeline  core.Timeline
	backends  []core.Backend
	index     *storage.GlobalIndex
	trackable core.Trackable

	now func() int64
}

// New builds a tracker over the host timeline and the given side-backends.
// Backend order is read priority for latest-pointer fallback; pass the
// fastest first. trackable revalidates side-store history entries and may
// be nil, in which case no side-store entry survives revalidation.
func New(timeline core.Timeline, backends []core.Backend, index *storage.GlobalIndex, trackable core.Trackable) *Tracker {
	return &Tracker{
		timeline:  timeline,
		backends:  backends,
		index:     index,
		trackable: trackable,
		now: func() int64 {
			return time.Now().UnixMilli()
		},
	}
}

func (t *Tracker) timelineLen() int {
	if t.timeline == nil {
		return 0
	}
	return t.timeline.Len()
}

// resolveAt extracts the normalized snapshot embedded at a timeline
// position, honoring the message's active variant.
func (t *Tracker) resolveAt(index int) *core.Snapshot {
	bag, ok := t.timeline.Bag(index)
	if !ok {
		return nil
	}
	raw, ok := bag.Get(storage.SnapshotBagKey)
	if !ok {
		return nil
	}
	return ResolveVariant(raw, t.timeline.ActiveVariant(index), t.now())
}
