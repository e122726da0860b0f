package tracker

import "github.com/sandevgo/bondtrack/internal/core"

// MergeStatistics overlays incoming onto previous, key by key: characters
// refreshed by incoming win, every other character carries forward
// unchanged. Used whenever an update touches only a subset of characters so
// unrefreshed values are not silently dropped. All six maps are present in
// the result.
func MergeStatistics(incoming, previous core.Statistics) core.Statistics {
	return core.Statistics{
		Affection:   union(incoming.Affection, previous.Affection),
		Trust:       union(incoming.Trust, previous.Trust),
		Desire:      union(incoming.Desire, previous.Desire),
		Connection:  union(incoming.Connection, previous.Connection),
		Mood:        union(incoming.Mood, previous.Mood),
		LastThought: union(incoming.LastThought, previous.LastThought),
	}
}

func union[V any](incoming, previous map[string]V) map[string]V {
	out := make(map[string]V, len(previous)+len(incoming))
	for name, value := range previous {
		out[name] = value
	}
	for name, value := range incoming {
		out[name] = value
	}
	return out
}
