package core

import (
	"net/url"
	"strings"
)

const (
	BondtrackName    = "bondtrack"
	BondtrackVersion = "0.1.0"
)

// HistoryCap bounds the history list of every store record.
const HistoryCap = 120

// Statistics holds the six tracked relationship statistics. Each map is
// keyed by trimmed character name. After normalization all six maps are
// non-nil, possibly empty — never partial.
type Statistics struct {
	Affection   map[string]float64 `json:"affection"`
	Trust       map[string]float64 `json:"trust"`
	Desire      map[string]float64 `json:"desire"`
	Connection  map[string]float64 `json:"connection"`
	Mood        map[string]string  `json:"mood"`
	LastThought map[string]string  `json:"lastThought"`
}

// NewStatistics returns the empty six-key template.
func NewStatistics() Statistics {
	return Statistics{
		Affection:   map[string]float64{},
		Trust:       map[string]float64{},
		Desire:      map[string]float64{},
		Connection:  map[string]float64{},
		Mood:        map[string]string{},
		LastThought: map[string]string{},
	}
}

// Snapshot is one captured relationship state, attached to a specific
// message. Snapshots are immutable values: updates produce a new snapshot
// via merge, never in-place mutation.
type Snapshot struct {
	Timestamp        int64      `json:"timestamp"` // unix milliseconds
	ActiveCharacters []string   `json:"activeCharacters"`
	Statistics       Statistics `json:"statistics"`
}

// LatestPointer points at the most recently saved snapshot for a scope.
type LatestPointer struct {
	Snapshot     Snapshot `json:"snapshot"`
	MessageIndex int      `json:"messageIndex"`
	Timestamp    int64    `json:"timestamp"`
}

// HistoryEntry is one element of a store record's history list.
type HistoryEntry struct {
	Snapshot     Snapshot `json:"snapshot"`
	Timestamp    int64    `json:"timestamp"`
	MessageIndex int      `json:"messageIndex"`
}

// StoreRecord is the unit persisted by every side-backend: an optional
// latest pointer plus a newest-first history capped at HistoryCap.
type StoreRecord struct {
	Latest  *LatestPointer `json:"latest,omitempty"`
	History []HistoryEntry `json:"history"`
}

// Push prepends entry to the history, replacing any existing entry captured
// from a snapshot with the same timestamp, and truncates to HistoryCap.
func (r *StoreRecord) Push(entry HistoryEntry) {
	out := make([]HistoryEntry, 0, len(r.History)+1)
	out = append(out, entry)
	for _, e := range r.History {
		if e.Snapshot.Timestamp == entry.Snapshot.Timestamp {
			continue
		}
		out = append(out, e)
	}
	if len(out) > HistoryCap {
		out = out[:HistoryCap]
	}
	r.History = out
}

// Scope is the storage partition key: one chat plus one target, where the
// target is a group id or a single character id.
type Scope struct {
	ChatID   string `json:"chatId"`
	TargetID string `json:"targetId"`
}

// Key renders the scope as a stable string used to qualify storage keys.
// Both ids are query-escaped so a "::" inside an id cannot be mistaken for
// the delimiter; ParseScopeKey inverts the encoding.
func (s Scope) Key() string {
	return url.QueryEscape(s.ChatID) + "::" + url.QueryEscape(s.TargetID)
}

// ParseScopeKey recovers a Scope from the string Key produced.
func ParseScopeKey(key string) (Scope, bool) {
	chatEnc, targetEnc, found := strings.Cut(key, "::")
	if !found {
		return Scope{}, false
	}
	chat, err := url.QueryUnescape(chatEnc)
	if err != nil {
		return Scope{}, false
	}
	target, err := url.QueryUnescape(targetEnc)
	if err != nil {
		return Scope{}, false
	}
	return Scope{ChatID: chat, TargetID: target}, true
}
