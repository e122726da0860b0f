package tracker

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/sandevgo/bondtrack/internal/core"
)

// A message payload comes in one of two shapes: a single snapshot object
// (legacy, pre-variant chats) or a map from variant-id string to snapshot.
// Resolution never fails loudly: anything unrecognizable yields nil.

// ResolveVariant extracts the snapshot for the message's active variant id
// from its raw payload. Keyed payloads resolve in order: exact variant id,
// key "0", then the first value that validates. A key that exists but holds
// an invalid value counts as absent and resolution moves on.
func ResolveVariant(raw json.RawMessage, variant int, now int64) *core.Snapshot {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil
	}

	if isSingleShape(m) {
		return decodeSnapshot(raw, now)
	}

	if v, ok := m[strconv.Itoa(variant)]; ok {
		if snap := decodeSnapshot(v, now); snap != nil {
			return snap
		}
	}
	if v, ok := m["0"]; ok {
		if snap := decodeSnapshot(v, now); snap != nil {
			return snap
		}
	}
	for _, key := range sortedVariantKeys(m) {
		if snap := decodeSnapshot(m[key], now); snap != nil {
			return snap
		}
	}
	return nil
}

// isSingleShape reports whether the decoded payload carries both snapshot
// marker fields, i.e. is itself a snapshot rather than a variant map.
func isSingleShape(m map[string]json.RawMessage) bool {
	_, hasStats := m["statistics"]
	_, hasChars := m["activeCharacters"]
	return hasStats && hasChars
}

// sortedVariantKeys orders numeric variant ids ascending with non-numeric
// keys last in lexical order, so fallback resolution is deterministic.
func sortedVariantKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iErr := strconv.Atoi(keys[i])
		nj, jErr := strconv.Atoi(keys[j])
		switch {
		case iErr == nil && jErr == nil:
			return ni < nj
		case iErr == nil:
			return true
		case jErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// decodeSnapshot best-effort parses one snapshot value and normalizes it.
// Values missing either marker field are invalid and yield nil; everything
// else is coerced field by field.
func decodeSnapshot(raw json.RawMessage, now int64) *core.Snapshot {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil
	}
	if !isSingleShape(m) {
		return nil
	}

	snap := core.Snapshot{
		Timestamp:        decodeTimestamp(m["timestamp"]),
		ActiveCharacters: decodeNames(m["activeCharacters"]),
		Statistics:       decodeStatistics(m["statistics"]),
	}
	out := Normalize(snap, now)
	return &out
}

func decodeTimestamp(raw json.RawMessage) int64 {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			return parsed
		}
	}
	return 0 // Normalize defaults it to now
}

func decodeNames(raw json.RawMessage) []string {
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		return names
	}
	// Mixed-type arrays keep their string elements.
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	names = make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			names = append(names, s)
		}
	}
	return names
}

func decodeStatistics(raw json.RawMessage) core.Statistics {
	st := core.NewStatistics()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return st
	}
	st.Affection = decodeNumericMap(m["affection"])
	st.Trust = decodeNumericMap(m["trust"])
	st.Desire = decodeNumericMap(m["desire"])
	st.Connection = decodeNumericMap(m["connection"])
	st.Mood = decodeTextMap(m["mood"])
	st.LastThought = decodeTextMap(m["lastThought"])
	return st
}

func decodeNumericMap(raw json.RawMessage) map[string]float64 {
	out := map[string]float64{}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return out
	}
	for name, value := range m {
		var f float64
		if err := json.Unmarshal(value, &f); err == nil {
			out[name] = f
			continue
		}
		// Models occasionally quote numbers; coerce once on read.
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				out[name] = f
			}
		}
	}
	return out
}

func decodeTextMap(raw json.RawMessage) map[string]string {
	out := map[string]string{}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return out
	}
	for name, value := range m {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			out[name] = s
		}
	}
	return out
}
