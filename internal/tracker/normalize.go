package tracker

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sandevgo/bondtrack/internal/core"
)

// textPolicy strips any markup a model may have written into the textual
// statistics before they are persisted.
var textPolicy = bluemonday.StrictPolicy()

// sanitizeText stores the sanitizer's entity-escaped output as the canonical
// form: it is tag-free, so sanitizing it again is the identity and
// re-normalizing a stored snapshot never changes it. Pre-escaped markup
// stays escaped text rather than becoming strippable markup.
func sanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// Normalize returns a snapshot with all six statistic maps present,
// character names trimmed, textual values sanitized and a missing timestamp
// defaulted to now. Normalizing an already-normalized snapshot yields an
// equal snapshot.
func Normalize(s core.Snapshot, now int64) core.Snapshot {
	out := core.Snapshot{Timestamp: s.Timestamp}
	if out.Timestamp <= 0 {
		out.Timestamp = now
	}

	out.ActiveCharacters = make([]string, 0, len(s.ActiveCharacters))
	for _, name := range s.ActiveCharacters {
		if name = strings.TrimSpace(name); name != "" {
			out.ActiveCharacters = append(out.ActiveCharacters, name)
		}
	}

	st := core.NewStatistics()
	copyNumeric(st.Affection, s.Statistics.Affection)
	copyNumeric(st.Trust, s.Statistics.Trust)
	copyNumeric(st.Desire, s.Statistics.Desire)
	copyNumeric(st.Connection, s.Statistics.Connection)
	copyText(st.Mood, s.Statistics.Mood)
	copyText(st.LastThought, s.Statistics.LastThought)
	out.Statistics = st

	return out
}

func copyNumeric(dst map[string]float64, src map[string]float64) {
	for name, value := range src {
		if name = strings.TrimSpace(name); name != "" {
			dst[name] = value
		}
	}
}

func copyText(dst map[string]string, src map[string]string) {
	for name, value := range src {
		if name = strings.TrimSpace(name); name != "" {
			dst[name] = sanitizeText(value)
		}
	}
}
