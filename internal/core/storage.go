package core

import (
	"context"
	"encoding/json"
)

// Bag is an opaque host-owned data bag the extension may freely read and
// write. The host persists it with whatever guarantees it happens to offer.
type Bag interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value json.RawMessage)
	Delete(key string)
}

// Timeline is the host's ordered, append-only message list. Messages are
// identified by position; each carries a data bag and an active variant id
// (alternate regenerated content at the same position).
type Timeline interface {
	Len() int
	Bag(index int) (Bag, bool)
	ActiveVariant(index int) int
}

// Metadata is the host's per-chat metadata document. RequestSave triggers
// the host's debounced persistence hook; implementations must tolerate
// being called often.
type Metadata interface {
	Bag
	RequestSave()
}

// KV is the ambient browser-local style key-value facility. It may be
// cleared or quota-limited at any time; callers never treat it as the sole
// source of truth. A missing key reads as ("", false).
type KV interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend is one redundant side-store of scope-partitioned store records.
// Read degrades absence and corruption to an empty record; Write reports
// success but never propagates an error. Failure domains are isolated:
// one backend failing must not affect the others.
type Backend interface {
	Name() string
	Read(ctx context.Context, scope Scope) StoreRecord
	Write(ctx context.Context, scope Scope, rec StoreRecord) bool
	Clear(ctx context.Context, scope Scope)
}

// Trackable reports whether the message at index is currently eligible to
// carry a snapshot. Supplied by the message-filtering collaborator and used
// to revalidate side-store history entries.
type Trackable func(index int) bool
