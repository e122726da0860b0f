package storage

import (
	"context"
	"encoding/json"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// MetaStore keeps one record per scope inside the host-managed per-chat
// metadata document. Mutations trigger the host's debounced save hook; a
// missing document turns every operation into a no-op.
type MetaStore struct {
	doc core.Metadata
}

func NewMetaStore(doc core.Metadata) *MetaStore {
	return &MetaStore{doc: doc}
}

func (s *MetaStore) Name() string { return "metadata" }

func (s *MetaStore) Read(ctx context.Context, scope core.Scope) core.StoreRecord {
	if s.doc == nil {
		return emptyRecord()
	}
	raw, ok := s.doc.Get(recordKey(scope))
	if !ok {
		return emptyRecord()
	}
	return decodeRecord(ctx, s.Name(), raw)
}

func (s *MetaStore) Write(ctx context.Context, scope core.Scope, rec core.StoreRecord) bool {
	if s.doc == nil {
		log.FromCtx(ctx).Debug().Msg("metadata write skipped: no document")
		return false
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("metadata record marshal failed")
		return false
	}
	s.doc.Set(recordKey(scope), data)
	s.doc.RequestSave()
	return true
}

func (s *MetaStore) Clear(ctx context.Context, scope core.Scope) {
	if s.doc == nil {
		return
	}
	s.doc.Delete(recordKey(scope))
	s.doc.RequestSave()
}
