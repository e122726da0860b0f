package storage

import (
	"context"
	"encoding/json"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// ChatHead stores one record per scope inside the data bag of the message at
// timeline position 0. It travels with the chat on export/import, making it
// a portable backup of latest plus capped history.
type ChatHead struct {
	tl core.Timeline
}

func NewChatHead(tl core.Timeline) *ChatHead {
	return &ChatHead{tl: tl}
}

func (s *ChatHead) Name() string { return "chat-head" }

func (s *ChatHead) Read(ctx context.Context, scope core.Scope) core.StoreRecord {
	bag, ok := s.head()
	if !ok {
		return emptyRecord()
	}
	raw, ok := bag.Get(recordKey(scope))
	if !ok {
		return emptyRecord()
	}
	return decodeRecord(ctx, s.Name(), raw)
}

func (s *ChatHead) Write(ctx context.Context, scope core.Scope, rec core.StoreRecord) bool {
	bag, ok := s.head()
	if !ok {
		log.FromCtx(ctx).Debug().Msg("chat-head write skipped: timeline is empty")
		return false
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("chat-head record marshal failed")
		return false
	}
	bag.Set(recordKey(scope), data)
	return true
}

func (s *ChatHead) Clear(ctx context.Context, scope core.Scope) {
	if bag, ok := s.head(); ok {
		bag.Delete(recordKey(scope))
	}
}

func (s *ChatHead) head() (core.Bag, bool) {
	if s.tl == nil || s.tl.Len() == 0 {
		return nil, false
	}
	return s.tl.Bag(0)
}
