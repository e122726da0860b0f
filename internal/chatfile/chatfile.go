package chatfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/bondtrack/internal/core"
	"github.com/sandevgo/bondtrack/pkg/log"
)

// Message is one timeline entry of an exported chat. Extra is the opaque bag
// extensions write into; SwipeID selects the active variant.
type Message struct {
	Name     string                     `json:"name"`
	IsUser   bool                       `json:"is_user"`
	SendDate int64                      `json:"send_date"`
	SwipeID  int                        `json:"swipe_id"`
	Extra    map[string]json.RawMessage `json:"extra,omitempty"`
}

// File is a chat export acting as the host for the tracker: it implements
// the timeline and the per-chat metadata document over one JSON file.
type File struct {
	ChatID    string                     `json:"chat_id"`
	Character string                     `json:"character,omitempty"`
	Metadata  map[string]json.RawMessage `json:"metadata"`
	Messages  []*Message                 `json:"messages"`

	path  string
	dirty bool
}

// Load reads a chat export. A missing or unparsable file is an error here:
// the CLI has no chat to operate on without it.
func Load(ctx context.Context, path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat file: %w", err)
	}

	f := &File{path: path}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse chat file: %w", err)
	}
	if f.Metadata == nil {
		f.Metadata = make(map[string]json.RawMessage)
	}
	if f.ChatID == "" {
		f.ChatID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	log.FromCtx(ctx).Debug().Str("chat", f.ChatID).Int("messages", len(f.Messages)).Msg("loaded chat file")
	return f, nil
}

// Flush writes the file back when anything changed since load. This is the
// offline analog of the host's debounced save.
func (f *File) Flush(ctx context.Context) error {
	if !f.dirty {
		return nil
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chat file: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chat file: %w", err)
	}
	f.dirty = false
	log.FromCtx(ctx).Debug().Str("chat", f.ChatID).Msg("saved chat file")
	return nil
}

func (f *File) Dirty() bool { return f.dirty }

// Timeline implementation.

func (f *File) Len() int { return len(f.Messages) }

func (f *File) Bag(index int) (core.Bag, bool) {
	if index < 0 || index >= len(f.Messages) {
		return nil, false
	}
	return &messageBag{file: f, msg: f.Messages[index]}, true
}

func (f *File) ActiveVariant(index int) int {
	if index < 0 || index >= len(f.Messages) {
		return 0
	}
	return f.Messages[index].SwipeID
}

// IsTrackableAI reports whether the message at index is an AI turn eligible
// to carry a snapshot.
func (f *File) IsTrackableAI(index int) bool {
	if index < 0 || index >= len(f.Messages) {
		return false
	}
	return !f.Messages[index].IsUser
}

// Metadata document implementation.

func (f *File) Get(key string) (json.RawMessage, bool) {
	raw, ok := f.Metadata[key]
	return raw, ok
}

func (f *File) Set(key string, value json.RawMessage) {
	f.Metadata[key] = value
}

func (f *File) Delete(key string) {
	delete(f.Metadata, key)
}

func (f *File) RequestSave() {
	f.dirty = true
}

type messageBag struct {
	file *File
	msg  *Message
}

func (b *messageBag) Get(key string) (json.RawMessage, bool) {
	raw, ok := b.msg.Extra[key]
	return raw, ok
}

func (b *messageBag) Set(key string, value json.RawMessage) {
	if b.msg.Extra == nil {
		b.msg.Extra = make(map[string]json.RawMessage)
	}
	b.msg.Extra[key] = value
	b.file.dirty = true
}

func (b *messageBag) Delete(key string) {
	if _, ok := b.msg.Extra[key]; ok {
		delete(b.msg.Extra, key)
		b.file.dirty = true
	}
}
