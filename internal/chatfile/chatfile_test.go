package chatfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleChat = `{
  "chat_id": "demo-chat",
  "character": "Alice",
  "metadata": {"note": "kept"},
  "messages": [
    {"name": "Alice", "is_user": false, "send_date": 1, "swipe_id": 0},
    {"name": "You", "is_user": true, "send_date": 2, "swipe_id": 0},
    {"name": "Alice", "is_user": false, "send_date": 3, "swipe_id": 1,
     "extra": {"bondtrack": {"0": {"activeCharacters": [], "statistics": {}}}}}
  ]
}`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := Load(ctx, writeSample(t, sampleChat))
	require.NoError(t, err)

	require.Equal(t, "demo-chat", f.ChatID)
	require.Equal(t, "Alice", f.Character)
	require.Equal(t, 3, f.Len())
	require.Equal(t, 1, f.ActiveVariant(2))
	require.Equal(t, 0, f.ActiveVariant(99))
	require.False(t, f.Dirty())
}

func TestLoad_ChatIDDefaultsToFileName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "our story.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"messages": []}`), 0644))

	f, err := Load(ctx, path)
	require.NoError(t, err)
	require.Equal(t, "our story", f.ChatID)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	_, err = Load(ctx, writeSample(t, "{broken"))
	require.Error(t, err)
}

func TestBag_MutationsMarkDirtyAndFlush(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := writeSample(t, sampleChat)
	f, err := Load(ctx, path)
	require.NoError(t, err)

	bag, ok := f.Bag(0)
	require.True(t, ok)
	_, ok = bag.Get("bondtrack")
	require.False(t, ok)

	bag.Set("bondtrack", json.RawMessage(`{"0":{"activeCharacters":[],"statistics":{}}}`))
	require.True(t, f.Dirty())
	require.NoError(t, f.Flush(ctx))
	require.False(t, f.Dirty())

	reloaded, err := Load(ctx, path)
	require.NoError(t, err)
	rBag, ok := reloaded.Bag(0)
	require.True(t, ok)
	raw, ok := rBag.Get("bondtrack")
	require.True(t, ok)
	require.JSONEq(t, `{"0":{"activeCharacters":[],"statistics":{}}}`, string(raw))

	// Deleting an absent key stays clean.
	bag2, _ := reloaded.Bag(1)
	bag2.Delete("bondtrack")
	require.False(t, reloaded.Dirty())
}

func TestBag_OutOfRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := Load(ctx, writeSample(t, sampleChat))
	require.NoError(t, err)

	_, ok := f.Bag(-1)
	require.False(t, ok)
	_, ok = f.Bag(3)
	require.False(t, ok)
}

func TestMetadataDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := writeSample(t, sampleChat)
	f, err := Load(ctx, path)
	require.NoError(t, err)

	raw, ok := f.Get("note")
	require.True(t, ok)
	require.JSONEq(t, `"kept"`, string(raw))

	f.Set("bondtrack_record::demo-chat::Alice", json.RawMessage(`{"history":[]}`))
	require.False(t, f.Dirty(), "Set alone does not schedule a save")
	f.RequestSave()
	require.True(t, f.Dirty())
	require.NoError(t, f.Flush(ctx))

	reloaded, err := Load(ctx, path)
	require.NoError(t, err)
	raw, ok = reloaded.Get("bondtrack_record::demo-chat::Alice")
	require.True(t, ok)
	require.JSONEq(t, `{"history":[]}`, string(raw))

	reloaded.Delete("note")
	_, ok = reloaded.Get("note")
	require.False(t, ok)
}

func TestIsTrackableAI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := Load(ctx, writeSample(t, sampleChat))
	require.NoError(t, err)

	require.True(t, f.IsTrackableAI(0))
	require.False(t, f.IsTrackableAI(1), "user messages are not trackable")
	require.True(t, f.IsTrackableAI(2))
	require.False(t, f.IsTrackableAI(-1))
	require.False(t, f.IsTrackableAI(3))
}

func TestFlush_NoopWhenClean(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := writeSample(t, sampleChat)
	f, err := Load(ctx, path)
	require.NoError(t, err)

	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, f.Flush(ctx))

	after, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
}
