package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/data"
)

func TestCli_ChatLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())

	require.NoError(t, c.runChatAdd(ctx, chatAddOptions{
		Name:     "Trip planning",
		Source:   "claude",
		Messages: []string{"user: where to go?", "assistant:Lisbon"},
	}))
	assert.Contains(t, c.io.String(), `Chat "Trip planning" added (id 1)`)

	chat, err := c.data.GetChat(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Trip planning", chat.Title)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "user", chat.Messages[0].Role)
	assert.Equal(t, "where to go?", chat.Messages[0].Content)
	assert.Equal(t, "Lisbon", chat.Messages[1].Content)

	require.NoError(t, c.runChatShow(ctx, "1", false))
	assert.Contains(t, c.io.String(), "Source:   claude")
	assert.Contains(t, c.io.String(), "[assistant] Lisbon")

	require.NoError(t, c.runChatRename(ctx, "1", "Lisbon trip"))
	require.NoError(t, c.runChatDuplicate(ctx, "1", ""))
	assert.Contains(t, c.io.String(), `Chat duplicated as "Lisbon trip (copy)" (id 2)`)

	require.NoError(t, c.runChatList(ctx))
	assert.Contains(t, c.io.String(), "Found 2 chat(s)")
	assert.Contains(t, c.io.String(), "1. Lisbon trip")

	require.NoError(t, c.runChatDelete(ctx, "1"))
	_, err = c.data.GetChat(ctx, 1)
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestCli_runChatAdd_Errors(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())

	tests := []struct {
		name string
		opts chatAddOptions
	}{
		{name: "missing name", opts: chatAddOptions{}},
		{name: "unknown source", opts: chatAddOptions{Name: "x", Source: "bard"}},
		{name: "message without role", opts: chatAddOptions{Name: "x", Messages: []string{"hello"}}},
		{name: "missing file", opts: chatAddOptions{Name: "x", File: filepath.Join(t.TempDir(), "nope.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, c.runChatAdd(ctx, tt.opts))
		})
	}

	require.NoError(t, c.runChatAdd(ctx, chatAddOptions{Name: "dup"}))
	err := c.runChatAdd(ctx, chatAddOptions{Name: "dup"})
	assert.ErrorIs(t, err, data.ErrNameTaken)
}

func TestCli_runChatAdd_FromFile(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())

	path := filepath.Join(t.TempDir(), "chat.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"syncId": "00000000-0000-0000-0000-000000000001",
		"name": "Exported",
		"title": "Exported chat",
		"source": "gemini",
		"messages": [{"role": "user", "content": "hi"}]
	}`), 0o600))

	require.NoError(t, c.runChatAdd(ctx, chatAddOptions{File: path}))

	chat, err := c.data.GetChat(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Exported", chat.Name)
	assert.Equal(t, "gemini", chat.Source)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000001", chat.SyncID, "import gets a fresh identity")
	assert.Len(t, chat.Messages, 1)
}

func TestCli_runChatShow_JSON(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())
	require.NoError(t, c.runChatAdd(ctx, chatAddOptions{Name: "json"}))

	require.NoError(t, c.runChatShow(ctx, "1", true))
	assert.Contains(t, c.io.String(), `"name": "json"`)
	assert.Contains(t, c.io.String(), `"messages": []`)
}

func TestCli_InvalidID(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())

	assert.Error(t, c.runChatShow(ctx, "abc", false))
	assert.Error(t, c.runChatDelete(ctx, "0"))
	assert.Error(t, c.runPresetRename(ctx, "-1", "x"))
	assert.ErrorIs(t, c.runChatShow(ctx, "42", false), data.ErrNotFound)
}

func TestCli_PresetLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())

	require.NoError(t, c.runPresetAdd(ctx, presetAddOptions{Name: "Dark", Settings: `{"theme":"dark","fontSize":14}`}))
	require.NoError(t, c.runPresetShow(ctx, "1", false))
	assert.Contains(t, c.io.String(), "\"theme\": \"dark\"")

	require.NoError(t, c.runPresetDuplicate(ctx, "1", "Dark 2"))
	require.NoError(t, c.runPresetRename(ctx, "2", "Darker"))
	require.NoError(t, c.runPresetList(ctx))
	assert.Contains(t, c.io.String(), "Found 2 preset(s)")
	assert.Contains(t, c.io.String(), "2. Darker")

	require.NoError(t, c.runPresetDelete(ctx, "2"))
	presets, err := c.data.ListPresets(ctx)
	require.NoError(t, err)
	assert.Len(t, presets, 1)
}

func TestCli_runPresetAdd(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())

	assert.Error(t, c.runPresetAdd(ctx, presetAddOptions{}))
	assert.Error(t, c.runPresetAdd(ctx, presetAddOptions{Name: "bad", Settings: "{not json"}))
	assert.Error(t, c.runPresetAdd(ctx, presetAddOptions{Name: "both", Settings: "{}", File: "x.json"}))

	require.NoError(t, c.runPresetAdd(ctx, presetAddOptions{Name: "Empty"}))
	preset, err := c.data.GetPreset(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(preset.Settings))

	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pageSize":"A4"}`), 0o600))
	require.NoError(t, c.runPresetAdd(ctx, presetAddOptions{Name: "Print", File: path}))
	preset, err = c.data.GetPreset(ctx, 2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pageSize":"A4"}`, string(preset.Settings))
}

func TestCli_EmptyLists(t *testing.T) {
	ctx := context.Background()
	c := newTestCli(t, newServerAccount())

	require.NoError(t, c.runChatList(ctx))
	require.NoError(t, c.runPresetList(ctx))
	assert.Contains(t, c.io.String(), "No chats found.")
	assert.Contains(t, c.io.String(), "No presets found.")
}
