package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stokhos-ai/parley/chatmodel"
	"github.com/stokhos-ai/parley/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Records_RoundTrip(t *testing.T) {
	msgs := []chatmodel.Message{
		chatmodel.NewMessage(chatmodel.RoleSystem, "Você é Bot, um assistente de IA útil e amigável."),
		chatmodel.NewMessage(chatmodel.RoleUser, "calcule 10+2+5"),
		chatmodel.NewMessage(chatmodel.RoleAssistant, "O resultado é 17."),
	}

	records := store.EncodeMessages(msgs)
	require.Len(t, records, 3)
	assert.Equal(t, "system", records[0].Role)

	decoded, err := store.DecodeRecords(records)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range msgs {
		assert.Equal(t, msgs[i].Role, decoded[i].Role)
		assert.Equal(t, msgs[i].Content, decoded[i].Content)
		assert.True(t, msgs[i].CreatedAt.Equal(decoded[i].CreatedAt))
	}
}

func Test_Records_DecodeErrors(t *testing.T) {
	now := time.Now().Format(time.RFC3339Nano)

	_, err := store.DecodeRecords([]store.Record{
		{Role: "narrator", Content: "once upon a time", Timestamp: now},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDecode)

	_, err = store.DecodeRecords([]store.Record{
		{Role: "user", Content: "oi", Timestamp: "ontem"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDecode)
}

func Test_Records_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minha_conversa.json")

	msgs := []chatmodel.Message{
		chatmodel.NewMessage(chatmodel.RoleUser, "pesquisar gatos & cães"),
	}
	require.NoError(t, store.SaveFile(path, store.EncodeMessages(msgs)))

	records, err := store.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	// non-ASCII and HTML-sensitive characters survive the file round trip
	assert.Equal(t, "pesquisar gatos & cães", records[0].Content)

	_, err = store.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func Test_Records_UnmarshalMalformed(t *testing.T) {
	_, err := store.UnmarshalRecords([]byte(`{"not": "a list"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDecode)
}
