package store_test

import (
	"context"
	"testing"

	"github.com/stokhos-ai/parley/chatmodel"
	"github.com/stokhos-ai/parley/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryStore(t *testing.T) {
	st := store.NewMemoryStore()

	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("chat1"))
	assert.Empty(t, st.Messages(ctx))

	msg1 := chatmodel.NewMessage(chatmodel.RoleUser, "Hello")
	msg2 := chatmodel.NewMessage(chatmodel.RoleAssistant, "Hi there!")

	require.NoError(t, st.Append(ctx, msg1))
	require.NoError(t, st.Append(ctx, msg2))

	messages := st.Messages(ctx)
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello", messages[0].Content)
	assert.Equal(t, "Hi there!", messages[1].Content)

	// other chats do not see this history
	other := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("chat2"))
	assert.Empty(t, st.Messages(other))

	// the returned slice is a snapshot
	messages[0] = chatmodel.NewMessage(chatmodel.RoleSystem, "mutated")
	fresh := st.Messages(ctx)
	assert.Equal(t, "Hello", fresh[0].Content)

	require.NoError(t, st.Reset(ctx))
	assert.Empty(t, st.Messages(ctx))
}

func Test_MemoryStore_Replace(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("chat1"))

	require.NoError(t, st.Append(ctx, chatmodel.NewMessage(chatmodel.RoleSystem, "old")))

	replacement := []chatmodel.Message{
		chatmodel.NewMessage(chatmodel.RoleSystem, "greeting"),
		chatmodel.NewMessage(chatmodel.RoleUser, "pergunta"),
	}
	require.NoError(t, st.Replace(ctx, replacement))

	messages := st.Messages(ctx)
	require.Len(t, messages, 2)
	assert.Equal(t, "greeting", messages[0].Content)
	assert.Equal(t, "pergunta", messages[1].Content)

	// mutating the input slice after Replace does not affect the store
	replacement[0] = chatmodel.NewMessage(chatmodel.RoleSystem, "mutated")
	assert.Equal(t, "greeting", st.Messages(ctx)[0].Content)
}
