package chatmodel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stokhos-ai/parley/chatmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseRole(t *testing.T) {
	for _, token := range []string{"system", "user", "assistant", "tool"} {
		r, err := chatmodel.ParseRole(token)
		require.NoError(t, err)
		assert.Equal(t, token, r.String())
	}

	_, err := chatmodel.ParseRole("narrator")
	require.Error(t, err)
	assert.ErrorIs(t, err, chatmodel.ErrUnknownRole)
	assert.EqualError(t, err, `role "narrator": unknown role`)

	_, err = chatmodel.ParseRole("")
	assert.ErrorIs(t, err, chatmodel.ErrUnknownRole)

	// roles are case sensitive tokens
	_, err = chatmodel.ParseRole("System")
	assert.ErrorIs(t, err, chatmodel.ErrUnknownRole)
}

func Test_NewMessage(t *testing.T) {
	before := time.Now()
	msg := chatmodel.NewMessage(chatmodel.RoleUser, "Olá, tudo bem?")

	assert.Equal(t, chatmodel.RoleUser, msg.Role)
	assert.Equal(t, "Olá, tudo bem?", msg.Content)
	assert.False(t, msg.CreatedAt.Before(before))
	assert.NotNil(t, msg.Metadata)
	assert.Empty(t, msg.Metadata)
}

type withString struct{}

func (withString) String() string { return "stringer" }

type withContent struct{}

func (withContent) GetContent() string { return "content" }

func Test_Stringify(t *testing.T) {
	assert.Equal(t, "plain", chatmodel.Stringify("plain"))
	assert.Equal(t, "stringer", chatmodel.Stringify(withString{}))
	assert.Equal(t, "content", chatmodel.Stringify(withContent{}))
	assert.Equal(t, "17", chatmodel.Stringify(17))
	assert.Equal(t, `{"a":1}`, chatmodel.Stringify(map[string]int{"a": 1}))
}

func Test_ChatContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, chatmodel.GetChatContext(ctx))
	assert.Empty(t, chatmodel.GetChatID(ctx))

	chatCtx := chatmodel.NewChatContext("chat1")
	assert.Equal(t, "chat1", chatCtx.GetChatID())

	chatCtx.SetMetadata("key", "value")
	v, ok := chatCtx.GetMetadata("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)
	_, ok = chatCtx.GetMetadata("missing")
	assert.False(t, ok)

	ctx = chatmodel.WithChatContext(ctx, chatCtx)
	assert.Equal(t, "chat1", chatmodel.GetChatID(ctx))
	assert.Equal(t, chatCtx, chatmodel.GetChatContext(ctx))

	generated := chatmodel.NewChatContext("")
	assert.NotEmpty(t, generated.GetChatID())
	assert.NotEqual(t, generated.GetChatID(), chatmodel.NewChatID())
}
