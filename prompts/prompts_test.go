package prompts_test

import (
	"testing"

	"github.com/stokhos-ai/parley/chatmodel"
	"github.com/stokhos-ai/parley/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PromptTemplate(t *testing.T) {
	tpl, err := prompts.NewPromptTemplate(prompts.DefaultGreetingTemplate, []string{"name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tpl.GetInputVariables())

	out, err := tpl.Format(map[string]any{"name": "Bot"})
	require.NoError(t, err)
	assert.Equal(t, "You are Bot, a helpful and friendly AI assistant.", out)

	_, err = tpl.Format(map[string]any{})
	assert.EqualError(t, err, `missing prompt input variable "name"`)
}

func Test_RenderTranscript(t *testing.T) {
	msgs := []chatmodel.Message{
		chatmodel.NewMessage(chatmodel.RoleSystem, "You are Bot."),
		chatmodel.NewMessage(chatmodel.RoleUser, "calcule 10+2+5"),
	}

	out := prompts.RenderTranscript(msgs, "")
	assert.Equal(t, "system: You are Bot.\nuser: calcule 10+2+5\n\nassistant:", out)

	out = prompts.RenderTranscript(msgs, "\n[SYSTEM] Tool result: 17.")
	assert.Equal(t, "system: You are Bot.\nuser: calcule 10+2+5\n\n[SYSTEM] Tool result: 17.\nassistant:", out)
}

func Test_RenderTranscript_OrderPreserved(t *testing.T) {
	var msgs []chatmodel.Message
	contents := []string{"a", "b", "c", "d"}
	for i, c := range contents {
		role := chatmodel.RoleUser
		if i%2 == 1 {
			role = chatmodel.RoleAssistant
		}
		msgs = append(msgs, chatmodel.NewMessage(role, c))
	}

	out := prompts.RenderTranscript(msgs, "")
	assert.Equal(t, "user: a\nassistant: b\nuser: c\nassistant: d\n\nassistant:", out)
}
