package agent_test

import (
	"context"
	"testing"

	"github.com/stokhos-ai/parley/agent"
	"github.com/stokhos-ai/parley/llms"
	"github.com/stokhos-ai/parley/mocks/mockllms"
	"github.com/stokhos-ai/parley/mocks/mocktools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_StripTrigger(t *testing.T) {
	tcases := []struct {
		message string
		trigger string
		exp     string
	}{
		{"pesquisar gatos", "pesquisar", "gatos"},
		{"Pesquisar gatos e cães", "pesquisar", "gatos e cães"},
		{"search for the meaning of life", "search", "for the meaning of life"},
		{"pesquisar", "pesquisar", ""},
		{"me ajude a pesquisar sobre pesquisar", "pesquisar", "me ajude a  sobre"},
		{"sem gatilho aqui", "pesquisar", "sem gatilho aqui"},
	}
	for _, tc := range tcases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.exp, agent.StripTrigger(tc.message, tc.trigger))
		})
	}
}

func Test_DefaultDispatchRules(t *testing.T) {
	rules := agent.DefaultDispatchRules()
	require.Len(t, rules, 2)

	compute, search := rules[0], rules[1]
	assert.Equal(t, "calculate", compute.Tool)
	assert.True(t, compute.Recoverable)
	assert.Equal(t, "search", search.Tool)
	assert.False(t, search.Recoverable)

	input, err := compute.BuildInput("calcule 10+2+5", "calcul")
	require.NoError(t, err)
	assert.JSONEq(t, `{"expression":"calcule 10+2+5"}`, input)

	input, err = search.BuildInput("Pesquisar gatos", "pesquisar")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"gatos"}`, input)
}

func Test_Agent_CustomDispatchRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLLM := mockllms.NewMockModel(ctrl)

	weather := mocktools.NewMockITool(ctrl)
	weather.EXPECT().Name().Return("weather").AnyTimes()
	weather.EXPECT().Call(gomock.Any(), `{"city":"qual o tempo em Lisboa"}`).
		Return("22C, sunny", nil)

	rules := []agent.DispatchRule{{
		Triggers: []string{"tempo", "weather"},
		Tool:     "weather",
		BuildInput: func(message, _ string) (string, error) {
			return `{"city":"` + message + `"}`, nil
		},
		FormatResult: func(result string) string {
			return "\n[SYSTEM] Weather: " + result
		},
		Recoverable: false,
	}}

	a, err := agent.New(mockLLM, agent.Config{Name: "Bot", Temperature: 0.5},
		agent.WithDispatchRules(rules...))
	require.NoError(t, err)
	a.RegisterTool(weather)

	var prompt string
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p string, _ ...llms.CallOption) (string, error) {
			prompt = p
			return "Está sol em Lisboa.", nil
		})

	_, err = a.ProcessTurn(context.Background(), "qual o tempo em Lisboa")
	require.NoError(t, err)
	assert.Contains(t, prompt, "[SYSTEM] Weather: 22C, sunny")
}

func Test_Agent_DispatchFallsThroughUnregisteredTool(t *testing.T) {
	// the first rule's trigger matches but its tool is not registered, so
	// evaluation continues and the second rule fires
	ctrl := gomock.NewController(t)
	mockLLM := mockllms.NewMockModel(ctrl)

	fallback := mocktools.NewMockITool(ctrl)
	fallback.EXPECT().Name().Return("fallback").AnyTimes()
	fallback.EXPECT().Call(gomock.Any(), gomock.Any()).Return("handled", nil)

	rules := []agent.DispatchRule{
		{
			Triggers:     []string{"olá"},
			Tool:         "missing",
			BuildInput:   func(message, _ string) (string, error) { return message, nil },
			FormatResult: func(result string) string { return result },
		},
		{
			Triggers:     []string{"olá"},
			Tool:         "fallback",
			BuildInput:   func(message, _ string) (string, error) { return message, nil },
			FormatResult: func(result string) string { return "\n[SYSTEM] " + result },
		},
	}

	a, err := agent.New(mockLLM, agent.Config{Name: "Bot", Temperature: 0.5},
		agent.WithDispatchRules(rules...))
	require.NoError(t, err)
	a.RegisterTool(fallback)

	var prompt string
	mockLLM.EXPECT().GenerateContent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p string, _ ...llms.CallOption) (string, error) {
			prompt = p
			return "oi", nil
		})

	_, err = a.ProcessTurn(context.Background(), "olá")
	require.NoError(t, err)
	assert.Contains(t, prompt, "[SYSTEM] handled")
}
