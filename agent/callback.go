package agent

import (
	"context"

	"github.com/stokhos-ai/parley/tools"
)

// Callback receives turn and tool lifecycle notifications.
// All hooks are informational; they cannot alter the turn.
type Callback interface {
	tools.Callback
	OnTurnStart(ctx context.Context, agent *Agent, input string)
	OnTurnEnd(ctx context.Context, agent *Agent, input string, output string)
	// OnGenerationError fires when the backend call fails; the turn still
	// completes with the failure folded into an assistant message.
	OnGenerationError(ctx context.Context, agent *Agent, input string, err error)
}
