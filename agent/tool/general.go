package tool

import (
	"context"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// generalTool is the fallback for messages that match no specific intent.
// It always succeeds: either it nudges the customer back to open threads or
// it presents the capability menu.
type generalTool struct{}

func (t *generalTool) Name() string { return string(statex.IntentGeneral) }

func (t *generalTool) Description() string {
	return "Handles greetings, chit-chat, and anything no other tool covers."
}

func (t *generalTool) Execute(_ context.Context, _ contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	if unresolved := sess.UnresolvedIntents(); len(unresolved) > 0 {
		return contractx.ToolResult{
			Success:        true,
			Details:        map[string]any{"unresolvedIntents": intentNames(unresolved)},
			PromptTemplate: prompt.UnresolvedIntentsPrompt(unresolved),
		}
	}
	return contractx.ToolResult{
		Success:        true,
		PromptTemplate: prompt.GeneralResponse,
	}
}

func intentNames(intents []statex.Intent) []string {
	out := make([]string, len(intents))
	for i, intent := range intents {
		out[i] = string(intent)
	}
	return out
}
