package orchestratornode

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// ComposeReply turns the merged tool result into customer-facing text. An
// empty template or a failed generation falls back to the capability menu,
// which is recorded on the transcript so the turn always ends with exactly
// one assistant entry.
func ComposeReply(ctx context.Context, state *GraphState, generator contractx.Generator) (*GraphState, error) {
	if state.Result.PromptTemplate == "" {
		state.Reply = fallbackReply(state.Session)
		return state, nil
	}

	reply := generator.Generate(ctx, state.Session, state.Result.PromptTemplate, state.Result.Details)
	if reply == "" {
		log.Warn().Msg("generation produced no text, using fallback")
		reply = fallbackReply(state.Session)
	}
	state.Reply = reply
	return state, nil
}

func fallbackReply(sess *statex.Session) string {
	sess.AddConversationEntry(statex.RoleAssistant, prompt.GeneralResponse)
	return prompt.GeneralResponse
}
