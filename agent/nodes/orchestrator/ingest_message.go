package orchestratornode

import (
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// IngestMessage appends the user message to the transcript. Runs after
// classification, which receives the message separately so the history it
// sees is the conversation as it stood before this turn.
func IngestMessage(state *GraphState) (*GraphState, error) {
	state.Session.AddConversationEntry(statex.RoleUser, state.Text)
	return state, nil
}
