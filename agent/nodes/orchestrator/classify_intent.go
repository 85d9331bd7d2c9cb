package orchestratornode

import (
	"context"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// ClassifyIntent fills in the classification for this turn. A classification
// supplied with the input is passed through untouched; otherwise the
// classifier runs against the transcript as it stood before this message.
// Either way the node guarantees a non-empty intent list.
func ClassifyIntent(ctx context.Context, state *GraphState, classifier contractx.Classifier) (*GraphState, error) {
	if len(state.Classification.Intents) == 0 {
		state.Classification = classifier.Classify(ctx, state.Text, state.Session.ConversationHistory())
	}
	if len(state.Classification.Intents) == 0 {
		state.Classification.Intents = []statex.Intent{statex.IntentGeneral}
	}
	return state, nil
}
