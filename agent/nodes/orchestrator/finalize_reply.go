package orchestratornode

func FinalizeReply(state *GraphState) (GraphOutput, error) {
	return GraphOutput{Reply: state.Reply}, nil
}
