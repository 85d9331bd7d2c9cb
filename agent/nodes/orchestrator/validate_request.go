package orchestratornode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrNilSession     = errors.New("session is required")
)

// GraphInput starts one turn. Classification is optional: when the caller
// already classified the message the classify node passes it through instead
// of calling the model again.
type GraphInput struct {
	Session        *statex.Session
	Text           string
	Classification *contractx.Classification
}

type GraphOutput struct {
	Reply string
}

// GraphState is threaded through every node of the turn.
type GraphState struct {
	Session *statex.Session
	Text    string
	Now     time.Time

	Classification contractx.Classification
	Result         contractx.ToolResult
	Reply          string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	if in.Session == nil {
		return nil, ErrNilSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	state := &GraphState{
		Session: in.Session,
		Text:    text,
		Now:     nowFn().UTC(),
	}
	if in.Classification != nil {
		state.Classification = *in.Classification
	}
	return state, nil
}
