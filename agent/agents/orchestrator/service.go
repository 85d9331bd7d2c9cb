package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	nodex "github.com/claraeverett/Sierra-Agent/agent/nodes/orchestrator"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrNilSession     = nodex.ErrNilSession
)

const defaultToolTimeout = 15 * time.Second

type Config struct {
	// ToolTimeout bounds each tool execution within a turn; zero means the
	// default.
	ToolTimeout time.Duration
}

// Orchestrator runs the classify, dispatch, compose pipeline for one turn.
// The caller owns session lookup and turn serialization; the orchestrator
// assumes exclusive access to the session it is handed.
type Orchestrator struct {
	classifier contractx.Classifier
	generator  contractx.Generator
	registry   contractx.Registry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	toolTimeout time.Duration
	now         func() time.Time
}

func New(
	classifier contractx.Classifier,
	generator contractx.Generator,
	registry contractx.Registry,
	cfg Config,
) (*Orchestrator, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}

	toolTimeout := cfg.ToolTimeout
	if toolTimeout <= 0 {
		toolTimeout = defaultToolTimeout
	}

	o := &Orchestrator{
		classifier:  classifier,
		generator:   generator,
		registry:    registry,
		toolTimeout: toolTimeout,
		now:         time.Now,
	}

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleMessage classifies and answers one raw user message.
func (o *Orchestrator) HandleMessage(ctx context.Context, sess *statex.Session, text string) (string, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		Session: sess,
		Text:    text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

// HandleRequest answers a message that has already been classified, skipping
// the classification call.
func (o *Orchestrator) HandleRequest(ctx context.Context, sess *statex.Session, classification contractx.Classification, text string) (string, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		Session:        sess,
		Text:           text,
		Classification: &classification,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
