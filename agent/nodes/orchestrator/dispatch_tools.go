package orchestratornode

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// DispatchTools executes one tool per classified intent. A single intent runs
// inline; multiple intents fan out concurrently, each under its own deadline.
// The merged result follows intent order: details come from successful tools
// only (later tools win key conflicts), templates from every tool, and the
// turn counts as successful when at least one tool succeeded. When every
// tool fails the merged result falls back to the capability menu.
func DispatchTools(ctx context.Context, state *GraphState, registry contractx.Registry, timeout time.Duration) (*GraphState, error) {
	intents := state.Classification.Intents

	if len(intents) == 1 {
		state.Result = runTool(ctx, registry, intents[0], state.Classification.ParamsFor(intents[0]), state.Session, timeout)
		return state, nil
	}

	results := make([]contractx.ToolResult, len(intents))
	done := make(chan int, len(intents))
	for i, intent := range intents {
		go func(i int, intent statex.Intent) {
			results[i] = runTool(ctx, registry, intent, state.Classification.ParamsFor(intent), state.Session, timeout)
			done <- i
		}(i, intent)
	}
	for range intents {
		<-done
	}

	state.Result = mergeResults(results)
	return state, nil
}

func runTool(ctx context.Context, registry contractx.Registry, intent statex.Intent, params contractx.ToolParams, sess *statex.Session, timeout time.Duration) contractx.ToolResult {
	tool, ok := registry.Lookup(intent)
	if !ok {
		log.Debug().Str("intent", string(intent)).Msg("no tool for intent, using general")
		tool = registry.General()
	}

	toolCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		toolCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resultCh := make(chan contractx.ToolResult, 1)
	go func() {
		resultCh <- tool.Execute(toolCtx, params, sess)
	}()

	select {
	case result := <-resultCh:
		return result
	case <-toolCtx.Done():
		log.Warn().Str("tool", tool.Name()).Dur("timeout", timeout).Msg("tool deadline exceeded")
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.ToolTimeoutPrompt(intent),
		}
	}
}

func mergeResults(results []contractx.ToolResult) contractx.ToolResult {
	merged := contractx.ToolResult{}
	templates := make([]string, 0, len(results))

	for _, r := range results {
		if r.PromptTemplate != "" {
			templates = append(templates, r.PromptTemplate)
		}
		merged.MissingParams = append(merged.MissingParams, r.MissingParams...)
		if !r.Success {
			continue
		}
		merged.Success = true
		for k, v := range r.Details {
			if merged.Details == nil {
				merged.Details = make(map[string]any)
			}
			merged.Details[k] = v
		}
	}

	if !merged.Success {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.GeneralResponse,
		}
	}

	merged.PromptTemplate = strings.Join(templates, "\n")
	return merged
}
