package tool

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// faqTool answers policy questions from the FAQ vector index.
type faqTool struct {
	search contractx.VectorSearcher
}

func (t *faqTool) Name() string { return string(statex.IntentSearchFAQ) }

func (t *faqTool) Description() string {
	return "Answers questions about shipping, returns, and company policies from the FAQ."
}

func (t *faqTool) Execute(ctx context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentSearchFAQ)

	var query string
	if p, ok := params.(contractx.FAQParams); ok {
		query = strings.TrimSpace(p.Query)
	}
	if query == "" || t.search == nil {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.FAQNoMatch(),
		}
	}

	matched, err := t.search.SearchFAQ(ctx, query)
	if err != nil || strings.TrimSpace(matched) == "" {
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("faq search failed")
		}
		return contractx.ToolResult{
			Success:        false,
			Details:        map[string]any{"query": query},
			PromptTemplate: prompt.FAQNoMatch(),
		}
	}

	sess.ResolveIntent(statex.IntentSearchFAQ)
	return contractx.ToolResult{
		Success:        true,
		Details:        map[string]any{"query": query},
		PromptTemplate: prompt.FAQSearchResult(query, matched),
	}
}
