package tool

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

const recommendationTopK = 3

// productRecommendationTool finds products by semantic similarity. The raw
// user query is first enriched by the model using the catalog's tag
// vocabulary, then run against the product vector index.
type productRecommendationTool struct {
	catalog contractx.Catalog
	model   contractx.TextModel
	search  contractx.VectorSearcher
}

func (t *productRecommendationTool) Name() string { return string(statex.IntentProductRecommendation) }

func (t *productRecommendationTool) Description() string {
	return "Recommends products matching what the customer is looking for."
}

func (t *productRecommendationTool) Execute(ctx context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentProductRecommendation)

	var query string
	if p, ok := params.(contractx.ProductRecommendationParams); ok {
		query = strings.TrimSpace(p.Query)
	}
	if query == "" || t.search == nil {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.ProductRecommendationError(),
		}
	}

	matches, err := t.search.SearchProducts(ctx, t.enrichQuery(ctx, query), recommendationTopK)
	if err != nil || len(matches) == 0 {
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("product recommendation search failed")
		}
		return contractx.ToolResult{
			Success:        false,
			Details:        map[string]any{"query": query},
			PromptTemplate: prompt.ProductRecommendationError(),
		}
	}

	sess.ResolveIntent(statex.IntentProductRecommendation)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.ProductName
	}
	return contractx.ToolResult{
		Success: true,
		Details: map[string]any{
			"query":    query,
			"products": names,
		},
		PromptTemplate: prompt.ProductRecommendationFound(matches),
	}
}

// enrichQuery rewrites the raw query using catalog tags. Any failure falls
// back to the original query; enrichment improves recall but is never
// required.
func (t *productRecommendationTool) enrichQuery(ctx context.Context, query string) string {
	if t.model == nil || t.catalog == nil {
		return query
	}
	tags, err := t.catalog.UniqueTags(ctx)
	if err != nil || len(tags) == 0 {
		return query
	}
	enriched, err := t.model.Complete(ctx, nil, prompt.ProductSimilarityQuery(query, tags))
	if err != nil || strings.TrimSpace(enriched) == "" {
		return query
	}
	return strings.TrimSpace(enriched)
}
