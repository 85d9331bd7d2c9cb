package tool

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// productInventoryTool answers stock questions. An exact SKU wins; a product
// name falls back to a fuzzy catalog search that may return several
// suggestions.
type productInventoryTool struct {
	catalog contractx.Catalog
}

func (t *productInventoryTool) Name() string { return string(statex.IntentProductInventory) }

func (t *productInventoryTool) Description() string {
	return "Checks how many units of a product are in stock by SKU or name."
}

func (t *productInventoryTool) Execute(ctx context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentProductInventory)

	var sku, name string
	if p, ok := params.(contractx.ProductInventoryParams); ok {
		sku = strings.ToUpper(strings.TrimSpace(p.ProductSKU))
		name = strings.TrimSpace(p.ProductName)
	}

	if sku == "" && name == "" {
		return contractx.ToolResult{
			Success:        false,
			MissingParams:  []string{"productSku", "productName"},
			PromptTemplate: prompt.ProductInventoryNoInformation(),
		}
	}

	if t.catalog == nil {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.ProductInventoryNotFound(sku + name),
		}
	}

	if sku != "" {
		if product, err := t.catalog.GetProduct(ctx, sku); err == nil {
			sess.ResolveIntent(statex.IntentProductInventory)
			return contractx.ToolResult{
				Success: true,
				Details: map[string]any{
					"sku":       product.SKU,
					"product":   product.ProductName,
					"inventory": product.Inventory,
				},
				PromptTemplate: prompt.ProductInventoryFound(*product),
			}
		}
	}

	query := name
	if query == "" {
		query = sku
	}
	matches, err := t.catalog.SearchProducts(ctx, query)
	if err != nil || len(matches) == 0 {
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("product search failed")
		}
		return contractx.ToolResult{
			Success:        false,
			Details:        map[string]any{"query": query},
			PromptTemplate: prompt.ProductInventoryNotFound(query),
		}
	}

	sess.ResolveIntent(statex.IntentProductInventory)
	if len(matches) == 1 {
		p := matches[0]
		return contractx.ToolResult{
			Success: true,
			Details: map[string]any{
				"sku":       p.SKU,
				"product":   p.ProductName,
				"inventory": p.Inventory,
			},
			PromptTemplate: prompt.ProductInventoryFound(p),
		}
	}

	names := make([]string, len(matches))
	for i, p := range matches {
		names[i] = p.ProductName
	}
	return contractx.ToolResult{
		Success: true,
		Details: map[string]any{
			"query":       query,
			"suggestions": names,
		},
		PromptTemplate: prompt.ProductInventorySuggestions(matches),
	}
}
