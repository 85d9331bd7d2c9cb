package prompt

import (
	"fmt"
	"strings"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// Product inventory templates.

func ProductInventoryNoInformation() string {
	return "The customer has not provided any information. Ask them to provide a SKU or product name to check the inventory."
}

func ProductInventoryNotFound(sku string) string {
	return fmt.Sprintf("Tell the customer that no product was found with SKU: %s", sku)
}

func ProductInventoryFound(p statex.Product) string {
	return fmt.Sprintf("Tell the user that the product %s (SKU: %s) has %d units in stock. Ask them if they would like to check the inventory of another product.", p.ProductName, p.SKU, p.Inventory)
}

func ProductInventorySuggestions(products []statex.Product) string {
	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf("%s (SKU: %s) has %d units in stock", p.ProductName, p.SKU, p.Inventory)
	}
	return fmt.Sprintf("Tell the customer that the following products partially match their query: %s.", strings.Join(lines, ", "))
}

// Product recommendation templates.

func ProductRecommendationError() string {
	return "Tell the customer that there was an error recommending a product."
}

func ProductRecommendationFound(matches []contractx.ProductMatch) string {
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("%d. %s (SKU: %s) - %d units in stock", i+1, m.ProductName, m.SKU, m.Inventory)
	}
	return fmt.Sprintf("Based on the customer's preferences, recommend these products:\n%s\n\nAsk if they would like to know more about any of these products or see other recommendations.", strings.Join(lines, "\n"))
}

// ProductSimilarityQuery asks the model for an enriched vector-search query.
func ProductSimilarityQuery(query string, tags []string) string {
	return fmt.Sprintf(`You are an intelligent search assistant. Given the user query: "%s", generate a concise, semantically rich search query.

Use relevant product-related keywords and avoid unnecessary terms.

Use the following tags to generate the search query: %s. Choose the most relevant tags to generate the search query. Return maximum 5 tags, only choose tags that are directly relevant to the user query.

Return only the search query, do not include any other text.`, query, strings.Join(tags, ", "))
}
