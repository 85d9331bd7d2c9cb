package contract

import (
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// Classification is the structured result of intent classification for one
// user message. Intents is never empty; a malformed or empty upstream result
// is coerced to [General] at the classifier boundary. Params carries one
// typed parameter record per classified intent; absent entries mean "no
// parameters extracted".
type Classification struct {
	Intents []statex.Intent              `json:"intents"`
	Params  map[statex.Intent]ToolParams `json:"params,omitempty"`
}

// ParamsFor returns the parameter record classified for intent, or nil when
// none were extracted. Tools must tolerate nil.
func (c Classification) ParamsFor(intent statex.Intent) ToolParams {
	if c.Params == nil {
		return nil
	}
	return c.Params[intent]
}

// ToolParams is a tagged union of per-intent parameter records. The
// classifier boundary decodes untyped model JSON into exactly one variant
// per intent, so validation lives in one place instead of in every tool.
type ToolParams interface {
	isToolParams()
}

type GeneralParams struct{}

type OrderStatusParams struct {
	OrderID string `json:"orderId,omitempty"`
	Email   string `json:"email,omitempty"`
}

type ResolveOrderIssueParams struct {
	OrderID         string  `json:"orderId,omitempty"`
	Email           string  `json:"email,omitempty"`
	Resolution      string  `json:"resolution,omitempty"`
	Reason          string  `json:"reason,omitempty"`
	ConfidenceScore float64 `json:"confidenceScore,omitempty"`
}

type EarlyRisersParams struct {
	ProductName string `json:"productName,omitempty"`
}

type HikingParams struct {
	Location   string `json:"location,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Length     string `json:"length,omitempty"`
}

type ProductInventoryParams struct {
	ProductSKU  string `json:"productSku,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

type ProductRecommendationParams struct {
	Query string `json:"query,omitempty"`
}

type FAQParams struct {
	Query string `json:"query,omitempty"`
}

type HumanHelpParams struct {
	CustomerRequest string `json:"customerRequest,omitempty"`
}

func (GeneralParams) isToolParams()               {}
func (OrderStatusParams) isToolParams()           {}
func (ResolveOrderIssueParams) isToolParams()     {}
func (EarlyRisersParams) isToolParams()           {}
func (HikingParams) isToolParams()                {}
func (ProductInventoryParams) isToolParams()      {}
func (ProductRecommendationParams) isToolParams() {}
func (FAQParams) isToolParams()                   {}
func (HumanHelpParams) isToolParams()             {}

// ToolResult is what every tool execution produces. PromptTemplate is always
// present, even on failure; Success=false means the business action could
// not complete, not that the conversation stops.
type ToolResult struct {
	Success        bool           `json:"success"`
	Details        map[string]any `json:"details,omitempty"`
	MissingParams  []string       `json:"missing_params,omitempty"`
	PromptTemplate string         `json:"prompt_template"`
}

// ProductMatch is one scored hit from the product vector index.
type ProductMatch struct {
	SKU         string   `json:"sku"`
	ProductName string   `json:"product_name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Inventory   int      `json:"inventory"`
	Score       float32  `json:"score"`
}
