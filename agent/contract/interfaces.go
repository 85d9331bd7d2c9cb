package contract

import (
	"context"

	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// Tool is the capability that fulfills one intent. Execute is a total
// function: business failures and internal faults alike come back as a
// Success=false ToolResult with a user-facing template, never as a panic or
// error to the caller. A tool must tolerate nil/partial params, must not
// call other tools, and must only mutate its own intent's session partition.
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, params ToolParams, sess *statex.Session) ToolResult
}

// Registry maps intent names to tools. Lookup is case-insensitive; General
// returns the fallback tool used for unknown or absent intents.
type Registry interface {
	Lookup(intent statex.Intent) (Tool, bool)
	General() Tool
}

// Classifier turns raw user text plus recent history into a Classification.
// Implementations never fail: upstream errors and malformed payloads map to
// the safe default {Intents: [General]}.
type Classifier interface {
	Classify(ctx context.Context, message string, history []statex.ConversationEntry) Classification
}

// Generator turns a prompt template plus merged details into the final
// user-facing text. On success it appends exactly one assistant entry to the
// session transcript and returns the text; on any failure it returns "".
type Generator interface {
	Generate(ctx context.Context, sess *statex.Session, promptTemplate string, details map[string]any) string
}

// TextModel is the raw chat-completion boundary used by tools that need a
// model call of their own (trail generation, support-email drafting).
type TextModel interface {
	Complete(ctx context.Context, history []statex.ConversationEntry, systemPrompt string) (string, error)
}

// Embedder converts text into an embedding vector for semantic search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Catalog is the order and product data boundary.
type Catalog interface {
	GetOrder(ctx context.Context, orderNumber, email string) (*statex.Order, error)
	GetProduct(ctx context.Context, sku string) (*statex.Product, error)
	SearchProducts(ctx context.Context, query string) ([]statex.Product, error)
	UniqueTags(ctx context.Context) ([]string, error)
}

// VectorSearcher is the semantic-search boundary over the FAQ and product
// indexes.
type VectorSearcher interface {
	SearchFAQ(ctx context.Context, query string) (string, error)
	SearchProducts(ctx context.Context, query string, topK int) ([]ProductMatch, error)
}

// WeatherService reports current conditions for a free-text location.
type WeatherService interface {
	CurrentConditions(ctx context.Context, location string) (string, error)
}

// Mailer delivers an internal support email drafted for a human handoff.
type Mailer interface {
	SendSupportEmail(ctx context.Context, body, customerID string) error
}
