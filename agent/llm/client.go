package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// Client wraps the chat-completion API behind the classifier, generator,
// text-model, and embedder boundaries. One client serves all four; only the
// model name and system prompt differ per role.
type Client struct {
	api     *openaisdk.Client
	cfg     Config
	prompts prompt.PromptSet
}

var (
	_ contractx.Classifier = (*Client)(nil)
	_ contractx.Generator  = (*Client)(nil)
	_ contractx.TextModel  = (*Client)(nil)
	_ contractx.Embedder   = (*Client)(nil)
)

func NewClient(api *openaisdk.Client, cfg Config) (*Client, error) {
	if api == nil {
		return nil, fmt.Errorf("%w: nil api client", contractx.ErrValidation)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{api: api, cfg: cfg, prompts: prompt.LoadPromptSet()}, nil
}

/* ------------------------------- Classifier ------------------------------ */

// Classify never fails: any upstream error or malformed payload maps to the
// safe default classification {Intents: [General]}.
func (c *Client) Classify(ctx context.Context, message string, history []statex.ConversationEntry) contractx.Classification {
	msgs := []openaisdk.ChatCompletionMessageParamUnion{
		openaisdk.SystemMessage(c.prompts.Classifier),
	}
	msgs = append(msgs, toMessages(tail(history, c.cfg.HistoryWindow))...)
	msgs = append(msgs, openaisdk.UserMessage(message))

	raw, err := c.complete(ctx, c.cfg.classifierModel(), msgs, 0)
	if err != nil {
		log.Warn().Err(err).Msg("classification call failed")
		return defaultClassification()
	}
	return decodeClassification(raw)
}

func defaultClassification() contractx.Classification {
	return contractx.Classification{Intents: []statex.Intent{statex.IntentGeneral}}
}

// rawClassification mirrors the JSON the model is asked to emit. Fields are
// loosely typed so a sloppy payload degrades instead of erroring out.
type rawClassification struct {
	Intents any            `json:"intents"`
	Params  map[string]any `json:"params"`
}

// decodeClassification turns model output into a Classification, tolerating
// markdown fences, a bare intent string instead of an array, unknown intent
// names, and stringly-typed numbers. Anything unusable collapses to General.
func decodeClassification(raw string) contractx.Classification {
	var payload rawClassification
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		log.Warn().Err(fmt.Errorf("%w: %v", contractx.ErrSchemaViolation, err)).Msg("classification payload is not valid JSON")
		return defaultClassification()
	}

	var names []string
	switch v := payload.Intents.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
	case string:
		names = append(names, v)
	}

	out := contractx.Classification{Params: make(map[statex.Intent]contractx.ToolParams)}
	seen := make(map[statex.Intent]struct{})
	for _, name := range names {
		intent, ok := canonicalIntent(name)
		if !ok {
			continue
		}
		if _, dup := seen[intent]; dup {
			continue
		}
		seen[intent] = struct{}{}
		out.Intents = append(out.Intents, intent)

		if rawParams, ok := payload.Params[name].(map[string]any); ok {
			out.Params[intent] = paramsFor(intent, rawParams)
		}
	}

	if len(out.Intents) == 0 {
		return defaultClassification()
	}
	return out
}

var knownIntents = []statex.Intent{
	statex.IntentGeneral,
	statex.IntentOrderStatus,
	statex.IntentResolveOrderIssue,
	statex.IntentEarlyRisers,
	statex.IntentHikingRecommendation,
	statex.IntentProductInventory,
	statex.IntentProductRecommendation,
	statex.IntentSearchFAQ,
	statex.IntentHumanHelp,
}

func canonicalIntent(name string) (statex.Intent, bool) {
	trimmed := strings.TrimSpace(name)
	for _, intent := range knownIntents {
		if strings.EqualFold(trimmed, string(intent)) {
			return intent, true
		}
	}
	return "", false
}

// paramsFor decodes the untyped param map into the typed variant for intent.
func paramsFor(intent statex.Intent, raw map[string]any) contractx.ToolParams {
	switch intent {
	case statex.IntentOrderStatus:
		return contractx.OrderStatusParams{
			OrderID: asString(raw["orderId"]),
			Email:   asString(raw["email"]),
		}
	case statex.IntentResolveOrderIssue:
		return contractx.ResolveOrderIssueParams{
			OrderID:         asString(raw["orderId"]),
			Email:           asString(raw["email"]),
			Resolution:      asString(raw["resolution"]),
			Reason:          asString(raw["reason"]),
			ConfidenceScore: asFloat(raw["confidenceScore"]),
		}
	case statex.IntentEarlyRisers:
		return contractx.EarlyRisersParams{ProductName: asString(raw["productName"])}
	case statex.IntentHikingRecommendation:
		return contractx.HikingParams{
			Location:   asString(raw["location"]),
			Difficulty: asString(raw["difficulty"]),
			Length:     asString(raw["length"]),
		}
	case statex.IntentProductInventory:
		return contractx.ProductInventoryParams{
			ProductSKU:  asString(raw["productSku"]),
			ProductName: asString(raw["productName"]),
		}
	case statex.IntentProductRecommendation:
		return contractx.ProductRecommendationParams{Query: asString(raw["query"])}
	case statex.IntentSearchFAQ:
		return contractx.FAQParams{Query: asString(raw["query"])}
	case statex.IntentHumanHelp:
		return contractx.HumanHelpParams{CustomerRequest: asString(raw["customerRequest"])}
	default:
		return contractx.GeneralParams{}
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

/* ------------------------------- Generator ------------------------------- */

// Generate composes the final customer-facing text. On success it appends
// exactly one assistant entry to the transcript; on any failure it returns ""
// and leaves the transcript untouched.
func (c *Client) Generate(ctx context.Context, sess *statex.Session, promptTemplate string, details map[string]any) string {
	system := c.prompts.Generator + "\n\n## Current Task\n" + formatPrompt(promptTemplate, details)

	msgs := toMessages(tail(sess.ConversationHistory(), c.cfg.HistoryWindow))
	msgs = append(msgs, openaisdk.SystemMessage(system))

	text, err := c.complete(ctx, c.cfg.generatorModel(), msgs, c.cfg.Temperature)
	if err != nil {
		log.Warn().Err(err).Msg("response generation failed")
		return ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	sess.AddConversationEntry(statex.RoleAssistant, text)
	return text
}

// formatPrompt appends the merged tool details to the template, one
// "key: value" line each, with slices joined by commas. Keys are sorted so
// the rendered prompt is stable.
func formatPrompt(template string, details map[string]any) string {
	if len(details) == 0 {
		return template
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(template)
	b.WriteString("\n\nKnown details:")
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(renderDetail(details[k]))
	}
	return b.String()
}

func renderDetail(v any) string {
	switch items := v.(type) {
	case []string:
		return strings.Join(items, ", ")
	case []any:
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

/* ------------------------------- Text model ------------------------------ */

func (c *Client) Complete(ctx context.Context, history []statex.ConversationEntry, systemPrompt string) (string, error) {
	msgs := []openaisdk.ChatCompletionMessageParamUnion{
		openaisdk.SystemMessage(systemPrompt),
	}
	msgs = append(msgs, toMessages(tail(history, c.cfg.HistoryWindow))...)
	return c.complete(ctx, c.cfg.generatorModel(), msgs, c.cfg.Temperature)
}

/* -------------------------------- Embedder ------------------------------- */

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Model: openaisdk.EmbeddingModel(c.cfg.EmbeddingModel),
		Input: openaisdk.EmbeddingNewParamsInputUnion{OfString: openaisdk.String(text)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embed: %v", contractx.ErrModelInvoke, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: embed returned no data", contractx.ErrModelInvoke)
	}
	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, f := range resp.Data[0].Embedding {
		vec[i] = float32(f)
	}
	return vec, nil
}

/* -------------------------------- Internals ------------------------------ */

func (c *Client) complete(ctx context.Context, model string, msgs []openaisdk.ChatCompletionMessageParamUnion, temperature float64) (string, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(model),
		Messages: msgs,
	}
	params.Temperature = openaisdk.Float(temperature)
	if c.cfg.MaxCompletionToken > 0 {
		params.MaxTokens = openaisdk.Int(int64(c.cfg.MaxCompletionToken))
	}

	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", contractx.ErrModelInvoke)
	}
	return completion.Choices[0].Message.Content, nil
}

func toMessages(history []statex.ConversationEntry) []openaisdk.ChatCompletionMessageParamUnion {
	msgs := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(history))
	for _, entry := range history {
		switch entry.Role {
		case statex.RoleAssistant:
			msgs = append(msgs, openaisdk.AssistantMessage(entry.Content))
		case statex.RoleSystem:
			msgs = append(msgs, openaisdk.SystemMessage(entry.Content))
		default:
			msgs = append(msgs, openaisdk.UserMessage(entry.Content))
		}
	}
	return msgs
}

func tail(history []statex.ConversationEntry, n int) []statex.ConversationEntry {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// stripFences removes a surrounding markdown code fence from model output.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
