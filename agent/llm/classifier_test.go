package llm

import (
	"testing"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

func TestDecodeClassificationSingleIntent(t *testing.T) {
	t.Parallel()

	c := decodeClassification(`{"intents": ["OrderStatus"], "params": {"OrderStatus": {"orderId": "W001", "email": "pat@example.com"}}}`)
	if len(c.Intents) != 1 || c.Intents[0] != statex.IntentOrderStatus {
		t.Fatalf("unexpected intents: %v", c.Intents)
	}
	p, ok := c.ParamsFor(statex.IntentOrderStatus).(contractx.OrderStatusParams)
	if !ok {
		t.Fatalf("unexpected params type: %T", c.ParamsFor(statex.IntentOrderStatus))
	}
	if p.OrderID != "W001" || p.Email != "pat@example.com" {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestDecodeClassificationMultiIntent(t *testing.T) {
	t.Parallel()

	c := decodeClassification(`{"intents": ["EarlyRisers", "HikingRecommendation"], "params": {"HikingRecommendation": {"location": "Boulder, CO"}}}`)
	if len(c.Intents) != 2 {
		t.Fatalf("unexpected intents: %v", c.Intents)
	}
	if c.Intents[0] != statex.IntentEarlyRisers || c.Intents[1] != statex.IntentHikingRecommendation {
		t.Fatalf("intent order not preserved: %v", c.Intents)
	}
	p, ok := c.ParamsFor(statex.IntentHikingRecommendation).(contractx.HikingParams)
	if !ok || p.Location != "Boulder, CO" {
		t.Fatalf("unexpected hiking params: %+v", p)
	}
}

func TestDecodeClassificationMarkdownFences(t *testing.T) {
	t.Parallel()

	c := decodeClassification("```json\n{\"intents\": [\"SearchFAQ\"], \"params\": {\"SearchFAQ\": {\"query\": \"returns\"}}}\n```")
	if len(c.Intents) != 1 || c.Intents[0] != statex.IntentSearchFAQ {
		t.Fatalf("fenced payload not decoded: %v", c.Intents)
	}
}

func TestDecodeClassificationBareStringIntent(t *testing.T) {
	t.Parallel()

	c := decodeClassification(`{"intents": "General"}`)
	if len(c.Intents) != 1 || c.Intents[0] != statex.IntentGeneral {
		t.Fatalf("bare string intent not coerced: %v", c.Intents)
	}
}

func TestDecodeClassificationGarbageFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	cases := []string{
		"not json at all",
		`{"intents": []}`,
		`{"intents": ["BookAFlight"]}`,
		`{"intents": [42]}`,
	}
	for _, raw := range cases {
		c := decodeClassification(raw)
		if len(c.Intents) != 1 || c.Intents[0] != statex.IntentGeneral {
			t.Fatalf("raw %q: expected General fallback, got %v", raw, c.Intents)
		}
	}
}

func TestDecodeClassificationCaseInsensitiveNames(t *testing.T) {
	t.Parallel()

	c := decodeClassification(`{"intents": ["orderstatus"], "params": {"orderstatus": {"orderId": "W001"}}}`)
	if len(c.Intents) != 1 || c.Intents[0] != statex.IntentOrderStatus {
		t.Fatalf("case-insensitive intent not matched: %v", c.Intents)
	}
	if _, ok := c.ParamsFor(statex.IntentOrderStatus).(contractx.OrderStatusParams); !ok {
		t.Fatal("params must be keyed by canonical intent")
	}
}

func TestDecodeClassificationStringlyTypedConfidence(t *testing.T) {
	t.Parallel()

	c := decodeClassification(`{"intents": ["ResolveOrderIssue"], "params": {"ResolveOrderIssue": {"resolution": "Refund", "confidenceScore": "85"}}}`)
	p, ok := c.ParamsFor(statex.IntentResolveOrderIssue).(contractx.ResolveOrderIssueParams)
	if !ok {
		t.Fatalf("unexpected params type")
	}
	if p.ConfidenceScore != 85 {
		t.Fatalf("confidence not coerced: %v", p.ConfidenceScore)
	}
}

func TestDecodeClassificationDeduplicatesIntents(t *testing.T) {
	t.Parallel()

	c := decodeClassification(`{"intents": ["General", "general", "General"]}`)
	if len(c.Intents) != 1 {
		t.Fatalf("duplicate intents not collapsed: %v", c.Intents)
	}
}
