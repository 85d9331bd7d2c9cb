package tool

import (
	"context"
	"strings"
	"sync"
	"testing"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

func testOrderCatalog() *fakeCatalog {
	return &fakeCatalog{
		orders: map[string]statex.Order{
			"#W001": {
				OrderNumber:     "#W001",
				Email:           "pat@example.com",
				CustomerName:    "Pat Rivera",
				Status:          "in-transit",
				TrackingNumber:  "9400100000000000000001",
				ProductsOrdered: []string{"SOBP001"},
			},
		},
		products: map[string]statex.Product{
			"SOBP001": {SKU: "SOBP001", ProductName: "Alpine Backpack", Inventory: 12},
		},
	}
}

func TestOrderStatusMissingEverything(t *testing.T) {
	t.Parallel()

	tool := &orderStatusTool{catalog: testOrderCatalog()}
	sess := newTestSession()

	result := tool.Execute(context.Background(), contractx.OrderStatusParams{}, sess)
	if result.Success {
		t.Fatal("expected failure without identifiers")
	}
	if len(result.MissingParams) != 2 {
		t.Fatalf("unexpected missing params: %v", result.MissingParams)
	}
	if got := sess.UnresolvedIntents(); len(got) != 1 || got[0] != statex.IntentOrderStatus {
		t.Fatalf("intent should stay unresolved, got %v", got)
	}
}

func TestOrderStatusIdentifiersAccumulateAcrossTurns(t *testing.T) {
	t.Parallel()

	tool := &orderStatusTool{catalog: testOrderCatalog()}
	sess := newTestSession()

	first := tool.Execute(context.Background(), contractx.OrderStatusParams{OrderID: "w001"}, sess)
	if first.Success {
		t.Fatal("expected failure while email is missing")
	}
	if len(first.MissingParams) != 1 || first.MissingParams[0] != "email" {
		t.Fatalf("unexpected missing params: %v", first.MissingParams)
	}

	second := tool.Execute(context.Background(), contractx.OrderStatusParams{Email: "PAT@example.com"}, sess)
	if !second.Success {
		t.Fatalf("expected success once both identifiers arrived: %+v", second)
	}
	if !strings.Contains(second.PromptTemplate, "#W001") {
		t.Fatalf("template should mention the order: %s", second.PromptTemplate)
	}
	if !strings.Contains(second.PromptTemplate, "Alpine Backpack") {
		t.Fatalf("template should name ordered items: %s", second.PromptTemplate)
	}
	if len(sess.UnresolvedIntents()) != 0 {
		t.Fatal("successful lookup must resolve the intent")
	}
	if sess.OrderInfo() != nil {
		t.Fatal("order info must be cleared after a successful lookup")
	}
	if orders := sess.PastOrders(); len(orders) != 1 || orders[0].OrderNumber != "#W001" {
		t.Fatalf("unexpected past orders: %v", orders)
	}
	if c := sess.CustomerInfo(); c == nil || c.Name != "Pat Rivera" {
		t.Fatalf("customer info not recorded: %+v", c)
	}
}

func TestOrderStatusNormalizesIdentifier(t *testing.T) {
	t.Parallel()

	tool := &orderStatusTool{catalog: testOrderCatalog()}
	sess := newTestSession()

	result := tool.Execute(context.Background(), contractx.OrderStatusParams{
		OrderID: "  w001 ",
		Email:   "Pat@Example.com",
	}, sess)
	if !result.Success {
		t.Fatalf("expected normalized identifiers to match: %+v", result)
	}
}

// Both order-domain tools write the shared order partition; a multi-intent
// turn such as "where's order #W001, I want a refund" runs them in the same
// fan-out, so they must be safe side by side (run with -race).
func TestOrderToolsConcurrentFanOut(t *testing.T) {
	t.Parallel()

	statusTool := &orderStatusTool{catalog: testOrderCatalog()}
	issueTool := &resolveOrderIssueTool{}

	for i := 0; i < 25; i++ {
		sess := newTestSession()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			statusTool.Execute(context.Background(), contractx.OrderStatusParams{
				OrderID: "W001",
				Email:   "pat@example.com",
			}, sess)
		}()
		go func() {
			defer wg.Done()
			issueTool.Execute(context.Background(), contractx.ResolveOrderIssueParams{
				OrderID:    "W001",
				Resolution: "Refund",
				Reason:     "damaged buckle",
			}, sess)
		}()
		wg.Wait()

		if info := sess.OrderInfo(); info != nil && info.OrderNumber != "#W001" && info.OrderNumber != "" {
			t.Fatalf("order partition corrupted: %+v", info)
		}
		if got := sess.UnresolvedIntents(); len(got) != 0 {
			t.Fatalf("both tools succeed, ledger must be empty: %v", got)
		}
	}
}

func TestOrderStatusUnknownOrder(t *testing.T) {
	t.Parallel()

	tool := &orderStatusTool{catalog: testOrderCatalog()}
	sess := newTestSession()

	result := tool.Execute(context.Background(), contractx.OrderStatusParams{
		OrderID: "#W999",
		Email:   "pat@example.com",
	}, sess)
	if result.Success {
		t.Fatal("expected failure for unknown order")
	}
	if !strings.Contains(result.PromptTemplate, "#W999") {
		t.Fatalf("template should echo the order id: %s", result.PromptTemplate)
	}
	if len(sess.UnresolvedIntents()) != 1 {
		t.Fatal("failed lookup must keep the intent unresolved")
	}
}
