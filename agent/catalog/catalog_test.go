package catalog

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
)

func TestMemoryGetOrder(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	order, err := m.GetOrder(context.Background(), "#w001", "Pat.Rivera@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CustomerName != "Pat Rivera" || order.Status != "in-transit" {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestMemoryGetOrderWrongEmail(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	_, err := m.GetOrder(context.Background(), "#W001", "someone.else@example.com")
	if !errors.Is(err, contractx.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestMemoryGetProduct(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	p, err := m.GetProduct(context.Background(), "sobp001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ProductName != "Alpine Explorer Backpack" {
		t.Fatalf("unexpected product: %+v", p)
	}

	if _, err := m.GetProduct(context.Background(), "NOPE999"); !errors.Is(err, contractx.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestMemorySearchProducts(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	matches, err := m.SearchProducts(context.Background(), "boot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].SKU != "SOBT002" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	none, err := m.SearchProducts(context.Background(), "")
	if err != nil || none != nil {
		t.Fatalf("empty query must match nothing, got %v %v", none, err)
	}
}

func TestMemoryUniqueTags(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	tags, err := m.UniqueTags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) == 0 {
		t.Fatal("expected seeded tags")
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			t.Fatalf("duplicate tag %q", tag)
		}
		seen[tag] = struct{}{}
	}
	if _, ok := seen["hiking"]; !ok {
		t.Fatalf("expected hiking tag in %v", tags)
	}
}
