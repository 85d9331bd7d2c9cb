package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// Memory is a seeded in-process catalog used for demos and tests, and as the
// fallback when no database DSN is configured.
type Memory struct {
	orders   map[string]statex.Order
	products map[string]statex.Product
}

var _ contractx.Catalog = (*Memory)(nil)

// NewMemory returns a catalog preloaded with the demo dataset.
func NewMemory() *Memory {
	m := &Memory{
		orders:   make(map[string]statex.Order),
		products: make(map[string]statex.Product),
	}
	for _, p := range seedProducts {
		m.products[p.SKU] = p
	}
	for _, o := range seedOrders {
		m.orders[o.OrderNumber] = o
	}
	return m
}

func (m *Memory) GetOrder(_ context.Context, orderNumber, email string) (*statex.Order, error) {
	o, ok := m.orders[strings.ToUpper(strings.TrimSpace(orderNumber))]
	if !ok || !strings.EqualFold(o.Email, strings.TrimSpace(email)) {
		return nil, fmt.Errorf("%w: %s", contractx.ErrOrderNotFound, orderNumber)
	}
	out := o
	return &out, nil
}

func (m *Memory) GetProduct(_ context.Context, sku string) (*statex.Product, error) {
	p, ok := m.products[strings.ToUpper(strings.TrimSpace(sku))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrProductNotFound, sku)
	}
	out := p
	return &out, nil
}

func (m *Memory) SearchProducts(_ context.Context, query string) ([]statex.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}
	var out []statex.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.ProductName), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (m *Memory) UniqueTags(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, p := range m.products {
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

var seedProducts = []statex.Product{
	{SKU: "SOBP001", ProductName: "Alpine Explorer Backpack", Description: "A 45L pack built for multi-day treks.", Tags: []string{"backpack", "hiking", "camping"}, Inventory: 24},
	{SKU: "SOBT002", ProductName: "Summit Ridge Hiking Boots", Description: "Waterproof boots with aggressive tread.", Tags: []string{"boots", "hiking", "waterproof"}, Inventory: 41},
	{SKU: "SOTN003", ProductName: "Starlight 2-Person Tent", Description: "Lightweight three-season tent.", Tags: []string{"tent", "camping", "lightweight"}, Inventory: 12},
	{SKU: "SOJK004", ProductName: "Cascade Rain Shell", Description: "Packable rain jacket for sudden storms.", Tags: []string{"jacket", "rain", "hiking"}, Inventory: 57},
	{SKU: "SOSB005", ProductName: "Glacier Insulated Bottle", Description: "Keeps drinks cold for 24 hours on the trail.", Tags: []string{"bottle", "hydration", "hiking"}, Inventory: 103},
	{SKU: "SOHL006", ProductName: "Trailblazer Headlamp", Description: "400-lumen rechargeable headlamp.", Tags: []string{"headlamp", "lighting", "camping"}, Inventory: 66},
	{SKU: "SOSL007", ProductName: "Ridgeline Sleeping Bag", Description: "20F down sleeping bag for cold nights.", Tags: []string{"sleeping bag", "camping", "cold weather"}, Inventory: 18},
	{SKU: "SOPT008", ProductName: "Switchback Trekking Poles", Description: "Collapsible carbon trekking poles, sold as a pair.", Tags: []string{"poles", "hiking", "lightweight"}, Inventory: 35},
}

var seedOrders = []statex.Order{
	{
		OrderNumber:     "#W001",
		Email:           "pat.rivera@example.com",
		CustomerName:    "Pat Rivera",
		Status:          "in-transit",
		TrackingNumber:  "9400100000000000000001",
		ProductsOrdered: []string{"SOBP001", "SOSB005"},
	},
	{
		OrderNumber:     "#W002",
		Email:           "jordan.lee@example.com",
		CustomerName:    "Jordan Lee",
		Status:          "delivered",
		TrackingNumber:  "9400100000000000000002",
		ProductsOrdered: []string{"SOBT002"},
	},
	{
		OrderNumber:     "#W003",
		Email:           "sam.taylor@example.com",
		CustomerName:    "Sam Taylor",
		Status:          "processing",
		ProductsOrdered: []string{"SOTN003", "SOSL007", "SOHL006"},
	},
	{
		OrderNumber:     "#W004",
		Email:           "casey.morgan@example.com",
		CustomerName:    "Casey Morgan",
		Status:          "error",
		ProductsOrdered: []string{"SOJK004"},
	},
}
