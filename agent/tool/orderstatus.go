package tool

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// orderStatusTool looks up an order by number and email. Identifiers arrive
// across turns: each call merges whatever the classifier extracted into the
// order partition, and the lookup runs only once both pieces are present.
type orderStatusTool struct {
	catalog contractx.Catalog
}

func (t *orderStatusTool) Name() string { return string(statex.IntentOrderStatus) }

func (t *orderStatusTool) Description() string {
	return "Checks order status and tracking using an order number and the associated email."
}

func (t *orderStatusTool) Execute(ctx context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentOrderStatus)

	var orderID, email string
	if p, ok := params.(contractx.OrderStatusParams); ok {
		orderID = normalizeOrderID(p.OrderID)
		email = strings.ToLower(strings.TrimSpace(p.Email))
	}
	sess.UpdateOrderInfo(statex.Order{OrderNumber: orderID, Email: email})

	info := sess.OrderInfo()
	switch {
	case info == nil || (info.OrderNumber == "" && info.Email == ""):
		return contractx.ToolResult{
			Success:        false,
			MissingParams:  []string{"orderId", "email"},
			PromptTemplate: prompt.OrderStatusNoIDNoEmail(),
		}
	case info.Email == "":
		return contractx.ToolResult{
			Success:        false,
			Details:        map[string]any{"orderId": info.OrderNumber},
			MissingParams:  []string{"email"},
			PromptTemplate: prompt.OrderStatusNoEmail(info.OrderNumber),
		}
	case info.OrderNumber == "":
		return contractx.ToolResult{
			Success:        false,
			Details:        map[string]any{"email": info.Email},
			MissingParams:  []string{"orderId"},
			PromptTemplate: prompt.OrderStatusNoID(info.Email),
		}
	}

	if t.catalog == nil {
		return contractx.ToolResult{
			Success:        false,
			PromptTemplate: prompt.OrderStatusInvalidOrder(info.OrderNumber, info.Email),
		}
	}

	order, err := t.catalog.GetOrder(ctx, info.OrderNumber, info.Email)
	if err != nil {
		log.Warn().Err(err).Str("order", info.OrderNumber).Msg("order lookup failed")
		return contractx.ToolResult{
			Success:        false,
			Details:        map[string]any{"orderId": info.OrderNumber, "email": info.Email},
			PromptTemplate: prompt.OrderStatusInvalidOrder(info.OrderNumber, info.Email),
		}
	}

	sess.ResolveIntent(statex.IntentOrderStatus)
	sess.AddPastOrder(*order)
	sess.UpdateCustomerInfo(order.CustomerName, order.Email)
	sess.ClearOrderInfo()

	items := t.itemNames(ctx, order.ProductsOrdered)
	return contractx.ToolResult{
		Success: true,
		Details: map[string]any{
			"orderId":        order.OrderNumber,
			"status":         order.Status,
			"items":          items,
			"trackingNumber": order.TrackingNumber,
		},
		PromptTemplate: prompt.OrderStatusSuccess(order.OrderNumber, order.Status, strings.Join(items, ", "), order.TrackingNumber),
	}
}

// itemNames resolves ordered SKUs into product names, falling back to the
// raw SKU when the catalog has no record.
func (t *orderStatusTool) itemNames(ctx context.Context, skus []string) []string {
	names := make([]string, 0, len(skus))
	for _, sku := range skus {
		if p, err := t.catalog.GetProduct(ctx, sku); err == nil {
			names = append(names, p.ProductName)
			continue
		}
		names = append(names, sku)
	}
	return names
}

// normalizeOrderID uppercases the identifier and ensures the leading "#"
// customers often omit.
func normalizeOrderID(raw string) string {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return ""
	}
	if !strings.HasPrefix(id, "#") {
		id = "#" + id
	}
	return id
}
