package tool

import (
	"context"
	"strings"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

// resolveOrderIssueTool handles complaints about a received order. The
// classifier proposes a resolution (Refund, Replacement, Repair, Other) with
// a confidence score; this tool routes that proposal to the right template.
type resolveOrderIssueTool struct{}

func (t *resolveOrderIssueTool) Name() string { return string(statex.IntentResolveOrderIssue) }

func (t *resolveOrderIssueTool) Description() string {
	return "Resolves issues with a delivered order: refunds, replacements, and repairs."
}

func (t *resolveOrderIssueTool) Execute(_ context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentResolveOrderIssue)

	p, _ := params.(contractx.ResolveOrderIssueParams)
	orderID := normalizeOrderID(p.OrderID)
	email := strings.ToLower(strings.TrimSpace(p.Email))
	resolution := strings.TrimSpace(p.Resolution)

	details := map[string]any{
		"orderId":         orderID,
		"email":           email,
		"resolution":      resolution,
		"reason":          p.Reason,
		"confidenceScore": p.ConfidenceScore,
	}

	switch strings.ToLower(resolution) {
	case "refund", "replacement", "repair":
		if orderID == "" {
			return contractx.ToolResult{
				Success:        false,
				Details:        details,
				MissingParams:  []string{"orderId"},
				PromptTemplate: prompt.ResolveOrderIssueNoOrderID(resolution),
			}
		}
		sess.UpdateOrderInfo(statex.Order{OrderNumber: orderID, Email: email})
		sess.ResolveIntent(statex.IntentResolveOrderIssue)
		return contractx.ToolResult{
			Success:        true,
			Details:        details,
			PromptTemplate: prompt.ResolveOrderIssueGeneral(orderID, email, resolution, p.ConfidenceScore, p.Reason),
		}
	default:
		sess.ResolveIntent(statex.IntentResolveOrderIssue)
		return contractx.ToolResult{
			Success:        true,
			Details:        details,
			PromptTemplate: prompt.ResolveOrderIssueOther(),
		}
	}
}
