package tool

import (
	"context"
	"math/rand/v2"
	"time"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	"github.com/claraeverett/Sierra-Agent/agent/prompt"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

const (
	earlyRisersDiscount  = "10%"
	earlyRisersStartHour = 8
	earlyRisersEndHour   = 10
	promoCodeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	promoCodeSuffixLen   = 5
)

// earlyRisersTimezone anchors the promotion window to Pacific time no matter
// where the service runs.
var earlyRisersTimezone = mustLoadLocation("America/Los_Angeles")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("load timezone " + name + ": " + err.Error())
	}
	return loc
}

// earlyRisersTool issues the Early Risers discount code, valid only between
// 8:00 and 10:00 AM Pacific. One code per session per day; a second request
// inside the window returns the existing code instead of minting a new one.
type earlyRisersTool struct {
	now func() time.Time
}

func (t *earlyRisersTool) Name() string { return string(statex.IntentEarlyRisers) }

func (t *earlyRisersTool) Description() string {
	return "Issues the Early Risers promotion code during the morning window."
}

func (t *earlyRisersTool) Execute(_ context.Context, params contractx.ToolParams, sess *statex.Session) contractx.ToolResult {
	sess.AddUnresolvedIntent(statex.IntentEarlyRisers)

	now := t.now().In(earlyRisersTimezone)
	if now.Hour() < earlyRisersStartHour || now.Hour() >= earlyRisersEndHour {
		return contractx.ToolResult{
			Success: false,
			Details: map[string]any{
				"currentTime":   now.Format("3:04 PM MST"),
				"nextValidTime": nextWindowOpen(now).Format("Monday 3:04 PM MST"),
			},
			PromptTemplate: prompt.EarlyRisersInvalidTime(
				now.Format("3:04 PM MST"),
				nextWindowOpen(now).Format("Monday 3:04 PM MST"),
			),
		}
	}

	if existing := sess.PromoCode(); existing != nil && sameLocalDay(existing.CreatedAt.In(earlyRisersTimezone), now) {
		sess.ResolveIntent(statex.IntentEarlyRisers)
		return contractx.ToolResult{
			Success: true,
			Details: map[string]any{
				"promoCode": existing.Code,
				"discount":  earlyRisersDiscount,
			},
			PromptTemplate: prompt.EarlyRisersExistingCode(existing.Code, earlyRisersDiscount, earlyRisersEndHour),
		}
	}

	var productName string
	if p, ok := params.(contractx.EarlyRisersParams); ok {
		productName = p.ProductName
	}

	code := newPromoCode()
	sess.UpdatePromoCode(statex.PromoCode{
		Code:        code,
		CreatedAt:   t.now(),
		ProductName: productName,
	})
	sess.ResolveIntent(statex.IntentEarlyRisers)

	return contractx.ToolResult{
		Success: true,
		Details: map[string]any{
			"promoCode": code,
			"discount":  earlyRisersDiscount,
		},
		PromptTemplate: prompt.EarlyRisersNewCode(code, earlyRisersDiscount),
	}
}

// newPromoCode mints EARLY plus five characters from an alphabet that avoids
// ambiguous glyphs.
func newPromoCode() string {
	suffix := make([]byte, promoCodeSuffixLen)
	for i := range suffix {
		suffix[i] = promoCodeAlphabet[rand.IntN(len(promoCodeAlphabet))]
	}
	return "EARLY" + string(suffix)
}

// nextWindowOpen returns the next 8:00 AM Pacific after now: today if the
// window has not opened yet, otherwise tomorrow.
func nextWindowOpen(now time.Time) time.Time {
	open := time.Date(now.Year(), now.Month(), now.Day(), earlyRisersStartHour, 0, 0, 0, earlyRisersTimezone)
	if !now.Before(open) {
		open = open.AddDate(0, 0, 1)
	}
	return open
}

func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
