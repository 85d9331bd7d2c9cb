package state

import (
	"fmt"
	"testing"
	"time"
)

func newSession() *Session {
	return NewSession("user-1", "session-1", time.Now())
}

func TestConversationWindowTrims(t *testing.T) {
	t.Parallel()

	s := newSession()
	for i := 0; i < maxConversationEntries+10; i++ {
		s.AddConversationEntry(RoleUser, fmt.Sprintf("message %d", i))
	}

	history := s.ConversationHistory()
	if len(history) != maxConversationEntries {
		t.Fatalf("expected %d entries, got %d", maxConversationEntries, len(history))
	}
	if history[0].Content != "message 10" {
		t.Fatalf("oldest entries must drop first, got %q", history[0].Content)
	}
	if history[len(history)-1].Content != fmt.Sprintf("message %d", maxConversationEntries+9) {
		t.Fatalf("newest entry missing: %q", history[len(history)-1].Content)
	}
}

func TestLastConversations(t *testing.T) {
	t.Parallel()

	s := newSession()
	for i := 0; i < 5; i++ {
		s.AddConversationEntry(RoleUser, fmt.Sprintf("m%d", i))
	}

	last := s.LastConversations(2)
	if len(last) != 2 || last[0].Content != "m3" || last[1].Content != "m4" {
		t.Fatalf("unexpected tail: %+v", last)
	}
	if got := s.LastConversations(10); len(got) != 5 {
		t.Fatalf("over-long request must clamp, got %d", len(got))
	}
	if got := s.LastConversations(0); got != nil {
		t.Fatalf("zero request must return nil, got %+v", got)
	}
}

func TestConversationHistoryReturnsCopy(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.AddConversationEntry(RoleUser, "original")

	history := s.ConversationHistory()
	history[0].Content = "mutated"
	if s.ConversationHistory()[0].Content != "original" {
		t.Fatal("callers must not be able to mutate the transcript")
	}
}

func TestUnresolvedIntentOrderAndIdempotence(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.AddUnresolvedIntent(IntentOrderStatus)
	s.AddUnresolvedIntent(IntentHikingRecommendation)
	s.AddUnresolvedIntent(IntentOrderStatus)

	got := s.UnresolvedIntents()
	if len(got) != 2 || got[0] != IntentOrderStatus || got[1] != IntentHikingRecommendation {
		t.Fatalf("unexpected ledger: %v", got)
	}

	s.ResolveIntent(IntentOrderStatus)
	s.ResolveIntent(IntentOrderStatus)
	got = s.UnresolvedIntents()
	if len(got) != 1 || got[0] != IntentHikingRecommendation {
		t.Fatalf("unexpected ledger after resolve: %v", got)
	}

	s.ResolveIntent(IntentSearchFAQ)
	if len(s.UnresolvedIntents()) != 1 {
		t.Fatal("resolving an unopened intent must be a no-op")
	}
}

func TestFollowUpCounter(t *testing.T) {
	t.Parallel()

	s := newSession()
	if s.FollowUpCount(IntentHikingRecommendation) != 0 {
		t.Fatal("counter must start at zero")
	}
	s.IncrementFollowUpCount(IntentHikingRecommendation)
	s.IncrementFollowUpCount(IntentHikingRecommendation)
	if s.FollowUpCount(IntentHikingRecommendation) != 2 {
		t.Fatalf("unexpected count: %d", s.FollowUpCount(IntentHikingRecommendation))
	}
	s.ResetFollowUpCount(IntentHikingRecommendation)
	if s.FollowUpCount(IntentHikingRecommendation) != 0 {
		t.Fatal("reset must zero the counter")
	}
}

func TestPreferences(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.SetPreference(PreferenceLocation, "Boulder, CO")
	s.SetPreference(PreferenceDifficulty, "   ")
	if s.Preference(PreferenceLocation) != "Boulder, CO" {
		t.Fatalf("unexpected preference: %q", s.Preference(PreferenceLocation))
	}
	if s.Preference(PreferenceDifficulty) != "" {
		t.Fatal("blank values must be ignored")
	}
	s.ClearPreference(PreferenceLocation)
	if s.Preference(PreferenceLocation) != "" {
		t.Fatal("cleared preference must be empty")
	}
}

func TestUpdateOrderInfoMergesPartials(t *testing.T) {
	t.Parallel()

	s := newSession()
	s.UpdateOrderInfo(Order{OrderNumber: "#W001"})
	if s.HasCompleteOrderInfo() {
		t.Fatal("order number alone is not complete")
	}
	s.UpdateOrderInfo(Order{Email: "pat@example.com"})
	if !s.HasCompleteOrderInfo() {
		t.Fatal("number plus email is complete")
	}

	s.UpdateOrderInfo(Order{Status: "delivered"})
	info := s.OrderInfo()
	if info.OrderNumber != "#W001" || info.Email != "pat@example.com" || info.Status != "delivered" {
		t.Fatalf("partials must merge, got %+v", info)
	}

	s.ClearOrderInfo()
	if s.OrderInfo() != nil || s.HasCompleteOrderInfo() {
		t.Fatal("clear must drop the assembled order")
	}
}

func TestPastOrdersDeduplicate(t *testing.T) {
	t.Parallel()

	s := newSession()
	order := Order{OrderNumber: "#W001", Email: "pat@example.com"}
	s.AddPastOrder(order)
	s.AddPastOrder(order)
	s.AddPastOrder(Order{OrderNumber: "#W002", Email: "pat@example.com"})

	if got := s.PastOrders(); len(got) != 2 {
		t.Fatalf("unexpected past orders: %+v", got)
	}
}

func TestPromoCodeLifecycle(t *testing.T) {
	t.Parallel()

	s := newSession()
	if s.PromoCode() != nil {
		t.Fatal("no promo at start")
	}
	s.UpdatePromoCode(PromoCode{Code: "EARLYAAAAA", CreatedAt: time.Now()})
	if got := s.PromoCode(); got == nil || got.Code != "EARLYAAAAA" {
		t.Fatalf("unexpected promo: %+v", got)
	}
	s.UpdatePromoCode(PromoCode{Code: "EARLYBBBBB", CreatedAt: time.Now()})
	if got := s.PromoCode(); got.Code != "EARLYBBBBB" {
		t.Fatal("newer code must replace the old one")
	}
	s.ClearPromoCode()
	if s.PromoCode() != nil {
		t.Fatal("clear must drop the promo")
	}
}
