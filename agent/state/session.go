package state

import (
	"strings"
	"sync"
	"time"
)

// Role identifies the author of a conversation entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// ConversationEntry is one turn of the transcript, ordered oldest-first.
type ConversationEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent is a classified category of user need.
type Intent string

const (
	IntentGeneral               Intent = "General"
	IntentOrderStatus           Intent = "OrderStatus"
	IntentResolveOrderIssue     Intent = "ResolveOrderIssue"
	IntentEarlyRisers           Intent = "EarlyRisers"
	IntentHikingRecommendation  Intent = "HikingRecommendation"
	IntentProductInventory      Intent = "ProductInventory"
	IntentProductRecommendation Intent = "ProductRecommendation"
	IntentSearchFAQ             Intent = "SearchFAQ"
	IntentHumanHelp             Intent = "HumanHelp"
)

// PreferenceKey names a stored hiking preference.
type PreferenceKey string

const (
	PreferenceLocation   PreferenceKey = "location"
	PreferenceDifficulty PreferenceKey = "difficulty"
	PreferenceLength     PreferenceKey = "length"
)

// Order is a customer order record. OrderNumber and Email identify it;
// the remaining fields are filled once a lookup succeeds.
type Order struct {
	OrderNumber     string   `json:"order_number"`
	Email           string   `json:"email"`
	CustomerName    string   `json:"customer_name,omitempty"`
	Status          string   `json:"status,omitempty"`
	TrackingNumber  string   `json:"tracking_number,omitempty"`
	ProductsOrdered []string `json:"products_ordered,omitempty"`
}

// Product is a catalog item.
type Product struct {
	SKU         string   `json:"sku"`
	ProductName string   `json:"product_name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Inventory   int      `json:"inventory"`
}

// PromoCode is a time-window promotion code; validity is decided by the
// issuing tool against CreatedAt.
type PromoCode struct {
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"created_at"`
	ProductName string    `json:"product_name,omitempty"`
}

// CustomerInfo is the identity resolved by a successful order lookup.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Trail is one hiking trail suggestion.
type Trail struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	Difficulty     string `json:"difficulty"`
	Length         string `json:"length"`
	ElevationGain  string `json:"elevation_gain,omitempty"`
	Considerations string `json:"considerations,omitempty"`
}

// HikingRecommendation is a completed recommendation kept for later reference.
type HikingRecommendation struct {
	Location   string  `json:"location"`
	Difficulty string  `json:"difficulty"`
	Length     string  `json:"length"`
	Weather    string  `json:"weather,omitempty"`
	Trails     []Trail `json:"trails"`
}

// maxConversationEntries bounds the transcript window. Older entries are
// dropped from the front; the bound is enforced here, not by callers.
const maxConversationEntries = 40

// Session is the in-memory record of one ongoing conversation. Fields are
// grouped into per-intent partitions; a partition written by a single tool
// needs no lock during same-turn concurrent execution, while partitions
// shared across tools carry their own mutex. A Session is owned by the
// single in-flight turn processing it; turn serialization is the store's
// job, not the Session's.
type Session struct {
	UserID    string
	SessionID string
	CreatedAt time.Time

	conversation []ConversationEntry

	// intent ledger; every tool touches it, so it carries its own lock for
	// same-turn concurrent execution
	ledgerMu        sync.Mutex
	unresolved      map[Intent]struct{}
	unresolvedOrder []Intent
	followUps       map[Intent]int

	// hiking partition
	preferences     map[PreferenceKey]string
	recommendations []HikingRecommendation

	// order partition; shared between the order-status and order-issue
	// tools, which can run in the same fan-out
	orderMu    sync.Mutex
	orderInfo  *Order
	pastOrders []Order
	customer   *CustomerInfo

	// promotion partition
	promo *PromoCode
}

// NewSession creates an empty session for the given identifiers.
func NewSession(userID, sessionID string, now time.Time) *Session {
	return &Session{
		UserID:      userID,
		SessionID:   sessionID,
		CreatedAt:   now.UTC(),
		unresolved:  make(map[Intent]struct{}, 4),
		followUps:   make(map[Intent]int, 4),
		preferences: make(map[PreferenceKey]string, 4),
	}
}

/* ------------------------------ Conversation ----------------------------- */

// AddConversationEntry appends one transcript entry, trimming the window to
// the most recent maxConversationEntries.
func (s *Session) AddConversationEntry(role Role, content string) {
	s.conversation = append(s.conversation, ConversationEntry{Role: role, Content: content})
	if len(s.conversation) > maxConversationEntries {
		s.conversation = s.conversation[len(s.conversation)-maxConversationEntries:]
	}
}

// ConversationHistory returns a copy of the transcript, oldest-first.
func (s *Session) ConversationHistory() []ConversationEntry {
	out := make([]ConversationEntry, len(s.conversation))
	copy(out, s.conversation)
	return out
}

// LastConversations returns a copy of the last n transcript entries.
func (s *Session) LastConversations(n int) []ConversationEntry {
	if n <= 0 || len(s.conversation) == 0 {
		return nil
	}
	if n > len(s.conversation) {
		n = len(s.conversation)
	}
	out := make([]ConversationEntry, n)
	copy(out, s.conversation[len(s.conversation)-n:])
	return out
}

// ClearConversationHistory drops the whole transcript.
func (s *Session) ClearConversationHistory() {
	s.conversation = nil
}

/* ----------------------------- Intent ledger ----------------------------- */

// AddUnresolvedIntent records an opened conversational thread. Adding an
// intent twice is a no-op; insertion order is preserved.
func (s *Session) AddUnresolvedIntent(intent Intent) {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	if _, ok := s.unresolved[intent]; ok {
		return
	}
	s.unresolved[intent] = struct{}{}
	s.unresolvedOrder = append(s.unresolvedOrder, intent)
}

// ResolveIntent closes a thread. Resolving an intent that is not open is a
// no-op.
func (s *Session) ResolveIntent(intent Intent) {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	if _, ok := s.unresolved[intent]; !ok {
		return
	}
	delete(s.unresolved, intent)
	for i, it := range s.unresolvedOrder {
		if it == intent {
			s.unresolvedOrder = append(s.unresolvedOrder[:i], s.unresolvedOrder[i+1:]...)
			break
		}
	}
}

// UnresolvedIntents returns open threads in the order they were opened.
func (s *Session) UnresolvedIntents() []Intent {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	out := make([]Intent, len(s.unresolvedOrder))
	copy(out, s.unresolvedOrder)
	return out
}

// FollowUpCount reports clarification turns spent on an intent since its
// last reset.
func (s *Session) FollowUpCount(intent Intent) int {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	return s.followUps[intent]
}

// IncrementFollowUpCount records one more clarification turn for an intent.
func (s *Session) IncrementFollowUpCount(intent Intent) {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	s.followUps[intent]++
}

// ResetFollowUpCount sets an intent's clarification counter back to zero.
// Called only by the flow that completes the intent, never implicitly.
func (s *Session) ResetFollowUpCount(intent Intent) {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	s.followUps[intent] = 0
}

/* ------------------------------ Preferences ------------------------------ */

// Preference returns the stored value for key, or "" when unset.
func (s *Session) Preference(key PreferenceKey) string {
	return s.preferences[key]
}

// SetPreference stores a preference value; empty values are ignored.
func (s *Session) SetPreference(key PreferenceKey, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	s.preferences[key] = value
}

// ClearPreference removes a stored preference.
func (s *Session) ClearPreference(key PreferenceKey) {
	delete(s.preferences, key)
}

/* ------------------------------- Order info ------------------------------ */

// UpdateOrderInfo merges non-empty fields of partial into the order being
// assembled across turns, creating it if necessary.
func (s *Session) UpdateOrderInfo(partial Order) {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	if s.orderInfo == nil {
		s.orderInfo = &Order{}
	}
	if partial.OrderNumber != "" {
		s.orderInfo.OrderNumber = partial.OrderNumber
	}
	if partial.Email != "" {
		s.orderInfo.Email = partial.Email
	}
	if partial.CustomerName != "" {
		s.orderInfo.CustomerName = partial.CustomerName
	}
	if partial.Status != "" {
		s.orderInfo.Status = partial.Status
	}
	if partial.TrackingNumber != "" {
		s.orderInfo.TrackingNumber = partial.TrackingNumber
	}
	if len(partial.ProductsOrdered) > 0 {
		s.orderInfo.ProductsOrdered = partial.ProductsOrdered
	}
}

// OrderInfo returns a copy of the order currently being assembled, or nil.
func (s *Session) OrderInfo() *Order {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	if s.orderInfo == nil {
		return nil
	}
	out := *s.orderInfo
	return &out
}

// HasCompleteOrderInfo reports whether both order number and email have been
// supplied. Complete does not mean valid.
func (s *Session) HasCompleteOrderInfo() bool {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	return s.orderInfo != nil && s.orderInfo.OrderNumber != "" && s.orderInfo.Email != ""
}

// ClearOrderInfo discards the order being assembled.
func (s *Session) ClearOrderInfo() {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	s.orderInfo = nil
}

// AddPastOrder records a fully-resolved order, deduplicated by order number
// and email.
func (s *Session) AddPastOrder(order Order) {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	for _, o := range s.pastOrders {
		if o.OrderNumber == order.OrderNumber && o.Email == order.Email {
			return
		}
	}
	s.pastOrders = append(s.pastOrders, order)
}

// PastOrders returns orders looked up this session.
func (s *Session) PastOrders() []Order {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	out := make([]Order, len(s.pastOrders))
	copy(out, s.pastOrders)
	return out
}

/* ----------------------------- Customer info ----------------------------- */

// UpdateCustomerInfo records the identity resolved by an order lookup.
func (s *Session) UpdateCustomerInfo(name, email string) {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	s.customer = &CustomerInfo{Name: name, Email: email}
}

// CustomerInfo returns a copy of the resolved customer identity, or nil.
func (s *Session) CustomerInfo() *CustomerInfo {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	if s.customer == nil {
		return nil
	}
	out := *s.customer
	return &out
}

/* ------------------------------- Promo code ------------------------------ */

// UpdatePromoCode replaces the active promo code. At most one code is active.
func (s *Session) UpdatePromoCode(code PromoCode) {
	c := code
	s.promo = &c
}

// PromoCode returns the active promo code, or nil.
func (s *Session) PromoCode() *PromoCode {
	return s.promo
}

// ClearPromoCode drops the active promo code.
func (s *Session) ClearPromoCode() {
	s.promo = nil
}

/* --------------------------- Hiking references --------------------------- */

// AddHikingRecommendation stores a completed recommendation result.
func (s *Session) AddHikingRecommendation(rec HikingRecommendation) {
	s.recommendations = append(s.recommendations, rec)
}

// HikingRecommendations returns completed recommendations in order.
func (s *Session) HikingRecommendations() []HikingRecommendation {
	out := make([]HikingRecommendation, len(s.recommendations))
	copy(out, s.recommendations)
	return out
}
