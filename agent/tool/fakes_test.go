package tool

import (
	"context"
	"strings"
	"time"

	contractx "github.com/claraeverett/Sierra-Agent/agent/contract"
	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

type fakeCatalog struct {
	orders   map[string]statex.Order
	products map[string]statex.Product
	tags     []string
	err      error
}

func (f *fakeCatalog) GetOrder(_ context.Context, orderNumber, email string) (*statex.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[orderNumber]
	if !ok || !strings.EqualFold(o.Email, email) {
		return nil, contractx.ErrOrderNotFound
	}
	return &o, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, sku string) (*statex.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[sku]
	if !ok {
		return nil, contractx.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) SearchProducts(_ context.Context, query string) ([]statex.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []statex.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.ProductName), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) UniqueTags(_ context.Context) ([]string, error) {
	return f.tags, f.err
}

type fakeModel struct {
	response string
	err      error
	calls    int
}

func (f *fakeModel) Complete(_ context.Context, _ []statex.ConversationEntry, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeWeather struct {
	conditions string
	err        error
}

func (f *fakeWeather) CurrentConditions(_ context.Context, _ string) (string, error) {
	return f.conditions, f.err
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendSupportEmail(_ context.Context, body, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, body)
	return nil
}

type fakeSearcher struct {
	faq     string
	matches []contractx.ProductMatch
	err     error
}

func (f *fakeSearcher) SearchFAQ(_ context.Context, _ string) (string, error) {
	return f.faq, f.err
}

func (f *fakeSearcher) SearchProducts(_ context.Context, _ string, _ int) ([]contractx.ProductMatch, error) {
	return f.matches, f.err
}

func newTestSession() *statex.Session {
	return statex.NewSession("user-1", "session-1", time.Now())
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
