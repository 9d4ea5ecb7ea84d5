package cart_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/UTarts/RASRAJ-themithaishop/internal/cart"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/kv"
	"github.com/UTarts/RASRAJ-themithaishop/internal/pricing"
	"github.com/UTarts/RASRAJ-themithaishop/internal/store"
	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type cartFeature struct {
	ctx       context.Context
	catalog   map[string]domain.Product
	mem       *kv.MemoryStore
	sessionID string
	engine    *cart.Engine
	calc      *pricing.Calculator
	coupon    *domain.CouponApplication
	subtotal  *decimal.Decimal
	count     int
	lastErr   error
}

func (f *cartFeature) reset() {
	f.ctx = context.Background()
	f.catalog = map[string]domain.Product{}
	f.mem = kv.NewMemoryStore()
	f.calc = pricing.NewCalculator(pricing.DefaultConfig())
	f.coupon = nil
	f.subtotal = nil
	f.count = 0
	f.lastErr = nil
}

func (f *cartFeature) theCatalogHas(id, name string, price int, weight string) error {
	p, ok := f.catalog[id]
	if !ok {
		p = domain.Product{ID: id, Name: name}
	}
	switch domain.Weight(weight) {
	case domain.Weight250g:
		p.Prices.G250 = decimal.NewFromInt(int64(price))
	case domain.Weight500g:
		p.Prices.G500 = decimal.NewFromInt(int64(price))
	case domain.Weight1kg:
		p.Prices.G1000 = decimal.NewFromInt(int64(price))
	default:
		return fmt.Errorf("bad weight %q in catalog step", weight)
	}
	f.catalog[id] = p
	return nil
}

func (f *cartFeature) anEmptyCartForSession(id string) error {
	f.sessionID = id
	f.engine = cart.NewEngine(store.NewCartStore(f.mem, id))
	return nil
}

func (f *cartFeature) iAdd(qty int, id, weight string) error {
	p, ok := f.catalog[id]
	if !ok {
		return fmt.Errorf("product %q not in catalog", id)
	}
	f.lastErr = f.engine.Add(f.ctx, p, domain.Weight(weight), qty)
	return nil
}

func (f *cartFeature) iSetTo(id, weight string, qty int) error {
	f.lastErr = f.engine.Update(f.ctx, id, domain.Weight(weight), qty)
	return nil
}

func (f *cartFeature) theLastOperationFailedWith(msg string) error {
	if f.lastErr == nil {
		return fmt.Errorf("expected error %q, got none", msg)
	}
	if f.lastErr.Error() != msg {
		return fmt.Errorf("expected error %q, got %q", msg, f.lastErr.Error())
	}
	return nil
}

func (f *cartFeature) theCartHasLines(n int) error {
	if got := len(f.engine.Items()); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (f *cartFeature) theLineHasQuantity(id, weight string, qty int) error {
	for _, it := range f.engine.Items() {
		if it.Matches(id, domain.Weight(weight)) {
			if it.Quantity != qty {
				return fmt.Errorf("expected quantity %d, got %d", qty, it.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %s at %s", id, weight)
}

func (f *cartFeature) lineIs(pos int, id, weight string) error {
	items := f.engine.Items()
	if pos < 1 || pos > len(items) {
		return fmt.Errorf("no line %d", pos)
	}
	if !items[pos-1].Matches(id, domain.Weight(weight)) {
		return fmt.Errorf("line %d is %s at %s", pos, items[pos-1].ProductID, items[pos-1].Weight)
	}
	return nil
}

func (f *cartFeature) theCartCountIs(n int) error {
	if got := f.engine.Count(); got != n {
		return fmt.Errorf("expected count %d, got %d", n, got)
	}
	return nil
}

func (f *cartFeature) theSubtotalIs(v int) error {
	if got := f.engine.Subtotal(); !got.Equal(decimal.NewFromInt(int64(v))) {
		return fmt.Errorf("expected subtotal %d, got %s", v, got)
	}
	return nil
}

func (f *cartFeature) aCartSubtotalOfWithItems(subtotal, count int) error {
	s := decimal.NewFromInt(int64(subtotal))
	f.subtotal = &s
	f.count = count
	return nil
}

func (f *cartFeature) aCouponWorthIsApplied(v int) error {
	f.coupon = &domain.CouponApplication{
		Code:              "TEST",
		Discount:          decimal.NewFromInt(int64(v)),
		ValidatedSubtotal: f.engine.Subtotal(),
	}
	return nil
}

func (f *cartFeature) quote() pricing.Totals {
	if f.subtotal != nil {
		return f.calc.Quote(pricing.Input{Subtotal: *f.subtotal, ItemCount: f.count})
	}
	return f.calc.Quote(pricing.Input{
		Subtotal:  f.engine.Subtotal(),
		ItemCount: f.engine.Count(),
		Coupon:    f.coupon,
	})
}

func (f *cartFeature) theDeliveryFeeIs(v int) error {
	if got := f.quote().DeliveryFee; !got.Equal(decimal.NewFromInt(int64(v))) {
		return fmt.Errorf("expected fee %d, got %s", v, got)
	}
	return nil
}

func (f *cartFeature) theTotalIs(v int) error {
	if got := f.quote().Total; !got.Equal(decimal.NewFromInt(int64(v))) {
		return fmt.Errorf("expected total %d, got %s", v, got)
	}
	return nil
}

func (f *cartFeature) theStoredCartContains(id, raw string) error {
	return f.mem.Set(f.ctx, store.SlotKey(id, store.SlotCart), []byte(raw))
}

func (f *cartFeature) theCartIsReloaded() error {
	f.engine = cart.NewEngine(store.NewCartStore(f.mem, f.sessionID))
	f.engine.Restore(f.ctx)
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &cartFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		f.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog has "([^"]*)" named "([^"]*)" priced (\d+) for "([^"]*)"$`, f.theCatalogHas)
	ctx.Step(`^an empty cart for session "([^"]*)"$`, f.anEmptyCartForSession)
	ctx.Step(`^a cart subtotal of (\d+) with (\d+) items$`, f.aCartSubtotalOfWithItems)
	ctx.Step(`^the stored cart for session "([^"]*)" contains "([^"]*)"$`, f.theStoredCartContains)

	// When steps
	ctx.Step(`^I add (-?\d+) of "([^"]*)" at "([^"]*)"$`, f.iAdd)
	ctx.Step(`^I set "([^"]*)" at "([^"]*)" to (-?\d+)$`, f.iSetTo)
	ctx.Step(`^a coupon worth (\d+) is applied$`, f.aCouponWorthIsApplied)
	ctx.Step(`^the cart is reloaded from storage$`, f.theCartIsReloaded)

	// Then steps
	ctx.Step(`^the last operation failed with "([^"]*)"$`, f.theLastOperationFailedWith)
	ctx.Step(`^the cart has (\d+) lines?$`, f.theCartHasLines)
	ctx.Step(`^the line "([^"]*)" at "([^"]*)" has quantity (\d+)$`, f.theLineHasQuantity)
	ctx.Step(`^line (\d+) is "([^"]*)" at "([^"]*)"$`, f.lineIs)
	ctx.Step(`^the cart count is (\d+)$`, f.theCartCountIs)
	ctx.Step(`^the subtotal is (\d+)$`, f.theSubtotalIs)
	ctx.Step(`^the delivery fee is (\d+)$`, f.theDeliveryFeeIs)
	ctx.Step(`^the total is (\d+)$`, f.theTotalIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
