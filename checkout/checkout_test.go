package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-order/cart"
	"food-order/config"
	"food-order/models"

	"go.uber.org/zap"
)

var (
	grill = models.MenuItem{ID: "1", TenantID: "1", Name: "Paket Chicken Grill", Price: 25000}
	combo = models.MenuItem{ID: "3", TenantID: "1", Name: "Paket Combo Double Chicken", Price: 19000}
)

type fakeOrders struct {
	created []models.CreateOrderInput
	paid    []string
	failPay error
}

func (f *fakeOrders) CreateOrder(_ context.Context, in models.CreateOrderInput) (int64, error) {
	f.created = append(f.created, in)
	return int64(len(f.created)), nil
}

func (f *fakeOrders) MarkOrderPaid(_ context.Context, ref, _ string) (int64, error) {
	if f.failPay != nil {
		return 0, f.failPay
	}
	f.paid = append(f.paid, ref)
	return 1, nil
}

type fakePublisher struct {
	published []models.Receipt
	err       error
}

func (p *fakePublisher) PublishOrderPaid(_ context.Context, _ int64, r models.Receipt) error {
	p.published = append(p.published, r)
	return p.err
}

func newFlow(orders OrderStore, pub Publisher, delay time.Duration) *Flow {
	methods, _ := config.ParsePaymentMethods("qris,bca,blu,gopay")
	f := New(orders, pub, config.CheckoutConfig{PaymentMethods: methods, ClearDelay: delay}, zap.NewNop())
	f.newRef = func() string { return "ref-test" }
	return f
}

func filledCart() *cart.Store {
	c := cart.New()
	c.Add(grill, 1)
	c.Add(combo, 1)
	return c
}

func TestSnapshotIsIndependentOfCart(t *testing.T) {
	c := filledCart()
	r := Snapshot(c)
	c.Clear()
	if len(r.Lines) != 2 || r.ItemsCount != 2 || r.ItemsTotal != 44000 {
		t.Errorf("snapshot changed after Clear: %+v", r)
	}
}

func TestPlace(t *testing.T) {
	orders := &fakeOrders{}
	f := newFlow(orders, nil, 0)
	c := filledCart()

	r, err := f.Place(context.Background(), 7, 70, c, "gopay", "PROMO")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if r.Ref != "ref-test" || r.ItemsTotal != 44000 || r.PaymentMethod != "gopay" {
		t.Errorf("receipt = %+v", r)
	}
	if len(orders.created) != 1 {
		t.Fatalf("orders created = %d, want 1", len(orders.created))
	}
	in := orders.created[0]
	if in.UserID != 7 || in.ChatID != 70 || in.ReferralCode != "PROMO" || in.ItemsCount != 2 {
		t.Errorf("order input = %+v", in)
	}
	if c.IsEmpty() {
		t.Error("Place must not clear the cart")
	}
}

func TestPlaceRejects(t *testing.T) {
	f := newFlow(&fakeOrders{}, nil, 0)
	if _, err := f.Place(context.Background(), 1, 1, cart.New(), "qris", ""); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty cart err = %v, want ErrEmptyCart", err)
	}
	if _, err := f.Place(context.Background(), 1, 1, filledCart(), "cash", ""); !errors.Is(err, ErrUnknownPaymentMethod) {
		t.Errorf("unknown method err = %v, want ErrUnknownPaymentMethod", err)
	}
}

func TestCompleteRendersBeforeClearing(t *testing.T) {
	orders := &fakeOrders{}
	pub := &fakePublisher{}
	f := newFlow(orders, pub, time.Millisecond)
	c := filledCart()
	r, err := f.Place(context.Background(), 1, 1, c, "qris", "")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	var countAtRender int
	err = f.Complete(context.Background(), 1, r, c, "charge", func(got models.Receipt) error {
		countAtRender = c.Count()
		if got.ItemsTotal != 44000 {
			t.Errorf("rendered total = %d, want 44000", got.ItemsTotal)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if countAtRender != 2 {
		t.Errorf("cart count during render = %d, want 2", countAtRender)
	}
	if !c.IsEmpty() {
		t.Error("cart not cleared after Complete")
	}
	if len(orders.paid) != 1 || orders.paid[0] != "ref-test" {
		t.Errorf("paid = %v", orders.paid)
	}
	if len(pub.published) != 1 {
		t.Errorf("published = %d, want 1", len(pub.published))
	}
}

func TestCompleteKeepsCartWhenPaymentNotRecorded(t *testing.T) {
	f := newFlow(&fakeOrders{failPay: errors.New("db down")}, nil, 0)
	c := filledCart()
	rendered := false
	err := f.Complete(context.Background(), 1, Snapshot(c), c, "", func(models.Receipt) error {
		rendered = true
		return nil
	})
	if err == nil {
		t.Fatal("Complete: want error")
	}
	if rendered || c.IsEmpty() {
		t.Errorf("rendered=%v empty=%v, want neither", rendered, c.IsEmpty())
	}
}

func TestCompleteCancelledDuringDelay(t *testing.T) {
	f := newFlow(&fakeOrders{}, nil, time.Hour)
	c := filledCart()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := f.Complete(ctx, 1, Snapshot(c), c, "", nil)
	if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrNotSettled) {
		t.Errorf("err = %v, want ErrNotSettled wrapping context.Canceled", err)
	}
	if c.IsEmpty() {
		t.Error("cart cleared although the wait was cancelled")
	}
}

func TestCompletePublishFailureStillClears(t *testing.T) {
	f := newFlow(&fakeOrders{}, &fakePublisher{err: errors.New("broker down")}, 0)
	c := filledCart()
	if err := f.Complete(context.Background(), 1, Snapshot(c), c, "", nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("cart not cleared")
	}
}

func TestCompleteKeepsItemsAddedAfterPlace(t *testing.T) {
	katsu := models.MenuItem{ID: "7", TenantID: "1", Name: "Chicken Katsu", Price: 22000}
	f := newFlow(&fakeOrders{}, nil, 0)
	c := filledCart()
	c.Add(grill, 1)
	r, err := f.Place(context.Background(), 1, 1, c, "qris", "")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	// invoice is open: the user keeps shopping
	c.Add(katsu, 1)
	c.Add(grill, 1)
	c.SetQuantity(combo.ID, 0)

	if err := f.Complete(context.Background(), 1, r, c, "charge", nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := c.Quantity(katsu.ID); got != 1 {
		t.Errorf("katsu qty = %d, want 1", got)
	}
	if got := c.Quantity(grill.ID); got != 1 {
		t.Errorf("grill qty = %d, want 1 (3 in cart, 2 paid)", got)
	}
	if got := c.Quantity(combo.ID); got != 0 {
		t.Errorf("combo qty = %d, want 0", got)
	}
	if c.Count() != 2 {
		t.Errorf("Count() = %d, want 2", c.Count())
	}
}

func TestCompleteClearsUnchangedCart(t *testing.T) {
	f := newFlow(&fakeOrders{}, nil, 0)
	c := filledCart()
	r, err := f.Place(context.Background(), 1, 1, c, "bca", "")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := f.Complete(context.Background(), 1, r, c, "", nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !c.IsEmpty() || c.Len() != 0 {
		t.Errorf("cart = %d lines, want empty", c.Len())
	}
}
