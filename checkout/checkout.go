// Package checkout turns a session cart into a placed order and clears the cart
// once the payment succeeded and the receipt has been shown.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-order/cart"
	"food-order/config"
	"food-order/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	// ErrNotSettled means the order is paid and the receipt rendered, but the
	// cart was not settled because ctx ended during the clear delay.
	ErrNotSettled = errors.New("order paid, cart not settled")
)

type OrderStore interface {
	CreateOrder(ctx context.Context, input models.CreateOrderInput) (int64, error)
	MarkOrderPaid(ctx context.Context, ref, chargeID string) (int64, error)
}

// Publisher announces paid orders to the kitchen.
type Publisher interface {
	PublishOrderPaid(ctx context.Context, userID int64, r models.Receipt) error
}

type Flow struct {
	orders     OrderStore
	pub        Publisher
	methods    []config.PaymentMethod
	clearDelay time.Duration
	log        *zap.Logger
	newRef     func() string
}

func New(orders OrderStore, pub Publisher, cfg config.CheckoutConfig, log *zap.Logger) *Flow {
	return &Flow{
		orders:     orders,
		pub:        pub,
		methods:    cfg.PaymentMethods,
		clearDelay: cfg.ClearDelay,
		log:        log,
		newRef:     uuid.NewString,
	}
}

func (f *Flow) Methods() []config.PaymentMethod {
	return f.methods
}

func (f *Flow) KnownMethod(id string) bool {
	for _, m := range f.methods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Snapshot copies the cart contents and totals by value.
func Snapshot(c *cart.Store) models.Receipt {
	lines := c.Lines()
	r := models.Receipt{
		Lines:      make([]models.OrderLine, len(lines)),
		ItemsCount: c.Count(),
		ItemsTotal: c.Total(),
	}
	for i, l := range lines {
		r.Lines[i] = models.OrderLine{
			MenuItemID: l.Item.ID,
			TenantID:   l.Item.TenantID,
			Name:       l.Item.Name,
			Price:      l.Item.Price,
			Qty:        l.Qty,
		}
	}
	return r
}

// Place records a pending order for the cart and returns its receipt. The cart
// is left untouched; it is cleared by Complete.
func (f *Flow) Place(ctx context.Context, userID, chatID int64, c *cart.Store, method, referral string) (models.Receipt, error) {
	if c.IsEmpty() {
		return models.Receipt{}, ErrEmptyCart
	}
	if !f.KnownMethod(method) {
		return models.Receipt{}, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
	}
	r := Snapshot(c)
	r.Ref = f.newRef()
	r.PaymentMethod = method
	r.ReferralCode = referral

	_, err := f.orders.CreateOrder(ctx, models.CreateOrderInput{
		Ref:           r.Ref,
		UserID:        userID,
		ChatID:        chatID,
		PaymentMethod: method,
		ReferralCode:  referral,
		Lines:         r.Lines,
		ItemsCount:    r.ItemsCount,
		ItemsTotal:    r.ItemsTotal,
	})
	if err != nil {
		return models.Receipt{}, fmt.Errorf("create order: %w", err)
	}
	f.log.Info("order placed",
		zap.String("ref", r.Ref),
		zap.Int64("user_id", userID),
		zap.String("payment_method", method),
		zap.Int64("items_total", r.ItemsTotal),
	)
	return r, nil
}

// RecordPayment marks the order paid without touching any cart.
func (f *Flow) RecordPayment(ctx context.Context, ref, chargeID string) error {
	if _, err := f.orders.MarkOrderPaid(ctx, ref, chargeID); err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	return nil
}

// Complete finishes a paid order: it marks the order paid, notifies the kitchen,
// renders the receipt, waits the clear delay and then removes the paid lines
// from the cart.
// The receipt must have been taken before Complete is called; render never sees
// a cleared cart.
func (f *Flow) Complete(ctx context.Context, userID int64, r models.Receipt, c *cart.Store, chargeID string, render func(models.Receipt) error) error {
	if err := f.RecordPayment(ctx, r.Ref, chargeID); err != nil {
		return err
	}
	if f.pub != nil {
		if err := f.pub.PublishOrderPaid(ctx, userID, r); err != nil {
			f.log.Error("publish order paid", zap.String("ref", r.Ref), zap.Error(err))
		}
	}
	if render != nil {
		if err := render(r); err != nil {
			f.log.Warn("render receipt", zap.String("ref", r.Ref), zap.Error(err))
		}
	}
	if f.clearDelay > 0 {
		t := time.NewTimer(f.clearDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrNotSettled, ctx.Err())
		}
	}
	settle(c, r)
	f.log.Info("order paid", zap.String("ref", r.Ref), zap.Int64("user_id", userID))
	return nil
}

// settle removes what r paid for from c. A cart that still equals the receipt is
// cleared; items added or changed after Place keep the unpaid remainder.
func settle(c *cart.Store, r models.Receipt) {
	if sameLines(Snapshot(c).Lines, r.Lines) {
		c.Clear()
		return
	}
	for _, l := range r.Lines {
		c.SetQuantity(l.MenuItemID, c.Quantity(l.MenuItemID)-l.Qty)
	}
}

func sameLines(a, b []models.OrderLine) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].MenuItemID != b[i].MenuItemID || a[i].Qty != b[i].Qty {
			return false
		}
	}
	return true
}
