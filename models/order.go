package models

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

type OrderLine struct {
	MenuItemID string `json:"menu_item_id"`
	TenantID   string `json:"tenant_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Qty        int    `json:"qty"`
}

type CreateOrderInput struct {
	Ref           string
	UserID        int64
	ChatID        int64
	PaymentMethod string
	ReferralCode  string
	Lines         []OrderLine
	ItemsCount    int
	ItemsTotal    int64
}

// Order is a row from orders table.
type Order struct {
	ID            int64
	Ref           string
	UserID        int64
	Status        string
	PaymentMethod string
	ReferralCode  string
	ItemsCount    int
	ItemsTotal    int64
	CreatedAt     time.Time
	PaidAt        *time.Time
}

// Receipt is a by-value copy of an order taken before the cart is cleared.
type Receipt struct {
	Ref           string
	Lines         []OrderLine
	ItemsCount    int
	ItemsTotal    int64
	PaymentMethod string
	ReferralCode  string
}
