package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"food-order/db"
	"food-order/models"

	"github.com/jackc/pgx/v5"
)

// ValidateOrderInput checks that the totals match the lines before anything is written.
func ValidateOrderInput(input models.CreateOrderInput) error {
	if input.Ref == "" {
		return fmt.Errorf("order ref is required")
	}
	if len(input.Lines) == 0 {
		return fmt.Errorf("order has no lines")
	}
	var count int
	var total int64
	for _, l := range input.Lines {
		if l.Qty <= 0 {
			return fmt.Errorf("line %s: qty must be > 0", l.MenuItemID)
		}
		if l.Price < 0 {
			return fmt.Errorf("line %s: price must be >= 0", l.MenuItemID)
		}
		if _, _, err := lineIDs(l); err != nil {
			return err
		}
		count += l.Qty
		total += l.Price * int64(l.Qty)
	}
	if count != input.ItemsCount {
		return fmt.Errorf("items count %d does not match lines (%d)", input.ItemsCount, count)
	}
	if total != input.ItemsTotal {
		return fmt.Errorf("items total %d does not match lines (%d)", input.ItemsTotal, total)
	}
	return nil
}

// CreateOrder stores a pending order and its lines in one transaction.
func CreateOrder(ctx context.Context, input models.CreateOrderInput) (int64, error) {
	if err := ValidateOrderInput(input); err != nil {
		return 0, err
	}
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			ref, user_id, chat_id, payment_method, referral_code,
			items_count, items_total, status
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING id`,
		input.Ref, input.UserID, input.ChatID, input.PaymentMethod, input.ReferralCode,
		input.ItemsCount, input.ItemsTotal, models.OrderStatusPending,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, l := range input.Lines {
		itemID, tenantID, err := lineIDs(l)
		if err != nil {
			return 0, err
		}
		batch.Queue(`
			INSERT INTO order_items (order_id, position, menu_item_id, tenant_id, name, price, qty)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, i, itemID, tenantID, l.Name, l.Price, l.Qty,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert order items: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// lineIDs parses the catalog ids of an order line.
func lineIDs(l models.OrderLine) (itemID, tenantID int64, err error) {
	itemID, err = strconv.ParseInt(l.MenuItemID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("line %q: menu item id: %w", l.MenuItemID, err)
	}
	tenantID, err = strconv.ParseInt(l.TenantID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("line %q: tenant id: %w", l.MenuItemID, err)
	}
	return itemID, tenantID, nil
}

// MarkOrderPaid moves a pending order to paid. A second call for the same ref
// returns ErrNotFound, so a duplicated provider callback is not applied twice.
func MarkOrderPaid(ctx context.Context, ref, chargeID string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx, `
		UPDATE orders SET
			status = $1,
			payment_charge_id = NULLIF($2, ''),
			paid_at = now(),
			updated_at = now()
		WHERE ref = $3 AND status = $4
		RETURNING id`,
		models.OrderStatusPaid, chargeID, ref, models.OrderStatusPending,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("pending order %s: %w", ref, ErrNotFound)
		}
		return 0, err
	}
	return id, nil
}

func GetOrderByRef(ctx context.Context, ref string) (*models.Order, error) {
	var o models.Order
	var referral *string
	err := db.Pool.QueryRow(ctx, `
		SELECT id, ref, user_id, status, payment_method, referral_code,
			items_count, items_total, created_at, paid_at
		FROM orders WHERE ref = $1`, ref,
	).Scan(&o.ID, &o.Ref, &o.UserID, &o.Status, &o.PaymentMethod, &referral,
		&o.ItemsCount, &o.ItemsTotal, &o.CreatedAt, &o.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", ref, ErrNotFound)
		}
		return nil, err
	}
	if referral != nil {
		o.ReferralCode = *referral
	}
	return &o, nil
}

func ListOrdersByUserID(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, ref, user_id, status, payment_method, items_count, items_total, created_at, paid_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Ref, &o.UserID, &o.Status, &o.PaymentMethod,
			&o.ItemsCount, &o.ItemsTotal, &o.CreatedAt, &o.PaidAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// OrderStore exposes the order functions to callers that take an interface.
type OrderStore struct{}

func (OrderStore) CreateOrder(ctx context.Context, input models.CreateOrderInput) (int64, error) {
	return CreateOrder(ctx, input)
}

func (OrderStore) MarkOrderPaid(ctx context.Context, ref, chargeID string) (int64, error) {
	return MarkOrderPaid(ctx, ref, chargeID)
}
