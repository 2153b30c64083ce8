package services

import (
	"context"
	"errors"
	"strings"

	"food-order/db"

	"github.com/jackc/pgx/v5"
)

// EnsureOrderMessagePointersTable creates order_message_pointers if missing (safety net when migrate was not run).
func EnsureOrderMessagePointersTable(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS order_message_pointers (
			order_ref TEXT PRIMARY KEY REFERENCES orders(ref) ON DELETE CASCADE,
			chat_id BIGINT NOT NULL,
			message_id INT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func isRelationNotExist(err error) bool {
	return err != nil && strings.Contains(err.Error(), "order_message_pointers") && strings.Contains(err.Error(), "does not exist")
}

// GetOrderMessagePointer returns the checkout card that placed the order.
// ok is false if no pointer exists.
func GetOrderMessagePointer(ctx context.Context, ref string) (chatID int64, messageID int, ok bool, err error) {
	err = db.Pool.QueryRow(ctx, `
		SELECT chat_id, message_id FROM order_message_pointers WHERE order_ref = $1`,
		ref,
	).Scan(&chatID, &messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, false, nil
		}
		if isRelationNotExist(err) {
			if ensureErr := EnsureOrderMessagePointersTable(ctx); ensureErr != nil {
				return 0, 0, false, ensureErr
			}
			return 0, 0, false, nil
		}
		return 0, 0, false, err
	}
	return chatID, messageID, true, nil
}

// UpsertOrderMessagePointer remembers which message holds the checkout card of ref.
func UpsertOrderMessagePointer(ctx context.Context, ref string, chatID int64, messageID int) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO order_message_pointers (order_ref, chat_id, message_id, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (order_ref) DO UPDATE SET chat_id = EXCLUDED.chat_id, message_id = EXCLUDED.message_id, updated_at = now()`,
		ref, chatID, messageID,
	)
	if err != nil && isRelationNotExist(err) {
		if ensureErr := EnsureOrderMessagePointersTable(ctx); ensureErr != nil {
			return ensureErr
		}
		return UpsertOrderMessagePointer(ctx, ref, chatID, messageID)
	}
	return err
}
