package services

import (
	"context"
	"errors"
	"testing"

	"food-order/db"
	"food-order/models"

	"github.com/google/uuid"
)

func validInput() models.CreateOrderInput {
	return models.CreateOrderInput{
		Ref:           "ref-1",
		UserID:        42,
		ChatID:        42,
		PaymentMethod: "qris",
		Lines:         sampleLines,
		ItemsCount:    3,
		ItemsTotal:    69000,
	}
}

func TestValidateOrderInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.CreateOrderInput)
		wantErr bool
	}{
		{"valid", func(*models.CreateOrderInput) {}, false},
		{"missing ref", func(in *models.CreateOrderInput) { in.Ref = "" }, true},
		{"no lines", func(in *models.CreateOrderInput) { in.Lines = nil }, true},
		{"total mismatch", func(in *models.CreateOrderInput) { in.ItemsTotal = 70000 }, true},
		{"count mismatch", func(in *models.CreateOrderInput) { in.ItemsCount = 2 }, true},
		{"malformed item id", func(in *models.CreateOrderInput) {
			in.Lines = []models.OrderLine{{MenuItemID: "abc", TenantID: "1", Price: 1000, Qty: 1}}
			in.ItemsCount, in.ItemsTotal = 1, 1000
		}, true},
		{"malformed tenant id", func(in *models.CreateOrderInput) {
			in.Lines = []models.OrderLine{{MenuItemID: "1", TenantID: "", Price: 1000, Qty: 1}}
			in.ItemsCount, in.ItemsTotal = 1, 1000
		}, true},
		{"zero qty", func(in *models.CreateOrderInput) {
			in.Lines = []models.OrderLine{{MenuItemID: "1", Price: 1000, Qty: 0}}
			in.ItemsCount, in.ItemsTotal = 0, 0
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := ValidateOrderInput(in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOrderInput() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// Integration test for the order lifecycle (requires a migrated DB). Skip if db.Pool is nil or -short.
func TestOrderLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping order integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping order integration test: no DB pool")
	}
	ctx := context.Background()
	in := validInput()
	in.Ref = uuid.NewString()

	if _, err := CreateOrder(ctx, in); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	o, err := GetOrderByRef(ctx, in.Ref)
	if err != nil {
		t.Fatalf("GetOrderByRef: %v", err)
	}
	if o.Status != models.OrderStatusPending || o.ItemsTotal != 69000 {
		t.Errorf("new order = %+v", o)
	}
	if _, err := MarkOrderPaid(ctx, in.Ref, "charge-1"); err != nil {
		t.Fatalf("MarkOrderPaid: %v", err)
	}
	if _, err := MarkOrderPaid(ctx, in.Ref, "charge-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second MarkOrderPaid err = %v, want ErrNotFound", err)
	}
}
