package config

import (
	"testing"
	"time"
)

func TestParsePaymentMethods(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"qris,bca,blu,gopay", []string{"qris", "bca", "blu", "gopay"}, false},
		{" GoPay , qris,gopay", []string{"gopay", "qris"}, false},
		{"qris,,", []string{"qris"}, false},
		{"cash", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		got, err := ParsePaymentMethods(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePaymentMethods(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParsePaymentMethods(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i].ID != tt.want[i] || got[i].Name == "" {
				t.Errorf("ParsePaymentMethods(%q)[%d] = %+v, want id %s", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PORT", "")
	t.Setenv("CHECKOUT_CLEAR_DELAY", "")
	t.Setenv("PAYMENT_METHODS", "")
	t.Setenv("AMQP_QUEUE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Port != 5432 {
		t.Errorf("DB.Port = %d, want 5432", cfg.DB.Port)
	}
	if cfg.Checkout.ClearDelay != 500*time.Millisecond {
		t.Errorf("ClearDelay = %v, want 500ms", cfg.Checkout.ClearDelay)
	}
	if len(cfg.Checkout.PaymentMethods) != 4 {
		t.Errorf("PaymentMethods = %v, want 4 defaults", cfg.Checkout.PaymentMethods)
	}
	if cfg.Broker.Queue != "orders" {
		t.Errorf("Broker.Queue = %q, want orders", cfg.Broker.Queue)
	}
}

func TestLoadRejectsBadDelay(t *testing.T) {
	t.Setenv("CHECKOUT_CLEAR_DELAY", "soon")
	if _, err := Load(); err == nil {
		t.Error("Load with bad CHECKOUT_CLEAR_DELAY: want error")
	}
}
