package services

import (
	"testing"

	"food-order/models"
)

func TestFilterMenu(t *testing.T) {
	items := []models.MenuItem{
		{ID: "1", Name: "Paket Chicken Grill", Description: "Nasi + Ayam Grill"},
		{ID: "2", Name: "Paket Chicken Katsu", Description: "Nasi + Katsu"},
		{ID: "3", Name: "Es Teh Manis"},
	}
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty keeps all", "  ", []string{"1", "2", "3"}},
		{"name, any case", "CHICKEN", []string{"1", "2"}},
		{"description", "ayam", []string{"1"}},
		{"no match", "sate", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMenu(items, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterMenu(%q) = %d items, want %d", tt.query, len(got), len(tt.want))
			}
			for i, it := range got {
				if it.ID != tt.want[i] {
					t.Errorf("item %d = %s, want %s", i, it.ID, tt.want[i])
				}
			}
		})
	}
}
