package cart

import (
	"testing"

	"food-order/models"
)

var (
	grill = models.MenuItem{ID: "1", TenantID: "1", Name: "Paket Chicken Grill", Price: 25000}
	katsu = models.MenuItem{ID: "2", TenantID: "1", Name: "Paket Chicken Katsu", Price: 25000}
	combo = models.MenuItem{ID: "3", TenantID: "1", Name: "Paket Combo Double Chicken", Price: 19000}
)

func TestAddAccumulatesSameItem(t *testing.T) {
	tests := []struct {
		name string
		adds []int
		want int
	}{
		{"single", []int{1}, 1},
		{"two adds", []int{1, 1}, 2},
		{"mixed", []int{3, 2, 5}, 10},
		{"zero clamps to one", []int{0}, 1},
		{"negative clamps to one", []int{2, -4}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for _, q := range tt.adds {
				s.Add(grill, q)
			}
			if s.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", s.Len())
			}
			if got := s.Quantity(grill.ID); got != tt.want {
				t.Errorf("Quantity() = %d, want %d", got, tt.want)
			}
			if got := s.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := New()
	s.Add(katsu, 1)
	s.Add(grill, 1)
	s.Add(katsu, 2)
	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].Item.ID != katsu.ID || lines[1].Item.ID != grill.ID {
		t.Errorf("order = [%s %s], want [%s %s]", lines[0].Item.ID, lines[1].Item.ID, katsu.ID, grill.ID)
	}
	if lines[0].Qty != 3 {
		t.Errorf("katsu qty = %d, want 3", lines[0].Qty)
	}
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		itemID    string
		qty       int
		wantLen   int
		wantCount int
		wantTotal int64
	}{
		{"update", grill.ID, 4, 2, 5, 4*25000 + 19000},
		{"zero removes", grill.ID, 0, 1, 1, 19000},
		{"negative removes", grill.ID, -1, 1, 1, 19000},
		{"unknown id is no-op", "missing", 7, 2, 3, 2*25000 + 19000},
		{"unknown id with zero is no-op", "missing", 0, 2, 3, 2*25000 + 19000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Add(grill, 2)
			s.Add(combo, 1)
			s.SetQuantity(tt.itemID, tt.qty)
			if s.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.wantLen)
			}
			if s.Count() != tt.wantCount {
				t.Errorf("Count() = %d, want %d", s.Count(), tt.wantCount)
			}
			if s.Total() != tt.wantTotal {
				t.Errorf("Total() = %d, want %d", s.Total(), tt.wantTotal)
			}
		})
	}
}

func TestSetQuantityRemovalKeepsOrderOfOthers(t *testing.T) {
	s := New()
	s.Add(grill, 1)
	s.Add(katsu, 1)
	s.Add(combo, 1)
	s.SetQuantity(katsu.ID, 0)
	lines := s.Lines()
	if len(lines) != 2 || lines[0].Item.ID != grill.ID || lines[1].Item.ID != combo.ID {
		t.Errorf("lines after removal = %+v", lines)
	}
	if s.Quantity(katsu.ID) != 0 {
		t.Errorf("removed item still has quantity %d", s.Quantity(katsu.ID))
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := New()
	s.Clear()
	if !s.IsEmpty() || s.Count() != 0 || s.Total() != 0 {
		t.Fatal("clear on empty cart should leave it empty")
	}
	s.Add(grill, 2)
	s.Add(combo, 1)
	s.Clear()
	s.Clear()
	if !s.IsEmpty() || s.Count() != 0 || s.Total() != 0 {
		t.Errorf("after Clear: len=%d count=%d total=%d", s.Len(), s.Count(), s.Total())
	}
}

func TestTotalUsesIntegerArithmetic(t *testing.T) {
	s := New()
	s.Add(grill, 1)
	s.Add(katsu, 1)
	s.Add(combo, 1)
	if got := s.Total(); got != 69000 {
		t.Errorf("Total() = %d, want 69000", got)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	s := New()
	s.Add(grill, 1)
	lines := s.Lines()
	lines[0].Qty = 99
	if s.Quantity(grill.ID) != 1 {
		t.Errorf("mutating Lines() result changed the cart: qty = %d", s.Quantity(grill.ID))
	}
}

func TestScenarioAddThenRemove(t *testing.T) {
	s := New()
	s.Add(grill, 1)
	if s.Count() != 1 || s.Total() != 25000 {
		t.Fatalf("after first add: count=%d total=%d", s.Count(), s.Total())
	}
	s.Add(grill, 1)
	if s.Count() != 2 || s.Total() != 50000 {
		t.Fatalf("after second add: count=%d total=%d", s.Count(), s.Total())
	}
	s.SetQuantity(grill.ID, 0)
	if s.Count() != 0 || s.Total() != 0 {
		t.Fatalf("after remove: count=%d total=%d", s.Count(), s.Total())
	}
}

func TestScenarioTwoItemsThenClear(t *testing.T) {
	s := New()
	s.Add(grill, 1)
	s.Add(combo, 1)
	if s.Total() != 44000 {
		t.Fatalf("Total() = %d, want 44000", s.Total())
	}
	s.Clear()
	if s.Total() != 0 || s.Count() != 0 {
		t.Fatalf("after Clear: count=%d total=%d", s.Count(), s.Total())
	}
	s.Clear()
	if s.Total() != 0 || s.Count() != 0 {
		t.Fatalf("after second Clear: count=%d total=%d", s.Count(), s.Total())
	}
}
