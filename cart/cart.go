// Package cart holds the in-memory shopping cart of one ordering session.
package cart

import "food-order/models"

// Line is one menu item in the cart with its quantity (always >= 1).
type Line struct {
	Item models.MenuItem
	Qty  int
}

// Subtotal returns price * qty for the line.
func (l Line) Subtotal() int64 {
	return l.Item.Price * int64(l.Qty)
}

// Store is the cart of a single session. Lines keep the order of their first Add.
// A Store is owned by one session and is not safe for concurrent use.
type Store struct {
	lines []Line
}

func New() *Store {
	return &Store{lines: []Line{}}
}

func (s *Store) indexOf(itemID string) int {
	for i := range s.lines {
		if s.lines[i].Item.ID == itemID {
			return i
		}
	}
	return -1
}

// Add puts qty of item into the cart. If the item is already there its quantity grows
// in place. Quantities below 1 are treated as 1.
func (s *Store) Add(item models.MenuItem, qty int) {
	if qty < 1 {
		qty = 1
	}
	if i := s.indexOf(item.ID); i >= 0 {
		s.lines[i].Qty += qty
		return
	}
	s.lines = append(s.lines, Line{Item: item, Qty: qty})
}

// SetQuantity overwrites the quantity of itemID. qty <= 0 removes the line.
// Unknown ids are ignored.
func (s *Store) SetQuantity(itemID string, qty int) {
	i := s.indexOf(itemID)
	if i < 0 {
		return
	}
	if qty <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return
	}
	s.lines[i].Qty = qty
}

func (s *Store) Clear() {
	s.lines = []Line{}
}

// Count is the number of units in the cart (sum of quantities).
func (s *Store) Count() int {
	n := 0
	for _, l := range s.lines {
		n += l.Qty
	}
	return n
}

// Total is the sum of line subtotals in rupiah.
func (s *Store) Total() int64 {
	var total int64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the quantity of itemID, 0 if it is not in the cart.
func (s *Store) Quantity(itemID string) int {
	if i := s.indexOf(itemID); i >= 0 {
		return s.lines[i].Qty
	}
	return 0
}

func (s *Store) Len() int { return len(s.lines) }

func (s *Store) IsEmpty() bool { return len(s.lines) == 0 }
