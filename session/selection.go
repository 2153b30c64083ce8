package session

import (
	"food-order/cart"
	"food-order/models"
)

// Selection is the item detail sheet: the item being looked at and the quantity
// being chosen. It lives only while the sheet is open.
type Selection struct {
	item *models.MenuItem
	qty  int
}

// Open shows item in the sheet and resets the chosen quantity to 1.
func (s *Selection) Open(item models.MenuItem) {
	s.item = &item
	s.qty = 1
}

func (s *Selection) IsOpen() bool { return s.item != nil }

// Item returns the selected item; ok is false when the sheet is closed.
func (s *Selection) Item() (models.MenuItem, bool) {
	if s.item == nil {
		return models.MenuItem{}, false
	}
	return *s.item, true
}

func (s *Selection) Quantity() int { return s.qty }

func (s *Selection) Increment() {
	if s.item == nil {
		return
	}
	s.qty++
}

// Decrement lowers the chosen quantity, never below 1.
func (s *Selection) Decrement() {
	if s.item == nil || s.qty <= 1 {
		return
	}
	s.qty--
}

// Commit adds the selection to c and closes the sheet. It returns false when
// nothing was selected.
func (s *Selection) Commit(c *cart.Store) bool {
	item, ok := s.Item()
	if !ok {
		return false
	}
	c.Add(item, s.qty)
	s.Dismiss()
	return true
}

func (s *Selection) Dismiss() {
	s.item = nil
	s.qty = 0
}
