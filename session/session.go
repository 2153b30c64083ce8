// Package session keeps per-user ordering state: the cart, the open selection
// sheet and checkout choices. Nothing here survives a restart.
package session

import (
	"strings"
	"sync"

	"food-order/cart"
	"food-order/models"
)

type Session struct {
	UserID int64
	Cart   *cart.Store
	Sel    Selection

	// TenantID is the restaurant the user browsed last; used for the cart badge.
	TenantID      string
	PaymentMethod string
	ReferralCode  string
	// Pending is the placed order waiting for the payment provider.
	Pending *models.Receipt
}

// ResetCheckout forgets the checkout choices, e.g. after a completed order.
func (s *Session) ResetCheckout() {
	s.PaymentMethod = ""
	s.ReferralCode = ""
	s.Pending = nil
}

// SetReferral stores a normalized referral code.
func (s *Session) SetReferral(code string) string {
	s.ReferralCode = strings.ToUpper(strings.TrimSpace(code))
	return s.ReferralCode
}

// Registry owns the sessions of all users. It is created once and passed to the
// handlers that need it.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Get returns the user's session, creating an empty one on first use.
func (r *Registry) Get(userID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		s = &Session{UserID: userID, Cart: cart.New()}
		r.sessions[userID] = s
	}
	return s
}

// Reset drops the user's session; the next Get starts with an empty cart.
func (r *Registry) Reset(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
