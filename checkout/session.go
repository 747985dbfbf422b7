package checkout

import (
	"fmt"
	"sync"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/cart"
	"github.com/Bishesh-P/coffee-alpico-sub000/models"
)

// Session is the state of one checkout attempt. It is created by Begin and
// replaced by the next Begin; nothing here is persisted.
type Session struct {
	Step       Step
	OrderID    string
	Platform   Platform
	ReceiptURL string
	Form       models.ShippingForm
	SaveInfo   bool

	variantsReadyAt time.Time
}

func (s *Session) assignOrderID(now time.Time, prefix string) {
	if s.OrderID == "" {
		s.OrderID = NewOrderID(prefix, now)
	}
}

// NewOrderID is prefix plus the last eight digits of the epoch millisecond.
func NewOrderID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%08d", prefix, now.UnixMilli()%100_000_000)
}

// Shopper is everything kept in memory for one guest session: the cart and
// the checkout in progress, if any.
type Shopper struct {
	ID   string
	Cart *cart.Cart

	mu       sync.Mutex
	session  *Session
	inFlight bool
	lastSeen time.Time
}

func NewShopper(id string, now time.Time) *Shopper {
	return &Shopper{ID: id, Cart: cart.New(), lastSeen: now}
}

// WithCart runs fn with exclusive access to the cart for editing. Editing
// abandons any checkout that has not reached success, so the order record,
// snapshot and PDF always price the same lines. Edits are refused while a
// checkout step is talking to the order sink.
func (sh *Shopper) WithCart(fn func(c *cart.Cart)) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.inFlight {
		return ErrTransitionInFlight
	}
	if sh.session != nil && sh.session.Step != StepSuccess {
		sh.session = nil
	}
	fn(sh.Cart)
	return nil
}

// ReadCart runs fn with the cart locked but leaves any checkout untouched.
func (sh *Shopper) ReadCart(fn func(c *cart.Cart)) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fn(sh.Cart)
}

// Touch records activity for idle expiry.
func (sh *Shopper) Touch(now time.Time) {
	sh.mu.Lock()
	sh.lastSeen = now
	sh.mu.Unlock()
}

// IdleSince reports when the shopper was last active.
func (sh *Shopper) IdleSince() time.Time {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.lastSeen
}

// beginFlight marks a side-effecting transition as running. Callers hold mu.
func (sh *Shopper) beginFlight() error {
	if sh.inFlight {
		return ErrTransitionInFlight
	}
	sh.inFlight = true
	return nil
}
