package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/cart"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
)

// State is everything the storefront keeps for one browser session.
// Callers hold the lock for the whole of a request that touches it.
type State struct {
	sync.Mutex

	Cart   *cart.Cart
	Orders *order.Board

	owner    string
	newCart  func() *cart.Cart
	lastSeen time.Time
}

// BindOwner ties the state to the signed-in user. When a different user
// shows up on the same browser session the cart and order board start over.
func (st *State) BindOwner(userID string) {
	if st.owner == userID {
		return
	}
	st.owner = userID
	st.Cart = st.newCart()
	st.Orders = order.NewBoard()
}

func (st *State) Owner() string { return st.owner }

// Store keeps session state in memory, keyed by the session cookie.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*State
	newCart  func() *cart.Cart
	now      func() time.Time
}

type Option func(*Store)

// WithCartFactory controls how carts for new sessions are built.
func WithCartFactory(f func() *cart.Cart) Option {
	return func(s *Store) { s.newCart = f }
}

// WithClock is used by tests to control idle expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*State),
		newCart:  func() *cart.Cart { return cart.New() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the state for id, creating an empty one on first use.
func (s *Store) Get(id string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		st = &State{Cart: s.newCart(), Orders: order.NewBoard(), newCart: s.newCart}
		s.sessions[id] = st
	}
	st.lastSeen = s.now()
	return st
}

func (s *Store) Drop(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions not seen for longer than idle and returns how many
// were removed.
func (s *Store) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, st := range s.sessions {
		if st.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval, idle time.Duration, logger *zap.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(idle); n > 0 {
				logger.Debug("evicted idle sessions", zap.Int("count", n), zap.Int("remaining", s.Len()))
			}
		}
	}
}
