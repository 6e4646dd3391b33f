package checkout

import (
	"sync"
	"time"

	errors "github.com/sparkserves/subscription-checkout/internal"
	"github.com/sparkserves/subscription-checkout/internal/pricing"
)

type SessionState string

const (
	// StateAwaitingConfirmation: a gateway order exists and exactly one
	// confirmation may claim it.
	StateAwaitingConfirmation SessionState = "awaiting_confirmation"
	StateVerifying            SessionState = "verifying"
	StateCompleted            SessionState = "completed"
	StateFailed               SessionState = "failed"
)

// Session is the server-held state of one checkout attempt, keyed by the
// gateway order id. The quoted amounts live here, never in the confirmation
// request, so a tampered client cannot change what gets recorded.
type Session struct {
	CheckoutID    string
	OrderID       string
	Receipt       string
	State         SessionState
	Form          FormSnapshot
	ProductType   string
	Tenure        string
	TenureMonths  int
	Quote         pricing.Quote
	PaymentOption pricing.PaymentOption
	ChargeAmount  int64 // rupees collected now
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SessionStore keeps in-flight checkout sessions in memory. Sessions are
// short-lived by nature: they span the gap between order creation and the
// customer finishing the payment widget.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
	}
}

func (s *SessionStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	s.sessions[session.OrderID] = session
}

func (s *SessionStore) Get(orderID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[orderID]
	if !ok {
		return Session{}, errors.ErrSessionNotFound
	}
	return *session, nil
}

// Claim atomically moves a session from awaiting to verifying. Only one
// confirmation ever wins the claim; everything after the first gets a
// conflict, whether the first attempt is still running or already resolved.
func (s *SessionStore) Claim(orderID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[orderID]
	if !ok {
		return Session{}, errors.ErrSessionNotFound
	}
	if session.State != StateAwaitingConfirmation {
		return Session{}, errors.ErrDuplicateConfirmation
	}

	session.State = StateVerifying
	session.UpdatedAt = time.Now()
	return *session, nil
}

// Reopen returns a claimed session to awaiting, for failures the customer is
// allowed to retry, such as the gateway being briefly unreachable during the
// amount check.
func (s *SessionStore) Reopen(orderID string) {
	s.transition(orderID, StateVerifying, StateAwaitingConfirmation, "")
}

func (s *SessionStore) Complete(orderID string) {
	s.transition(orderID, StateVerifying, StateCompleted, "")
}

func (s *SessionStore) Fail(orderID, reason string) {
	s.transition(orderID, StateVerifying, StateFailed, reason)
}

func (s *SessionStore) transition(orderID string, from, to SessionState, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[orderID]
	if !ok || session.State != from {
		return
	}
	session.State = to
	session.FailureReason = reason
	session.UpdatedAt = time.Now()
}

// Prune drops sessions older than maxAge. Resolved sessions are kept until
// then so late duplicate confirmations still get a conflict instead of a
// not-found.
func (s *SessionStore) Prune(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for orderID, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, orderID)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
