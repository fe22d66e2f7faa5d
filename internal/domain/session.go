package domain

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// BookingSession is one user's booking attempt, from a held rate to a terminal phase.
type BookingSession struct {
	BookHash  string
	Order     *OrderRef
	CreatedAt time.Time

	initStarted atomic.Bool

	mu          sync.RWMutex
	phase       Phase
	itemID      string
	paymentType *PaymentType
	failure     *BookingError
	updatedAt   time.Time
}

// SessionSnapshot is the persisted view of a session. Card data is never part of it.
type SessionSnapshot struct {
	OrderID         string
	RetiredOrderIDs []string
	BookHash        string
	ItemID          string
	Phase           Phase
	PaymentType     *PaymentType
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewSession(bookHash string, now time.Time) *BookingSession {
	return &BookingSession{
		BookHash:  strings.TrimSpace(bookHash),
		Order:     NewOrderRef(NewOrderID()),
		CreatedAt: now,
		phase:     PhaseInit,
		updatedAt: now,
	}
}

// ResumeSession re-enters a session straight into Processing, as after a 3DS return.
// The snapshot only needs an order id; any other recovered state is carried along.
func ResumeSession(snapshot SessionSnapshot, now time.Time) (*BookingSession, error) {
	orderID := strings.TrimSpace(snapshot.OrderID)
	if orderID == "" {
		return nil, ErrEmptyOrderID
	}

	created := snapshot.CreatedAt
	if created.IsZero() {
		created = now
	}

	session := &BookingSession{
		BookHash:  snapshot.BookHash,
		Order:     NewOrderRef(orderID),
		CreatedAt: created,
		phase:     PhaseProcessing,
		itemID:    snapshot.ItemID,
		updatedAt: now,
	}
	if snapshot.PaymentType != nil {
		payment := *snapshot.PaymentType
		session.paymentType = &payment
	}
	session.initStarted.Store(true)

	return session, nil
}

func (s *BookingSession) OrderID() string {
	return s.Order.Current()
}

func (s *BookingSession) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *BookingSession) Transition(next Phase, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.phase.checkTransition(next); err != nil {
		return err
	}
	s.phase = next
	s.updatedAt = now
	if next != PhaseError {
		s.failure = nil
	}
	return nil
}

// Fail moves the session to the phase carried by err and records err.
func (s *BookingSession) Fail(err *BookingError, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err.Phase != s.phase {
		if transitionErr := s.phase.checkTransition(err.Phase); transitionErr != nil {
			return transitionErr
		}
	}
	s.phase = err.Phase
	s.failure = err
	s.updatedAt = now
	return nil
}

func (s *BookingSession) Failure() *BookingError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failure
}

// BeginInitialization returns false if initialization already started on this session.
func (s *BookingSession) BeginInitialization() bool {
	return s.initStarted.CompareAndSwap(false, true)
}

func (s *BookingSession) SetDraft(itemID string, payment PaymentType, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemID = itemID
	s.paymentType = &payment
	s.updatedAt = now
}

func (s *BookingSession) ItemID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemID
}

func (s *BookingSession) PaymentType() (PaymentType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.paymentType == nil {
		return PaymentType{}, false
	}
	return *s.paymentType, true
}

// Ready reports whether the session can be tokenized and submitted.
func (s *BookingSession) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemID != "" && s.paymentType != nil
}

func (s *BookingSession) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := SessionSnapshot{
		OrderID:         s.Order.Current(),
		RetiredOrderIDs: s.Order.Retired(),
		BookHash:        s.BookHash,
		ItemID:          s.itemID,
		Phase:           s.phase,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.updatedAt,
	}
	if s.paymentType != nil {
		payment := *s.paymentType
		snapshot.PaymentType = &payment
	}
	return snapshot
}
