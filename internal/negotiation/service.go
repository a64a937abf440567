package negotiation

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

var ErrNotFound = errors.New("negotiation not found")

// Scheduler defers work to simulate the seller's response latency. Production
// code uses timers; tests substitute a synchronous implementation.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Completer receives the outcome of a finished negotiation. The service calls
// it exactly once per session, after the accepting message is appended.
type Completer interface {
	NegotiationCompleted(ctx context.Context, outcome Outcome) error
}

// Service owns the in-memory session table. Sessions are not persisted;
// a restart discards all open negotiations.
type Service struct {
	scheduler  Scheduler
	replyDelay time.Duration
	completer  Completer
	logger     *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(scheduler Scheduler, replyDelay time.Duration, completer Completer, logger *log.Logger) *Service {
	return &Service{
		scheduler:  scheduler,
		replyDelay: replyDelay,
		completer:  completer,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
}

type StartParams struct {
	ProductID   string
	ProductName string
	BuyerID     string
	SellerID    string
	SellerName  string
	ListPrice   float64
	Unit        string
}

func (s *Service) Start(p StartParams) *Session {
	sess := NewSession(p.ProductID, p.ProductName, p.BuyerID, p.SellerID, p.SellerName, p.ListPrice, p.Unit)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

func (s *Service) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return snapshot(sess), nil
}

// SendMessage appends a buyer message and schedules the canned seller reply.
// Scheduling happens outside the lock so a synchronous scheduler cannot
// deadlock against the session table.
func (s *Service) SendMessage(id, text string) (Message, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return Message{}, ErrNotFound
	}

	m, err := sess.AppendBuyerMessage(text)
	s.mu.Unlock()
	if err != nil {
		return Message{}, err
	}

	s.scheduler.AfterFunc(s.replyDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, err := sess.SellerReply(); err != nil {
			s.logger.Printf("negotiation %s: seller reply dropped: %v", sess.ID, err)
		}
	})

	return m, nil
}

// SendOffer appends a pending buyer offer and schedules the seller's decision
// on it. Acceptance by the seller completes the session.
func (s *Service) SendOffer(id string, offer Offer) (Message, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return Message{}, ErrNotFound
	}

	m, err := sess.AppendBuyerOffer(offer)
	s.mu.Unlock()
	if err != nil {
		return Message{}, err
	}

	s.scheduler.AfterFunc(s.replyDelay, func() {
		s.mu.Lock()
		decision := Decide(offer, sess.ListPrice)
		_, outcome, err := sess.ApplySellerDecision(decision)
		s.mu.Unlock()

		if err != nil {
			s.logger.Printf("negotiation %s: seller decision dropped: %v", sess.ID, err)
			return
		}
		if outcome != nil {
			s.finish(*outcome)
		}
	})

	return m, nil
}

// AcceptOffer is the buyer accepting a pending seller counter-offer.
func (s *Service) AcceptOffer(id, offerID string) (Message, error) {
	s.mu.Lock()

	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return Message{}, ErrNotFound
	}

	m, outcome, err := sess.AcceptOffer(offerID)
	s.mu.Unlock()
	if err != nil {
		return Message{}, err
	}

	s.finish(*outcome)
	return m, nil
}

// RejectOffer is the buyer declining a pending seller counter-offer.
func (s *Service) RejectOffer(id, offerID string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Message{}, ErrNotFound
	}
	return sess.RejectOffer(offerID)
}

func (s *Service) finish(outcome Outcome) {
	if s.completer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.completer.NegotiationCompleted(ctx, outcome); err != nil {
		s.logger.Printf("negotiation %s: completion hook failed: %v", outcome.NegotiationID, err)
	}
}

func snapshot(sess *Session) Session {
	cp := *sess
	cp.Messages = make([]Message, len(sess.Messages))
	copy(cp.Messages, sess.Messages)
	return cp
}
