// Package session keeps visitors' quotation sessions in memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/Simplici0/solarquote/internal/quote"
)

// Store holds sessions in an expiring in-memory cache. Nothing survives a restart.
// Writes are serialised so overlapping requests from one visitor do not lose edits.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache
	now   func() time.Time
}

// NewStore creates a store whose sessions expire after ttl without use.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, 2*ttl),
		now:   time.Now,
	}
}

// Get returns the session with id, refreshing its expiry.
func (s *Store) Get(id string) (quote.Session, bool) {
	if id == "" {
		return quote.Session{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(id)
	if !ok {
		return quote.Session{}, false
	}
	sess := v.(quote.Session)
	s.cache.SetDefault(id, sess)
	return sess, true
}

// Create starts a new session with default form values.
func (s *Store) Create() quote.Session {
	sess := quote.NewSession(uuid.NewString(), s.now())
	s.cache.SetDefault(sess.ID, sess)
	return sess
}

// Reset replaces the form of an existing session id with a fresh default form.
func (s *Store) Reset(id string) quote.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := quote.NewSession(id, s.now())
	s.cache.SetDefault(id, sess)
	return sess
}

// Save stores sess under its ID.
func (s *Store) Save(sess quote.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.SetDefault(sess.ID, sess)
}

// Update applies fn to the stored version of sess and saves the result.
// If sess is no longer stored, fn receives sess itself. On error nothing is saved
// and the current session is returned.
func (s *Store) Update(sess quote.Session, fn func(quote.Session) (quote.Session, error)) (quote.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := sess
	if v, ok := s.cache.Get(sess.ID); ok {
		current = v.(quote.Session)
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	s.cache.SetDefault(sess.ID, next)
	return next, nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
