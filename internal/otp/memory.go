package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps challenges in a mutex-guarded map. Expiry is evaluated
// lazily on Verify; a janitor goroutine additionally sweeps abandoned
// challenges so the map cannot grow without bound.
type MemoryStore struct {
	mu          sync.Mutex
	challenges  map[string]*Challenge
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
	done        chan struct{}
	closeOnce   sync.Once
}

const janitorInterval = 30 * time.Second

// NewMemoryStore creates an in-process challenge store and starts its
// janitor. Non-positive ttl or maxAttempts fall back to the defaults.
func NewMemoryStore(ttl time.Duration, maxAttempts int) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	s := &MemoryStore{
		challenges:  make(map[string]*Challenge),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
		done:        make(chan struct{}),
	}

	go s.janitor()

	return s
}

// Issue stores a new challenge for phone, replacing any existing one.
func (s *MemoryStore) Issue(_ context.Context, phone, code string) error {
	hash, err := hashCode(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[phone] = &Challenge{
		CodeHash:  hash,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Verify checks code against the stored challenge for phone.
func (s *MemoryStore) Verify(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[phone]
	if !ok {
		return ErrNoChallenge
	}

	if s.now().After(ch.ExpiresAt) {
		delete(s.challenges, phone)
		return ErrExpired
	}

	if ch.Attempts >= s.maxAttempts {
		delete(s.challenges, phone)
		return ErrTooManyAttempts
	}

	if !codeMatches(ch.CodeHash, code) {
		ch.Attempts++
		return &MismatchError{Remaining: s.maxAttempts - ch.Attempts}
	}

	delete(s.challenges, phone)
	return nil
}

// Clear drops any stored challenge for phone.
func (s *MemoryStore) Clear(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, phone)
	return nil
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for phone, ch := range s.challenges {
		if now.After(ch.ExpiresAt) {
			delete(s.challenges, phone)
		}
	}
}
