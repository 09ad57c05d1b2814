package security

import (
	"sync"
	"time"
)

type SessionState int

const (
	Unauthenticated SessionState = iota
	Loading
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// AuthSession is one observed state of the store. UserID is set only when
// State is Authenticated.
type AuthSession struct {
	State     SessionState
	UserID    string
	ExpiresAt time.Time
}

// SessionStore tracks who is signed in on one connection. State changes only
// through Begin, SignedIn and SignedOut; observers read it through Current
// or Subscribe. An authenticated session signs itself out when the token
// expires.
type SessionStore struct {
	mu      sync.Mutex
	current AuthSession
	expiry  *time.Timer
	expiryN uint64
	subs    map[int]chan AuthSession
	nextID  int
	closed  bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{subs: make(map[int]chan AuthSession)}
}

func (s *SessionStore) Current() AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Begin marks a credential check in progress. It only leaves Unauthenticated.
func (s *SessionStore) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.State != Unauthenticated {
		return
	}
	s.set(AuthSession{State: Loading})
}

// SignedIn authenticates userID until expiresAt. Calling it again while
// authenticated refreshes the expiry.
func (s *SessionStore) SignedIn(userID string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.stopExpiry()
	wait := time.Until(expiresAt)
	if wait <= 0 {
		s.set(AuthSession{State: Unauthenticated})
		return
	}
	s.set(AuthSession{State: Authenticated, UserID: userID, ExpiresAt: expiresAt})
	gen := s.expiryN
	s.expiry = time.AfterFunc(wait, func() { s.expire(gen) })
}

// expire ignores timers that a refresh or sign-out already replaced.
func (s *SessionStore) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.expiryN || s.current.State != Authenticated {
		return
	}
	s.expiry = nil
	s.set(AuthSession{State: Unauthenticated})
}

func (s *SessionStore) SignedOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopExpiry()
	if s.current.State == Unauthenticated {
		return
	}
	s.set(AuthSession{State: Unauthenticated})
}

// Subscribe returns a channel that receives the current state and then every
// change, latest wins. The returned func unsubscribes and closes the channel.
func (s *SessionStore) Subscribe() (<-chan AuthSession, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan AuthSession, 1)
	ch <- s.current
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops the expiry timer and closes every subscription.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopExpiry()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// set must be called with mu held.
func (s *SessionStore) set(next AuthSession) {
	s.current = next
	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
}

func (s *SessionStore) stopExpiry() {
	s.expiryN++
	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
}
