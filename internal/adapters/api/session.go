package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomdyson/go-amee/internal/domain"
)

type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateAuthenticated
	StateRetryingAfterExpiry
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateRetryingAfterExpiry:
		return "retrying_after_expiry"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

type Credentials struct {
	Username string
	Password string
}

type exchangeFunc func(ctx context.Context, credentials Credentials) (string, error)

// Session owns the AMEE authentication token. The token is only ever
// replaced as a whole.
type Session struct {
	mu          sync.Mutex
	credentials Credentials
	token       string
	state       SessionState
	exchange    exchangeFunc
}

func newSession(credentials Credentials, exchange exchangeFunc) *Session {
	return &Session{credentials: credentials, exchange: exchange}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// EnsureToken performs the credential exchange when no token is held.
func (s *Session) EnsureToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return nil
	}

	return s.authenticateLocked(ctx, StateAuthenticated)
}

// Reauthenticate drops the held token and exchanges credentials again. The
// session stays in StateRetryingAfterExpiry until the retried request is
// confirmed or rejected.
func (s *Session) Reauthenticate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.state = StateUnauthenticated

	return s.authenticateLocked(ctx, StateRetryingAfterExpiry)
}

func (s *Session) confirm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRetryingAfterExpiry {
		s.state = StateAuthenticated
	}
}

func (s *Session) reject() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.state = StateUnauthenticated
}

func (s *Session) authenticateLocked(ctx context.Context, next SessionState) error {
	token, err := s.exchange(ctx, s.credentials)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: server returned no auth token", domain.ErrAuth)
	}

	s.token = token
	s.state = next

	return nil
}
