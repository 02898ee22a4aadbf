package client

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// State is the authentication state of a client session.
type State int

const (
	LoggedOut State = iota
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "logged out"
	}
}

// Logout reasons, as reported to metrics and logs.
const (
	reasonUnauthorized  = "unauthorized"
	reasonExpiredRetry  = "expired_on_retry"
	reasonRefreshFailed = "refresh_failed"
	reasonUser          = "user"
)

// session coordinates token recovery for one client. Every refresh and every
// logout bumps gen; a request records gen before it is sent, so a request that expired
// under an old generation retries without refreshing again.
type session struct {
	mu    sync.Mutex
	state State
	gen   uint64
	group singleflight.Group

	// denied is the outcome of the last failed refresh, shared with requests
	// of deniedGen that arrive after it finished.
	denied    *denial
	deniedGen uint64

	refresh  func(ctx context.Context) error
	onLogout func(ctx context.Context, reason string)
}

// denial is shared by the requests that waited on one failed refresh, so
// they redirect to sign-in once between them.
type denial struct {
	once sync.Once
}

func (d *denial) do(fn func()) {
	if d == nil {
		fn()
		return
	}
	d.once.Do(fn)
}

func (s *session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *session) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// authenticate marks a successful sign-in.
func (s *session) authenticate() {
	s.mu.Lock()
	s.state = Authenticated
	s.mu.Unlock()
}

// logout moves the session to LoggedOut, starting a new generation, and runs
// the logout hook. It reports false, doing nothing, when the session was
// already logged out.
func (s *session) logout(ctx context.Context, reason string) bool {
	s.mu.Lock()
	if s.state == LoggedOut {
		s.mu.Unlock()
		return false
	}
	s.state = LoggedOut
	s.gen++
	s.mu.Unlock()

	if s.onLogout != nil {
		s.onLogout(ctx, reason)
	}
	return true
}

// recover runs the token-expiry recovery for a request sent under the
// observed generation. Concurrent callers share a single refresh call and
// all see its outcome. A nil error means the request should be re-issued.
// A failed refresh also returns the denial its waiters share.
func (s *session) recover(ctx context.Context, observed uint64) (*denial, error) {
	key := strconv.FormatUint(observed, 10)
	// the refresh is not cancelled when the caller that started it gives up
	detached := context.WithoutCancel(ctx)

	ch := s.group.DoChan(key, func() (any, error) {
		s.mu.Lock()
		switch {
		case s.state == LoggedOut && s.denied != nil && s.deniedGen == observed:
			d := s.denied
			s.mu.Unlock()
			return d, ErrUnauthorized
		case s.state == LoggedOut:
			s.mu.Unlock()
			return nil, ErrUnauthorized
		case s.gen != observed:
			s.mu.Unlock()
			return nil, nil
		}
		s.state = Refreshing
		s.mu.Unlock()

		err := s.refresh(detached)

		s.mu.Lock()
		if err == nil {
			s.gen++
			if s.state == Refreshing {
				s.state = Authenticated
			}
			s.mu.Unlock()
			return nil, nil
		}
		d := &denial{}
		s.denied, s.deniedGen = d, observed
		s.mu.Unlock()

		s.logout(detached, reasonRefreshFailed)
		return d, errors.Join(ErrUnauthorized, err)
	})

	select {
	case res := <-ch:
		d, _ := res.Val.(*denial)
		return d, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
