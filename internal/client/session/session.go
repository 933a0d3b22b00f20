// Package session owns the client's single session state: the current
// authenticated user, the startup loading flag, and the pending
// two-factor flag. All mutation goes through the four operations
// CheckSession, Login, Verify2FA and Logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mkalinins/commportal/internal/client/api"
	"github.com/mkalinins/commportal/internal/client/tokenstore"
	"github.com/mkalinins/commportal/internal/logging"
	"github.com/mkalinins/commportal/internal/portal"
)

// ErrBusy is returned when Login or Verify2FA is called while another
// authentication request is still in flight. The caller should ignore the
// duplicate submission.
var ErrBusy = errors.New("authentication request already in flight")

// RestoreMode decides what CheckSession does when a persisted token exists.
type RestoreMode string

const (
	// RestoreVerify calls the backend's verify endpoint and populates the
	// user from the response; any failure discards the token.
	RestoreVerify RestoreMode = "verify"

	// RestoreOff skips the remote call entirely: the token stays in durable
	// storage but the user is not restored, so the session behaves as
	// logged-out until the next login.
	RestoreOff RestoreMode = "off"
)

// AuthAPI is the slice of the transport the session store needs.
// api.Client satisfies it.
type AuthAPI interface {
	Verify(ctx context.Context, token string) (*portal.User, error)
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Verify2FA(ctx context.Context, code string) (*api.TwoFactorResult, error)
	Logout(ctx context.Context, token string) error
}

// Snapshot is a point-in-time copy of the session state. The User pointer
// is shared but treated as immutable.
type Snapshot struct {
	User        *portal.User
	IsLoading   bool
	Requires2FA bool
}

// IsAuthenticated is derived, never stored: the session is authenticated
// exactly when a user is present.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil
}

// Options tunes a Store.
type Options struct {
	// RestoreMode selects the CheckSession behavior; empty means RestoreVerify.
	RestoreMode RestoreMode

	// LogoutNotifyTimeout bounds the fire-and-forget remote logout call.
	LogoutNotifyTimeout time.Duration
}

// Store is the process-wide session state holder. It is constructed once at
// application bootstrap and handed to the components that need it; nothing
// in this package keeps global state.
type Store struct {
	client AuthAPI
	tokens *tokenstore.TokenStore
	log    logging.Logger

	restoreMode   RestoreMode
	logoutTimeout time.Duration

	mu          sync.Mutex
	user        *portal.User
	isLoading   bool
	requires2FA bool
	inFlight    bool

	checkOnce sync.Once
}

// NewStore builds a Store in the initial loading state. CheckSession must be
// called once before the state settles.
func NewStore(client AuthAPI, tokens *tokenstore.TokenStore, log logging.Logger, opts Options) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	if opts.RestoreMode == "" {
		opts.RestoreMode = RestoreVerify
	}
	if opts.LogoutNotifyTimeout <= 0 {
		opts.LogoutNotifyTimeout = 3 * time.Second
	}
	return &Store{
		client:        client,
		tokens:        tokens,
		log:           log,
		restoreMode:   opts.RestoreMode,
		logoutTimeout: opts.LogoutNotifyTimeout,
		isLoading:     true,
	}
}

// Snapshot returns the current state for decision making. It is re-read on
// every use; decisions are never cached.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:        s.user,
		IsLoading:   s.isLoading,
		Requires2FA: s.requires2FA,
	}
}

// Token returns the persisted bearer token, if any.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.tokens.Token(ctx)
}

// CheckSession attempts to restore a previous session from the persisted
// token. It runs at most once; later calls are no-ops. Failures are logged
// and absorbed, never returned: on any failure the token is deleted and the
// session stays logged-out. The loading flag drops on every exit path.
func (s *Store) CheckSession(ctx context.Context) {
	s.checkOnce.Do(func() {
		defer s.setLoading(false)

		token, err := s.tokens.Token(ctx)
		if err != nil {
			s.log.Error(ctx, "reading persisted token failed", "error", err)
			return
		}
		if token == "" {
			return
		}
		if s.restoreMode == RestoreOff {
			s.log.Debug(ctx, "session restore disabled, token kept but not verified")
			return
		}

		user, err := s.client.Verify(ctx, token)
		if err != nil {
			s.log.Warn(ctx, "session restore failed, discarding token", "error", err)
			if derr := s.tokens.Delete(ctx); derr != nil {
				s.log.Error(ctx, "deleting stale token failed", "error", derr)
			}
			return
		}

		s.mu.Lock()
		s.user = user
		s.requires2FA = false
		s.mu.Unlock()
		s.log.Info(ctx, "session restored", "user", user.Email, "role", user.Role)
	})
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.isLoading = v
	s.mu.Unlock()
}

// begin marks an authentication call as in flight, rejecting duplicates.
func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrBusy
	}
	s.inFlight = true
	return nil
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// Login performs the first authentication factor. Depending on the backend's
// answer it either marks the session as awaiting a second factor or finalizes
// it immediately. On error the session state is unchanged and the error
// propagates to the caller for display.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if result.Requires2FA {
		// Entering the pending state replaces any existing session: a user
		// and a pending second factor never coexist.
		s.mu.Lock()
		hadUser := s.user != nil
		s.user = nil
		s.requires2FA = true
		s.mu.Unlock()
		if hadUser {
			if derr := s.tokens.Delete(ctx); derr != nil {
				s.log.Warn(ctx, "deleting token of replaced session failed", "error", derr)
			}
		}
		return nil
	}

	if result.Token == "" || result.User == nil {
		return fmt.Errorf("login: %w: incomplete response without second factor", api.ErrUnavailable)
	}
	return s.finalize(ctx, result.Token, result.User)
}

// Verify2FA submits the out-of-band code and finalizes the session on
// success. On failure the pending two-factor flag is left set so the caller
// stays on the verification step and may retry.
func (s *Store) Verify2FA(ctx context.Context, code string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	result, err := s.client.Verify2FA(ctx, code)
	if err != nil {
		return fmt.Errorf("verify 2fa: %w", err)
	}

	if result.Token == "" || result.User == nil {
		return fmt.Errorf("verify 2fa: %w: incomplete response", api.ErrUnavailable)
	}
	return s.finalize(ctx, result.Token, result.User)
}

// finalize persists the token and installs the user. The token write happens
// first: if it fails, the session is left untouched and the error propagates,
// so there is never a user without a persisted token.
func (s *Store) finalize(ctx context.Context, token string, user *portal.User) error {
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	s.mu.Lock()
	s.user = user
	s.requires2FA = false
	s.mu.Unlock()
	s.log.Info(ctx, "session established", "user", user.Email, "role", user.Role)
	return nil
}

// Logout clears the session. It never fails: the token delete is
// best-effort, the remote notification is fire-and-forget with its own
// timeout, and local state is cleared unconditionally.
func (s *Store) Logout(ctx context.Context) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading token during logout failed", "error", err)
	}

	if err := s.tokens.Delete(ctx); err != nil {
		s.log.Warn(ctx, "deleting token during logout failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.requires2FA = false
	s.mu.Unlock()

	if token != "" {
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), s.logoutTimeout)
			defer cancel()
			if err := s.client.Logout(nctx, token); err != nil {
				s.log.Debug(nctx, "remote logout notification failed", "error", err)
			}
		}()
	}
	s.log.Info(ctx, "logged out")
}
