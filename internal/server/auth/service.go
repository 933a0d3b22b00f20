package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkalinins/commportal/internal/logging"
	"github.com/mkalinins/commportal/internal/portal"
)

type account struct {
	user         portal.User
	passwordHash []byte
}

type challenge struct {
	userID    string
	expiresAt time.Time
}

// Service authenticates against a fixed set of in-memory accounts.
// Accounts with a phone number on file require a 2FA code; the code is
// written to the log instead of being sent anywhere.
type Service struct {
	accounts map[string]account // keyed by email
	secret   []byte
	tokenTTL time.Duration
	codeTTL  time.Duration
	log      logging.Logger

	mu      sync.Mutex
	pending map[string]challenge // keyed by the code itself
	now     func() time.Time
}

type Option func(*Service)

func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(secret []byte, tokenTTL, codeTTL time.Duration, log logging.Logger, opts ...Option) *Service {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Service{
		accounts: seedAccounts(),
		secret:   secret,
		tokenTTL: tokenTTL,
		codeTTL:  codeTTL,
		log:      log,
		pending:  make(map[string]challenge),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func seedAccounts() map[string]account {
	seeds := []struct {
		user     portal.User
		password string
	}{
		{portal.User{ID: uuid.NewString(), Email: "maija@portal.test", Name: "Maija Ozola", Role: portal.RoleMember, Phone: "+371 2611 0001"}, "member123"},
		{portal.User{ID: uuid.NewString(), Email: "bruno@portal.test", Name: "Bruno Krasts", Role: portal.RoleBoard, Phone: "+371 2611 0002"}, "board123"},
		{portal.User{ID: uuid.NewString(), Email: "agnese@portal.test", Name: "Agnese Vilka", Role: portal.RoleAdmin}, "admin123"},
	}

	accounts := make(map[string]account, len(seeds))
	for _, seed := range seeds {
		// MinCost keeps startup fast; these are throwaway dev accounts.
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("hashing seed password: %v", err))
		}
		accounts[seed.user.Email] = account{user: seed.user, passwordHash: hash}
	}
	return accounts
}

// LoginResult is either a completed sign-in (Token and User set) or a
// pending one (Requires2FA set, nothing else).
type LoginResult struct {
	Requires2FA bool
	Token       string
	User        portal.User
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	acc, ok := s.accounts[email]
	if !ok {
		// Burn a comparison anyway so unknown emails take as long as bad passwords.
		bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(password))
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if acc.user.Phone == "" {
		token, err := GenerateToken(acc.user, s.secret, s.tokenTTL)
		if err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Token: token, User: acc.user}, nil
	}

	code, err := s.issueChallenge(acc.user.ID)
	if err != nil {
		return LoginResult{}, err
	}
	s.log.Info(ctx, "2fa code issued", "email", email, "code", code)
	return LoginResult{Requires2FA: true}, nil
}

// issueChallenge stores a fresh 6-digit code. The code itself is the
// challenge key, which is why collisions are retried.
func (s *Service) issueChallenge(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	for i := 0; i < 10; i++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		if _, taken := s.pending[code]; taken {
			continue
		}
		s.pending[code] = challenge{userID: userID, expiresAt: s.now().Add(s.codeTTL)}
		return code, nil
	}
	return "", fmt.Errorf("could not allocate a unique code")
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generating code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *Service) pruneLocked() {
	now := s.now()
	for code, ch := range s.pending {
		if now.After(ch.expiresAt) {
			delete(s.pending, code)
		}
	}
}

func (s *Service) Verify2FA(ctx context.Context, code string) (string, portal.User, error) {
	s.mu.Lock()
	ch, ok := s.pending[code]
	if ok {
		delete(s.pending, code)
	}
	s.mu.Unlock()

	if !ok || s.now().After(ch.expiresAt) {
		return "", portal.User{}, ErrInvalidCode
	}

	user, ok := s.userByID(ch.userID)
	if !ok {
		return "", portal.User{}, ErrInvalidCode
	}

	token, err := GenerateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return "", portal.User{}, err
	}
	return token, user, nil
}

func (s *Service) Verify(ctx context.Context, token string) (portal.User, error) {
	return UserFromToken(token, s.secret)
}

func (s *Service) userByID(id string) (portal.User, bool) {
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, true
		}
	}
	return portal.User{}, false
}
