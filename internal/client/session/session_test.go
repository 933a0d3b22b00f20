package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalinins/commportal/internal/client/api"
	"github.com/mkalinins/commportal/internal/client/tokenstore"
	"github.com/mkalinins/commportal/internal/portal"
)

// memRepo is an in-memory tokenstore.Repository for tests.
type memRepo struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string]string{}}
}

func (m *memRepo) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], m.getErr
}

func (m *memRepo) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memRepo) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
	return nil
}

func (m *memRepo) token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[tokenstore.TokenKey]
}

// fakeAPI implements AuthAPI with scripted responses.
type fakeAPI struct {
	mu sync.Mutex

	verifyUser *portal.User
	verifyErr  error

	loginResult *api.LoginResult
	loginErr    error
	loginDelay  time.Duration
	loginCalls  int

	twoFAResult *api.TwoFactorResult
	twoFAErr    error

	logoutCalled chan string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{logoutCalled: make(chan string, 1)}
}

func (f *fakeAPI) Verify(_ context.Context, token string) (*portal.User, error) {
	return f.verifyUser, f.verifyErr
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.LoginResult, error) {
	f.mu.Lock()
	f.loginCalls++
	delay := f.loginDelay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return f.loginResult, f.loginErr
}

func (f *fakeAPI) Verify2FA(_ context.Context, code string) (*api.TwoFactorResult, error) {
	return f.twoFAResult, f.twoFAErr
}

func (f *fakeAPI) Logout(_ context.Context, token string) error {
	select {
	case f.logoutCalled <- token:
	default:
	}
	return nil
}

var testUser = &portal.User{
	ID:    "1",
	Email: "user@example.com",
	Name:  "John Doe",
	Role:  portal.RoleMember,
	Phone: "+1234567890",
}

func newTestStore(f *fakeAPI, repo *memRepo, opts Options) *Store {
	return NewStore(f, tokenstore.New(repo), nil, opts)
}

func assertInvariant(t *testing.T, st Snapshot) {
	t.Helper()
	// The pending-2FA flag and an authenticated user are mutually exclusive.
	assert.False(t, st.Requires2FA && st.User != nil,
		"requires2FA and user set simultaneously")
	// isAuthenticated is always derived from user presence.
	assert.Equal(t, st.User != nil, st.IsAuthenticated())
}

// Scenario A: fresh load, no persisted token.
func TestCheckSession_NoToken(t *testing.T) {
	s := newTestStore(newFakeAPI(), newMemRepo(), Options{})

	require.True(t, s.Snapshot().IsLoading)

	s.CheckSession(context.Background())

	st := s.Snapshot()
	assert.False(t, st.IsLoading)
	assert.Nil(t, st.User)
	assert.False(t, st.IsAuthenticated())
	assertInvariant(t, st)
}

func TestCheckSession_RestoresUser(t *testing.T) {
	f := newFakeAPI()
	f.verifyUser = testUser
	repo := newMemRepo()
	repo.data[tokenstore.TokenKey] = "tok-1"

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())

	st := s.Snapshot()
	assert.False(t, st.IsLoading)
	require.NotNil(t, st.User)
	assert.Equal(t, "user@example.com", st.User.Email)
	assert.Equal(t, "tok-1", repo.token())
	assertInvariant(t, st)
}

func TestCheckSession_VerifyFailureClearsToken(t *testing.T) {
	f := newFakeAPI()
	f.verifyErr = api.ErrUnauthorized
	repo := newMemRepo()
	repo.data[tokenstore.TokenKey] = "stale"

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())

	st := s.Snapshot()
	assert.False(t, st.IsLoading)
	assert.Nil(t, st.User)
	assert.Empty(t, repo.token(), "stale token must be deleted")
}

func TestCheckSession_RestoreOffKeepsTokenWithoutUser(t *testing.T) {
	f := newFakeAPI()
	f.verifyUser = testUser // would succeed, but must never be called
	repo := newMemRepo()
	repo.data[tokenstore.TokenKey] = "tok-kept"

	s := newTestStore(f, repo, Options{RestoreMode: RestoreOff})
	s.CheckSession(context.Background())

	st := s.Snapshot()
	assert.False(t, st.IsLoading)
	assert.Nil(t, st.User, "restore off never repopulates the user")
	assert.Equal(t, "tok-kept", repo.token())
}

func TestCheckSession_RunsOnlyOnce(t *testing.T) {
	f := newFakeAPI()
	f.verifyErr = api.ErrUnauthorized
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())

	// A token appearing later must not be picked up by a second call.
	repo.data[tokenstore.TokenKey] = "late"
	s.CheckSession(context.Background())
	assert.Equal(t, "late", repo.token())
	assert.Nil(t, s.Snapshot().User)
}

// Scenario B: first factor succeeds, second factor pending.
func TestLogin_Requires2FA(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Requires2FA: true}
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())

	require.NoError(t, s.Login(context.Background(), "a@b.com", "x"))

	st := s.Snapshot()
	assert.True(t, st.Requires2FA)
	assert.Nil(t, st.User)
	assert.False(t, st.IsAuthenticated(), "2FA pending is not authenticated")
	assert.Empty(t, repo.token())
	assertInvariant(t, st)
}

func TestLogin_DirectAuthentication(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Token: "tok-d", User: testUser}
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	require.NoError(t, s.Login(context.Background(), "a@b.com", "x"))

	st := s.Snapshot()
	assert.False(t, st.Requires2FA)
	require.NotNil(t, st.User)
	assert.Equal(t, "tok-d", repo.token())
	assertInvariant(t, st)
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	f := newFakeAPI()
	f.loginErr = api.ErrInvalidCredentials
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())
	before := s.Snapshot()

	err := s.Login(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, api.ErrInvalidCredentials)

	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, repo.token())
}

func TestLogin_NetworkFailureDistinguishable(t *testing.T) {
	f := newFakeAPI()
	f.loginErr = api.ErrUnavailable

	s := newTestStore(f, newMemRepo(), Options{})
	err := s.Login(context.Background(), "a@b.com", "x")
	assert.ErrorIs(t, err, api.ErrUnavailable)
	assert.NotErrorIs(t, err, api.ErrInvalidCredentials)
}

// Scenario C: second factor finalizes the session.
// Logging in again over an established session must not leave the old user
// visible while the new login awaits its second factor.
func TestLogin_WhileAuthenticatedEntersPendingOnly(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Requires2FA: true}
	f.twoFAResult = &api.TwoFactorResult{Token: "tok-2fa", User: testUser}
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())
	require.NoError(t, s.Login(context.Background(), "a@b.com", "x"))
	require.NoError(t, s.Verify2FA(context.Background(), "123456"))
	require.True(t, s.Snapshot().IsAuthenticated())

	// Second login, e.g. to switch accounts, answered with a 2FA challenge.
	require.NoError(t, s.Login(context.Background(), "c@d.com", "y"))

	st := s.Snapshot()
	assert.True(t, st.Requires2FA)
	assert.Nil(t, st.User)
	assert.False(t, st.IsAuthenticated())
	assert.Empty(t, repo.token(), "old session token must be discarded")
	assertInvariant(t, st)
}

func TestVerify2FA_FinalizesSession(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Requires2FA: true}
	f.twoFAResult = &api.TwoFactorResult{Token: "tok-2fa", User: testUser}
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())
	require.NoError(t, s.Login(context.Background(), "a@b.com", "x"))
	require.NoError(t, s.Verify2FA(context.Background(), "123456"))

	st := s.Snapshot()
	require.NotNil(t, st.User)
	assert.False(t, st.Requires2FA)
	assert.True(t, st.IsAuthenticated())
	assert.Equal(t, "tok-2fa", repo.token())
	assertInvariant(t, st)
}

// Scenario E: a wrong code keeps the user on the 2FA step.
func TestVerify2FA_WrongCodeKeepsPending(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Requires2FA: true}
	f.twoFAErr = api.ErrInvalidCode
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	require.NoError(t, s.Login(context.Background(), "a@b.com", "x"))

	err := s.Verify2FA(context.Background(), "000000")
	assert.ErrorIs(t, err, api.ErrInvalidCode)

	st := s.Snapshot()
	assert.True(t, st.Requires2FA, "must stay on the 2FA step")
	assert.Nil(t, st.User)
	assert.Empty(t, repo.token())
	assertInvariant(t, st)
}

// A 2xx verify response with an empty body must be treated as a server
// fault, not finalized into a broken session.
func TestVerify2FA_IncompleteResponseRejected(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Requires2FA: true}
	f.twoFAResult = &api.TwoFactorResult{}
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	s.CheckSession(context.Background())
	require.NoError(t, s.Login(context.Background(), "a@b.com", "x"))

	err := s.Verify2FA(context.Background(), "123456")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnavailable)

	st := s.Snapshot()
	assert.True(t, st.Requires2FA, "user stays on the verification step")
	assert.Nil(t, st.User)
	assert.Empty(t, repo.token(), "no token may be persisted")
	assertInvariant(t, st)
}

func TestVerify2FA_TokenPersistFailurePropagates(t *testing.T) {
	f := newFakeAPI()
	f.twoFAResult = &api.TwoFactorResult{Token: "tok", User: testUser}
	repo := newMemRepo()
	repo.setErr = errors.New("disk full")

	s := newTestStore(f, repo, Options{})
	err := s.Verify2FA(context.Background(), "123456")
	require.Error(t, err)
	assert.Nil(t, s.Snapshot().User, "user must not be set without a persisted token")
}

// Logout resets everything, from any prior state.
func TestLogout_ClearsEverything(t *testing.T) {
	f := newFakeAPI()
	f.twoFAResult = &api.TwoFactorResult{Token: "tok", User: testUser}
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	require.NoError(t, s.Verify2FA(context.Background(), "123456"))
	require.True(t, s.Snapshot().IsAuthenticated())

	s.Logout(context.Background())

	st := s.Snapshot()
	assert.Nil(t, st.User)
	assert.False(t, st.Requires2FA)
	assert.False(t, st.IsAuthenticated())
	assert.Empty(t, repo.token())
	assertInvariant(t, st)

	select {
	case tok := <-f.logoutCalled:
		assert.Equal(t, "tok", tok)
	case <-time.After(time.Second):
		t.Fatal("remote logout notification never sent")
	}
}

func TestLogout_WhenNotLoggedIn(t *testing.T) {
	f := newFakeAPI()
	repo := newMemRepo()

	s := newTestStore(f, repo, Options{})
	s.Logout(context.Background()) // must not panic or fail

	st := s.Snapshot()
	assert.Nil(t, st.User)
	assert.False(t, st.Requires2FA)

	select {
	case <-f.logoutCalled:
		t.Fatal("no remote notification expected without a token")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLogout_While2FAPending(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Requires2FA: true}

	s := newTestStore(f, newMemRepo(), Options{})
	require.NoError(t, s.Login(context.Background(), "a@b.com", "x"))
	require.True(t, s.Snapshot().Requires2FA)

	s.Logout(context.Background())
	assert.False(t, s.Snapshot().Requires2FA)
}

// Duplicate submission while a call is outstanding is rejected.
func TestLogin_ConcurrentSubmissionRejected(t *testing.T) {
	f := newFakeAPI()
	f.loginResult = &api.LoginResult{Requires2FA: true}
	f.loginDelay = 100 * time.Millisecond

	s := newTestStore(f, newMemRepo(), Options{})

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			errs <- s.Login(context.Background(), "a@b.com", "x")
		}()
	}
	wg.Wait()
	close(errs)

	var busy, ok int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrBusy):
			busy++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one submission proceeds")
	assert.Equal(t, 1, busy, "the duplicate is rejected")

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 1, f.loginCalls, "backend sees a single login")
}

// Token persistence survives a new store instance (page-reload parity).
func TestTokenSurvivesRestart(t *testing.T) {
	f := newFakeAPI()
	f.twoFAResult = &api.TwoFactorResult{Token: "tok-persist", User: testUser}
	repo := newMemRepo()

	first := newTestStore(f, repo, Options{})
	require.NoError(t, first.Verify2FA(context.Background(), "123456"))

	f2 := newFakeAPI()
	f2.verifyUser = testUser
	second := newTestStore(f2, repo, Options{})
	second.CheckSession(context.Background())

	st := second.Snapshot()
	require.NotNil(t, st.User)
	assert.Equal(t, testUser.Email, st.User.Email)
}
