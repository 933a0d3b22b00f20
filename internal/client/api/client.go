package api

import (
	"context"

	"github.com/mkalinins/commportal/internal/portal"
)

// LoginResult is the backend's answer to a first-factor login.
// Either Requires2FA is true and Token/User are empty, or the account has
// no second factor and Token/User finalize the session immediately.
type LoginResult struct {
	Requires2FA bool         `json:"requires2FA"`
	Token       string       `json:"token,omitempty"`
	User        *portal.User `json:"user,omitempty"`
}

// TwoFactorResult finalizes the session after a successful code check.
type TwoFactorResult struct {
	Token string       `json:"token"`
	User  *portal.User `json:"user"`
}

// Client is the transport used by the portal client to reach the backend.
// Swapping implementations (real HTTP vs an in-memory fake) keeps the
// session logic testable independent of network behavior.
//
// Calls that act on an established session take the bearer token explicitly;
// the client itself holds no credential state.
type Client interface {
	// Auth surface.
	Verify(ctx context.Context, token string) (*portal.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Verify2FA(ctx context.Context, code string) (*TwoFactorResult, error)
	Logout(ctx context.Context, token string) error

	// Portal content, all bearer-authenticated.
	News(ctx context.Context, token string) ([]portal.NewsItem, error)
	ChatRooms(ctx context.Context, token string) ([]portal.ChatRoom, error)
	Messages(ctx context.Context, token string, roomID string) ([]portal.Message, error)
	PostMessage(ctx context.Context, token string, roomID string, content string) (*portal.Message, error)
	Meetings(ctx context.Context, token string) ([]portal.Meeting, error)
	Discussions(ctx context.Context, token string) ([]portal.Discussion, error)
	Documents(ctx context.Context, token string) ([]portal.Document, error)

	Close() error
}
