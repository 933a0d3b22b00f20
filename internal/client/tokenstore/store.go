// Package tokenstore persists the client's bearer token between runs.
// The backing store is a small key-value table in the client's sqlite
// database; the token lives under a single well-known key.
package tokenstore

import "context"

// TokenKey is the single durable entry holding the opaque bearer token.
const TokenKey = "auth_token"

// TokenStore reads and writes the persisted session token. It is the only
// durable session state: the user itself is never persisted.
type TokenStore struct {
	repo Repository
}

func New(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Token returns the persisted token, or the empty string when none is stored.
func (s *TokenStore) Token(ctx context.Context) (string, error) {
	return s.repo.Get(ctx, TokenKey)
}

// Save stores the token, replacing any previous value (last writer wins).
func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, TokenKey, token)
}

// Delete removes the persisted token. Deleting an absent token is not an error.
func (s *TokenStore) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx, TokenKey)
}
