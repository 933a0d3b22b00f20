package tokenstore

import "context"

// Repository is durable client-side key-value storage. Missing keys read
// back as the empty string, not an error; deleting an absent key is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
