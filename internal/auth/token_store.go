package auth

import (
	"context"
	"time"

	"shopkart/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:session_token:"

// TokenStoreInterface defines session token revocation storage.
type TokenStoreInterface interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked session token IDs in Redis until they would have
// expired anyway.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// RevokeToken marks a token ID as logged out.
func (s *TokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsTokenRevoked checks whether a token ID was logged out. Redis errors read
// as not-revoked (fail safe).
func (s *TokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedTokenKeyPrefix + tokenID
	return s.cache.Exists(ctx, key)
}
