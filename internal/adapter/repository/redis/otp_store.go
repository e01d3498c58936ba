package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore implements usecase.OTPStore using Redis. Codes expire on
// their own once the TTL passes, so stale challenges never need a
// cleanup job.
type OTPStore struct {
	client *redis.Client
	prefix string
}

// NewOTPStore creates a new OTPStore.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{
		client: client,
		prefix: "otp:",
	}
}

// Put stores a code for the phone, replacing any outstanding one.
func (s *OTPStore) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+phone, code, ttl).Err()
}

// Get returns the stored code, or "" when none is outstanding.
func (s *OTPStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, s.prefix+phone).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

// Delete removes the stored code.
func (s *OTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, s.prefix+phone).Err()
}
