package otp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps challenges in a Redis hash per phone number, letting
// multiple instances share one challenge space. The key TTL doubles as
// garbage collection, so no sweep is needed; attempt counting uses HIncrBy
// and stays atomic across instances.
type RedisStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

const (
	fieldCodeHash  = "code_hash"
	fieldExpiresAt = "expires_at"
	fieldAttempts  = "attempts"
)

// NewRedisStore creates a Redis-backed challenge store. Non-positive ttl or
// maxAttempts fall back to the defaults.
func NewRedisStore(client *redis.Client, ttl time.Duration, maxAttempts int) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &RedisStore{
		client:      client,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

func challengeKey(phone string) string {
	return "otp:" + phone
}

// Issue stores a new challenge for phone, replacing any existing one.
func (s *RedisStore) Issue(ctx context.Context, phone, code string) error {
	hash, err := hashCode(code)
	if err != nil {
		return err
	}

	key := challengeKey(phone)
	expiresAt := s.now().Add(s.ttl)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		fieldCodeHash, string(hash),
		fieldExpiresAt, strconv.FormatInt(expiresAt.Unix(), 10),
		fieldAttempts, "0",
	)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

// Verify checks code against the stored challenge for phone.
func (s *RedisStore) Verify(ctx context.Context, phone, code string) error {
	key := challengeKey(phone)

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("load challenge: %w", err)
	}
	if len(fields) == 0 {
		return ErrNoChallenge
	}

	expiresUnix, err := strconv.ParseInt(fields[fieldExpiresAt], 10, 64)
	if err != nil {
		return fmt.Errorf("corrupt challenge for %s: %w", phone, err)
	}
	if s.now().After(time.Unix(expiresUnix, 0)) {
		s.client.Del(ctx, key)
		return ErrExpired
	}

	attempts, err := strconv.Atoi(fields[fieldAttempts])
	if err != nil {
		return fmt.Errorf("corrupt challenge for %s: %w", phone, err)
	}
	if attempts >= s.maxAttempts {
		s.client.Del(ctx, key)
		return ErrTooManyAttempts
	}

	if !codeMatches([]byte(fields[fieldCodeHash]), code) {
		updated, err := s.client.HIncrBy(ctx, key, fieldAttempts, 1).Result()
		if err != nil {
			return fmt.Errorf("count attempt: %w", err)
		}
		remaining := s.maxAttempts - int(updated)
		if remaining < 0 {
			remaining = 0
		}
		return &MismatchError{Remaining: remaining}
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("consume challenge: %w", err)
	}
	return nil
}

// Clear drops any stored challenge for phone.
func (s *RedisStore) Clear(ctx context.Context, phone string) error {
	return s.client.Del(ctx, challengeKey(phone)).Err()
}
