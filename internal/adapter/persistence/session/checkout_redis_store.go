package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"handcrafted_gifts/internal/domain/checkout"
	"handcrafted_gifts/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "checkout"

// releaseLock deletes the lock only while it still holds our token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CheckoutRedisStore keeps checkout drafts as JSON strings.
//
// Keys:
//
//	checkout:<id>:draft  the serialized draft, expiring after the session TTL
//	checkout:<id>:lock   a random token set with SET NX while a request mutates the draft
type CheckoutRedisStore struct {
	rdb redis.UniversalClient
}

var _ interfaces.ICheckoutSessionStore = (*CheckoutRedisStore)(nil)

func NewCheckoutRedisStore(rdb redis.UniversalClient) *CheckoutRedisStore {
	return &CheckoutRedisStore{rdb: rdb}
}

func draftKey(id string) string {
	return fmt.Sprintf("%s:%s:draft", keyPrefix, id)
}

func lockKey(id string) string {
	return fmt.Sprintf("%s:%s:lock", keyPrefix, id)
}

func (s *CheckoutRedisStore) Save(ctx context.Context, id string, d checkout.Draft, ttl time.Duration) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, draftKey(id), b, ttl).Err()
}

func (s *CheckoutRedisStore) Get(ctx context.Context, id string) (checkout.Draft, bool, error) {
	b, err := s.rdb.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return checkout.Draft{}, false, nil
	}
	if err != nil {
		return checkout.Draft{}, false, err
	}

	var d checkout.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return checkout.Draft{}, false, fmt.Errorf("decode checkout draft %s: %w", id, err)
	}
	return d, true, nil
}

// Lock takes the per-session mutation lock. The returned func releases it and
// is a no-op once the lock expired and was taken by someone else.
func (s *CheckoutRedisStore) Lock(ctx context.Context, id string, ttl time.Duration) (func(context.Context), error) {
	token := uuid.NewString()
	ok, err := s.rdb.SetNX(ctx, lockKey(id), token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, interfaces.ErrCheckoutSessionLocked
	}

	return func(ctx context.Context) {
		if err := releaseLock.Run(ctx, s.rdb, []string{lockKey(id)}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("session_id", id).Msg("[checkout][store] lock release failed")
		}
	}, nil
}
