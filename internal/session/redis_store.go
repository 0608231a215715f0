package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vivario/reservation-service/internal/wizard"
)

const (
	keyPatternDraft = "wizard:%s:draft"
	keyPatternCart  = "wizard:%s:cart"
)

// RedisStore keeps drafts and carts as JSON blobs with a shared TTL. Every
// write refreshes the TTL, so a session stays alive as long as the visitor
// keeps editing.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(keyPatternDraft, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var draft wizard.ReservationDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisStore) Save(ctx context.Context, draft *wizard.ReservationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	key := fmt.Sprintf(keyPatternDraft, draft.SessionID)
	if err := s.client.Set(ctx, key, string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, fmt.Sprintf(keyPatternDraft, sessionID)).Err()
}

// RedisCartStore shares the client and TTL discipline of RedisStore.
type RedisCartStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCartStore(client redis.UniversalClient, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) Get(ctx context.Context, sessionID string) ([]uint, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(keyPatternCart, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // empty cart, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var ids []uint
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return ids, nil
}

func (s *RedisCartStore) Add(ctx context.Context, sessionID string, experienceID uint) error {
	ids, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == experienceID {
			return nil // already in the cart
		}
	}
	return s.save(ctx, sessionID, append(ids, experienceID))
}

func (s *RedisCartStore) Remove(ctx context.Context, sessionID string, experienceID uint) error {
	ids, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != experienceID {
			kept = append(kept, id)
		}
	}
	return s.save(ctx, sessionID, kept)
}

func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, fmt.Sprintf(keyPatternCart, sessionID)).Err()
}

func (s *RedisCartStore) save(ctx context.Context, sessionID string, ids []uint) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	key := fmt.Sprintf(keyPatternCart, sessionID)
	if err := s.client.Set(ctx, key, string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
