package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	spaceKeyPrefix = "space:view:"
	spaceListKey   = "space:view:all"
)

// SpaceReadStore is a cache-aside decorator. Space rules change rarely
// but are read on every booking attempt, so a short TTL keeps the
// directory off the database's hot path. Redis failures degrade to the
// inner store.
type SpaceReadStore struct {
	inner  queries.SpaceReadStore
	client *redis.Client
	ttl    time.Duration
}

func NewSpaceReadStore(inner queries.SpaceReadStore, client *redis.Client, ttl time.Duration) *SpaceReadStore {
	return &SpaceReadStore{inner: inner, client: client, ttl: ttl}
}

func (s *SpaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SpaceView, error) {
	key := spaceKeyPrefix + id.String()

	if s.client != nil {
		raw, err := s.client.Get(ctx, key).Bytes()
		if err == nil {
			var view queries.SpaceView
			if err := json.Unmarshal(raw, &view); err == nil {
				return &view, nil
			}
		} else if err != redis.Nil {
			slog.Warn("space cache read failed", "key", key, "error", err.Error())
		}
	}

	view, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, view)
	return view, nil
}

func (s *SpaceReadStore) FindAll(ctx context.Context) ([]*queries.SpaceView, error) {
	if s.client != nil {
		raw, err := s.client.Get(ctx, spaceListKey).Bytes()
		if err == nil {
			var views []*queries.SpaceView
			if err := json.Unmarshal(raw, &views); err == nil {
				return views, nil
			}
		} else if err != redis.Nil {
			slog.Warn("space cache read failed", "key", spaceListKey, "error", err.Error())
		}
	}

	views, err := s.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, spaceListKey, views)
	return views, nil
}

func (s *SpaceReadStore) store(ctx context.Context, key string, v any) {
	if s.client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		slog.Warn("space cache write failed", "key", key, "error", err.Error())
	}
}
