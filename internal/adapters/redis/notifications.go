package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"park_palace/internal/domain"
)

// NotificationStore keeps each notification under its own key with a TTL,
// so an undismissed notification disappears without any sweeper.
type NotificationStore struct{ c *redis.Client }

func New(addr, pass string, db int) *NotificationStore {
	return &NotificationStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func NewWithClient(c *redis.Client) *NotificationStore { return &NotificationStore{c: c} }

func (s *NotificationStore) Ping(ctx context.Context) error { return s.c.Ping(ctx).Err() }

func (s *NotificationStore) Close() error { return s.c.Close() }

func key(session, id string) string { return fmt.Sprintf("notify:%s:%s", session, id) }

func (s *NotificationStore) Put(ctx context.Context, session string, n domain.Notification, ttl time.Duration) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, key(session, n.ID), b, ttl).Err()
}

// List returns the session's live notifications, oldest first.
func (s *NotificationStore) List(ctx context.Context, session string) ([]domain.Notification, error) {
	var keys []string
	iter := s.c.Scan(ctx, 0, key(session, "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := s.c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Notification, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // expired between SCAN and MGET
		}
		var n domain.Notification
		if err := json.Unmarshal([]byte(str), &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Del reports whether the notification was still present.
func (s *NotificationStore) Del(ctx context.Context, session, id string) (bool, error) {
	n, err := s.c.Del(ctx, key(session, id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
