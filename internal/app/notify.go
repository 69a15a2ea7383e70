package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"park_palace/internal/adapters/observability"
	"park_palace/internal/domain"
)

const DefaultNotificationTTL = 5 * time.Second

// Notifier keeps independent per-session notifications. Each one expires on
// its own after ttl; there is no queue and no deduplication.
type Notifier struct {
	store domain.NotificationStore
	ttl   time.Duration
	newID func() string
	now   func() time.Time
}

func NewNotifier(store domain.NotificationStore, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{store: store, ttl: ttl, newID: uuid.NewString, now: time.Now}
}

func (n *Notifier) TTL() time.Duration { return n.ttl }

func (n *Notifier) Notify(ctx context.Context, session string, kind domain.NotificationKind, title string, lines ...string) (domain.Notification, error) {
	note := domain.Notification{
		ID:        n.newID(),
		Kind:      kind,
		Title:     title,
		Lines:     lines,
		CreatedAt: n.now().UTC(),
	}
	if err := n.store.Put(ctx, session, note, n.ttl); err != nil {
		return note, fmt.Errorf("store notification: %w", err)
	}
	observability.ObserveNotification(string(kind), "created")
	return note, nil
}

// Active lists the notifications of session that have not expired or been dismissed.
func (n *Notifier) Active(ctx context.Context, session string) ([]domain.Notification, error) {
	return n.store.List(ctx, session)
}

// Dismiss removes a notification immediately. It reports false when the
// notification already expired.
func (n *Notifier) Dismiss(ctx context.Context, session, id string) (bool, error) {
	ok, err := n.store.Del(ctx, session, id)
	if err != nil {
		return false, err
	}
	if ok {
		observability.ObserveNotification("any", "dismissed")
	}
	return ok, nil
}
