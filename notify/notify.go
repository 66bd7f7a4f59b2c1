// Package notify stores notifications for the in-app inbox and fans them out
// to a pub/sub transport. Delivery is best effort.
package notify

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/model"
	"marketplace-backend/pkg/idgen"
)

// Dispatcher hands a notification off without waiting for delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, n model.Notification)
}

// Sender delivers one notification synchronously.
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// Publisher pushes a stored notification to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, n model.Notification) error
	Close() error
}

// Store persists notifications.
type Store interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Service stores a notification and then publishes it.
type Service struct {
	store     Store
	publisher Publisher
	now       func() time.Time
}

func NewService(store Store, publisher Publisher) *Service {
	return &Service{store: store, publisher: publisher, now: time.Now}
}

func (s *Service) Send(ctx context.Context, n model.Notification) error {
	if n.ID == "" {
		n.ID = idgen.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}
	if err := s.store.Create(ctx, &n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	return nil
}

// NoopPublisher is used when no transport is configured. The inbox still works.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.Notification) error { return nil }
func (NoopPublisher) Close() error                                     { return nil }
