package notify

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"marketplace-backend/model"
)

const sendTimeout = 5 * time.Second

// Async queues notifications for a single background worker. Dispatch never
// blocks: when the queue is full the notification is dropped.
type Async struct {
	sender  Sender
	log     *logrus.Entry
	dropped prometheus.Counter

	mu     sync.RWMutex
	closed bool
	queue  chan model.Notification

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewAsync(sender Sender, queueSize int, log *logrus.Entry, dropped prometheus.Counter) *Async {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Async{
		sender:  sender,
		log:     log,
		dropped: dropped,
		queue:   make(chan model.Notification, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

// Dispatch enqueues n. The request context is not used for delivery since it
// ends with the request.
func (a *Async) Dispatch(_ context.Context, n model.Notification) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		a.drop(n, "dispatcher closed")
		return
	}
	select {
	case a.queue <- n:
	default:
		a.drop(n, "queue full")
	}
}

func (a *Async) drop(n model.Notification, reason string) {
	if a.dropped != nil {
		a.dropped.Inc()
	}
	a.log.WithFields(logrus.Fields{
		"user_id": n.UserID,
		"type":    n.Type,
		"reason":  reason,
	}).Warn("Notification dropped")
}

func (a *Async) run() {
	defer close(a.done)
	for n := range a.queue {
		if a.ctx.Err() != nil {
			a.drop(n, "shutdown deadline exceeded")
			continue
		}
		ctx, cancel := context.WithTimeout(a.ctx, sendTimeout)
		if err := a.sender.Send(ctx, n); err != nil {
			a.log.WithError(err).WithFields(logrus.Fields{
				"user_id": n.UserID,
				"type":    n.Type,
			}).Error("Failed to deliver notification")
		}
		cancel()
	}
}

// Close stops accepting notifications and waits for the queue to drain. When
// ctx expires first, the in-flight send is cancelled, the rest is dropped, and
// ctx.Err() is returned once the worker has exited.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		a.cancel()
		return nil
	case <-ctx.Done():
		a.cancel()
		<-a.done
		return ctx.Err()
	}
}
