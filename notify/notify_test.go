package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"marketplace-backend/model"
	"marketplace-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeStore struct {
	mu    sync.Mutex
	saved []model.Notification
	err   error
}

func (s *fakeStore) Create(_ context.Context, n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, *n)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []model.Notification
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, n model.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func TestServiceSend(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("stores then publishes", func(t *testing.T) {
		store, pub := &fakeStore{}, &fakePublisher{}
		svc := NewService(store, pub)
		svc.now = func() time.Time { return now }

		err := svc.Send(context.Background(), model.Notification{UserID: "01HZSELLER", Type: "commission_offered"})
		require.NoError(t, err)

		require.Len(t, store.saved, 1)
		assert.NotEmpty(t, store.saved[0].ID)
		assert.Equal(t, now, store.saved[0].CreatedAt)
		require.Len(t, pub.published, 1)
		assert.Equal(t, store.saved[0].ID, pub.published[0].ID)
	})

	t.Run("store failure skips publish", func(t *testing.T) {
		store, pub := &fakeStore{err: errors.New("db down")}, &fakePublisher{}
		err := NewService(store, pub).Send(context.Background(), model.Notification{UserID: "01HZSELLER"})
		assert.Error(t, err)
		assert.Empty(t, pub.published)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		store, pub := &fakeStore{}, &fakePublisher{err: errors.New("redis down")}
		err := NewService(store, pub).Send(context.Background(), model.Notification{UserID: "01HZSELLER"})
		assert.Error(t, err)
		assert.Len(t, store.saved, 1)
	})
}

type recordingSender struct {
	mu      sync.Mutex
	sent    []model.Notification
	err     error
	release chan struct{}
}

func (s *recordingSender) Send(ctx context.Context, n model.Notification) error {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newDropped() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: "dropped_total", Help: "test"})
}

func TestAsyncDeliversInOrderAndDrains(t *testing.T) {
	sender := &recordingSender{}
	a := NewAsync(sender, 16, logger.Discard(), newDropped())

	for _, typ := range []string{"a", "b", "c"} {
		a.Dispatch(context.Background(), model.Notification{UserID: "u", Type: typ})
	}
	require.NoError(t, a.Close(context.Background()))

	require.Equal(t, 3, sender.count())
	assert.Equal(t, "a", sender.sent[0].Type)
	assert.Equal(t, "c", sender.sent[2].Type)
}

func TestAsyncDropsWhenFull(t *testing.T) {
	sender := &recordingSender{release: make(chan struct{})}
	dropped := newDropped()
	a := NewAsync(sender, 1, logger.Discard(), dropped)

	// The worker takes the first notification and blocks on it, the second
	// fills the queue and the third has nowhere to go.
	a.Dispatch(context.Background(), model.Notification{UserID: "u", Type: "first"})
	require.Eventually(t, func() bool { return len(a.queue) == 0 }, time.Second, time.Millisecond)
	a.Dispatch(context.Background(), model.Notification{UserID: "u", Type: "second"})
	a.Dispatch(context.Background(), model.Notification{UserID: "u", Type: "third"})

	assert.Equal(t, 1.0, testutil.ToFloat64(dropped))

	close(sender.release)
	require.NoError(t, a.Close(context.Background()))
	assert.Equal(t, 2, sender.count())
}

func TestAsyncSendErrorsAreSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("boom")}
	a := NewAsync(sender, 4, logger.Discard(), nil)

	a.Dispatch(context.Background(), model.Notification{UserID: "u"})
	a.Dispatch(context.Background(), model.Notification{UserID: "u"})
	require.NoError(t, a.Close(context.Background()))
	assert.Equal(t, 2, sender.count())
}

func TestAsyncCloseDeadline(t *testing.T) {
	sender := &recordingSender{release: make(chan struct{})}
	dropped := newDropped()
	a := NewAsync(sender, 4, logger.Discard(), dropped)

	a.Dispatch(context.Background(), model.Notification{UserID: "u", Type: "stuck"})
	a.Dispatch(context.Background(), model.Notification{UserID: "u", Type: "queued"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Close(ctx), context.DeadlineExceeded)
	assert.Equal(t, 0, sender.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(dropped))

	// Dispatch after Close is dropped instead of panicking.
	a.Dispatch(context.Background(), model.Notification{UserID: "u", Type: "late"})
	assert.Equal(t, 2.0, testutil.ToFloat64(dropped))
}

func TestRedisChannel(t *testing.T) {
	assert.Equal(t, "notifications:01HZSELLER", Channel("01HZSELLER"))
}

func TestConnectAcceptsURLAndAddress(t *testing.T) {
	c, err := Connect("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)
	require.NoError(t, c.Close())

	c, err = Connect("127.0.0.1:6379")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", c.Options().Addr)
	require.NoError(t, c.Close())

	_, err = Connect("redis://cache:notaport")
	assert.Error(t, err)
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisherKeysByUser(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "seller.notifications"}
	n := model.Notification{ID: "01HZNOTE", UserID: "01HZSELLER", Type: "commission_offered", Data: map[string]string{"rate": "10"}}

	require.NoError(t, p.Publish(context.Background(), n))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "seller.notifications", w.msgs[0].Topic)
	assert.Equal(t, []byte("01HZSELLER"), w.msgs[0].Key)
	var decoded model.Notification
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, n.Data, decoded.Data)
}

func TestNewKafkaPublisherValidates(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "topic")
	assert.Error(t, err)
	_, err = NewKafkaPublisher([]string{"127.0.0.1:9092"}, "")
	assert.Error(t, err)

	p, err := NewKafkaPublisher([]string{"127.0.0.1:9092"}, "topic")
	require.NoError(t, err)
	require.NoError(t, p.Close())
}
