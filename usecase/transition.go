package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"marketplace-backend/dao"
	"marketplace-backend/model"
	"marketplace-backend/negotiation"
	"marketplace-backend/notify"
)

// transitioner runs one negotiation step: pure transition, one write, then
// the metric and the counterparty notification.
type transitioner struct {
	profiles   SellerProfileStore
	dispatcher notify.Dispatcher
	recorder   TransitionRecorder
	log        *logrus.Entry
	now        func() time.Time
}

func (t *transitioner) apply(ctx context.Context, p *model.SellerProfile, actor model.Actor, action negotiation.Action) (*model.SellerProfile, error) {
	next, err := negotiation.Apply(*p, actor, action, t.now().UTC())
	if err != nil {
		t.recorder.RecordTransition(action.Name(), resultCode(err))
		return nil, err
	}
	if err := t.profiles.Update(ctx, &next); err != nil {
		t.recorder.RecordTransition(action.Name(), "error")
		if errors.Is(err, dao.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: %w", action.Name(), err)
	}
	t.recorder.RecordTransition(action.Name(), "ok")
	t.log.WithFields(logrus.Fields{
		"profile_id": next.ID,
		"operation":  action.Name(),
		"from":       p.State,
		"to":         next.State,
	}).Info("Negotiation transition applied")

	if n, ok := notificationFor(action, *p, next); ok {
		t.dispatcher.Dispatch(ctx, n)
	}
	return &next, nil
}

func resultCode(err error) string {
	var nerr *negotiation.Error
	if errors.As(err, &nerr) {
		return nerr.Code
	}
	return "error"
}
