package usecase

import (
	"context"
	"errors"
	"fmt"

	"marketplace-backend/dao"
	"marketplace-backend/model"
)

type NotificationPage struct {
	Notifications []model.Notification
	Total         int64
}

// NotificationUsecase is the caller's inbox.
type NotificationUsecase struct {
	repo NotificationStore
}

func NewNotificationUsecase(repo NotificationStore) *NotificationUsecase {
	return &NotificationUsecase{repo: repo}
}

func (u *NotificationUsecase) List(ctx context.Context, caller Caller, filter model.NotificationFilter) (*NotificationPage, error) {
	notes, total, err := u.repo.ListByUser(ctx, caller.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notes == nil {
		notes = []model.Notification{}
	}
	return &NotificationPage{Notifications: notes, Total: total}, nil
}

func (u *NotificationUsecase) MarkAsRead(ctx context.Context, caller Caller, id string) error {
	if err := u.repo.MarkAsRead(ctx, id, caller.UserID); err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
