package usecase

import (
	"context"

	"marketplace-backend/dao"
	"marketplace-backend/model"
)

// Caller is the authenticated user behind a request.
type Caller struct {
	UserID string
	Role   model.Role
}

type SellerProfileStore interface {
	Insert(ctx context.Context, p *model.SellerProfile) error
	Update(ctx context.Context, p *model.SellerProfile) error
	GetByID(ctx context.Context, id string) (*model.SellerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*model.SellerProfile, error)
	List(ctx context.Context, filter dao.ProfileFilter) ([]model.SellerProfile, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type ItemStore interface {
	Insert(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
}

type NotificationStore interface {
	ListByUser(ctx context.Context, userID string, filter model.NotificationFilter) ([]model.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}

// TransitionRecorder counts negotiation attempts.
type TransitionRecorder interface {
	RecordTransition(operation, result string)
}
