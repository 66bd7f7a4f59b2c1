package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketplace-backend/dao"
	"marketplace-backend/model"
	"marketplace-backend/negotiation"
	"marketplace-backend/notify"
	"marketplace-backend/pkg/idgen"
)

// SellerUsecase is the seller's side of onboarding. The profile is always the
// caller's own.
type SellerUsecase struct {
	transitioner
}

func NewSellerUsecase(profiles SellerProfileStore, dispatcher notify.Dispatcher, recorder TransitionRecorder, log *logrus.Entry) *SellerUsecase {
	return &SellerUsecase{transitioner{
		profiles:   profiles,
		dispatcher: dispatcher,
		recorder:   recorder,
		log:        log.WithField("component", "seller_usecase"),
		now:        time.Now,
	}}
}

func (u *SellerUsecase) CreateProfile(ctx context.Context, caller Caller, businessName string) (*model.SellerProfile, error) {
	if caller.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	existing, err := u.profiles.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	now := u.now().UTC()
	profile := &model.SellerProfile{
		ID:           idgen.New(),
		UserID:       caller.UserID,
		BusinessName: businessName,
		State:        model.StatePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.profiles.Insert(ctx, profile); err != nil {
		if errors.Is(err, dao.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	u.log.WithFields(logrus.Fields{"profile_id": profile.ID, "user_id": caller.UserID}).Info("Seller profile created")
	return profile, nil
}

func (u *SellerUsecase) GetOwnProfile(ctx context.Context, caller Caller) (*model.SellerProfile, error) {
	if caller.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	p, err := u.profiles.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("get own profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (u *SellerUsecase) AcceptCommission(ctx context.Context, caller Caller) (*model.SellerProfile, error) {
	return u.respond(ctx, caller, negotiation.AcceptOffer{})
}

func (u *SellerUsecase) RejectCommission(ctx context.Context, caller Caller, reason string) (*model.SellerProfile, error) {
	return u.respond(ctx, caller, negotiation.RejectOffer{Reason: reason})
}

func (u *SellerUsecase) SubmitCounterOffer(ctx context.Context, caller Caller, rate decimal.Decimal, reason string) (*model.SellerProfile, error) {
	return u.respond(ctx, caller, negotiation.SubmitCounterOffer{Rate: rate, Reason: reason})
}

func (u *SellerUsecase) respond(ctx context.Context, caller Caller, action negotiation.Action) (*model.SellerProfile, error) {
	p, err := u.GetOwnProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	return u.apply(ctx, p, model.ActorSeller, action)
}
