package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketplace-backend/dao"
	"marketplace-backend/model"
	"marketplace-backend/negotiation"
	"marketplace-backend/notify"
)

// ProfileQuery filters the admin profile list. An empty Status lists every
// profile.
type ProfileQuery struct {
	Status model.VerificationStatus
	Limit  int
	Offset int
}

// AdminUsecase is the admin's side of onboarding. Profiles are addressed by
// profile id.
type AdminUsecase struct {
	transitioner
}

func NewAdminUsecase(profiles SellerProfileStore, dispatcher notify.Dispatcher, recorder TransitionRecorder, log *logrus.Entry) *AdminUsecase {
	return &AdminUsecase{transitioner{
		profiles:   profiles,
		dispatcher: dispatcher,
		recorder:   recorder,
		log:        log.WithField("component", "admin_usecase"),
		now:        time.Now,
	}}
}

func (u *AdminUsecase) ListProfiles(ctx context.Context, caller Caller, q ProfileQuery) ([]model.SellerProfile, error) {
	if caller.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	filter := dao.ProfileFilter{Limit: q.Limit, Offset: q.Offset}
	if q.Status != "" {
		filter.States = model.StatesForVerification(q.Status)
		if len(filter.States) == 0 {
			return []model.SellerProfile{}, nil
		}
	}
	profiles, err := u.profiles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []model.SellerProfile{}
	}
	return profiles, nil
}

func (u *AdminUsecase) GetProfile(ctx context.Context, caller Caller, profileID string) (*model.SellerProfile, error) {
	if caller.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	p, err := u.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", profileID, err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (u *AdminUsecase) StartReview(ctx context.Context, caller Caller, profileID string) (*model.SellerProfile, error) {
	return u.act(ctx, caller, profileID, negotiation.StartReview{AdminID: caller.UserID})
}

// OfferCommission makes the first offer, or answers a pending counter-offer
// with a new rate.
func (u *AdminUsecase) OfferCommission(ctx context.Context, caller Caller, profileID string, rate decimal.Decimal) (*model.SellerProfile, error) {
	return u.act(ctx, caller, profileID, negotiation.OfferCommission{Rate: rate, AdminID: caller.UserID})
}

// AcceptCounterOffer re-offers at the seller's proposed rate. The seller
// still has to accept before being approved.
func (u *AdminUsecase) AcceptCounterOffer(ctx context.Context, caller Caller, profileID string) (*model.SellerProfile, error) {
	return u.act(ctx, caller, profileID, negotiation.AcceptCounterOffer{AdminID: caller.UserID})
}

func (u *AdminUsecase) RejectProfile(ctx context.Context, caller Caller, profileID, reason string) (*model.SellerProfile, error) {
	return u.act(ctx, caller, profileID, negotiation.RejectProfile{Reason: reason, AdminID: caller.UserID})
}

func (u *AdminUsecase) act(ctx context.Context, caller Caller, profileID string, action negotiation.Action) (*model.SellerProfile, error) {
	p, err := u.GetProfile(ctx, caller, profileID)
	if err != nil {
		return nil, err
	}
	return u.apply(ctx, p, model.ActorAdmin, action)
}
