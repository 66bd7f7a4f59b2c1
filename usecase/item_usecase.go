package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketplace-backend/model"
	"marketplace-backend/pkg/idgen"
)

var hundred = decimal.NewFromInt(100)

type CreateItemInput struct {
	Name        string
	Description string
	Price       int
}

// ItemUsecase lists products for approved sellers at their negotiated rate.
type ItemUsecase struct {
	items    ItemStore
	profiles SellerProfileStore
	log      *logrus.Entry
	now      func() time.Time
}

func NewItemUsecase(items ItemStore, profiles SellerProfileStore, log *logrus.Entry) *ItemUsecase {
	return &ItemUsecase{
		items:    items,
		profiles: profiles,
		log:      log.WithField("component", "item_usecase"),
		now:      time.Now,
	}
}

func (u *ItemUsecase) CreateItem(ctx context.Context, caller Caller, in CreateItemInput) (*model.Item, error) {
	if caller.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	profile, err := u.profiles.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	if profile == nil || profile.State != model.StateAccepted || profile.CommissionRate == nil {
		return nil, ErrSellerNotApproved
	}

	rate := *profile.CommissionRate
	fee, payout := SplitCommission(in.Price, rate)
	item := &model.Item{
		ID:             idgen.New(),
		SellerID:       profile.ID,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		CommissionRate: rate,
		CommissionFee:  fee,
		SellerPayout:   payout,
		Status:         model.ItemStatusOnSale,
		CreatedAt:      u.now().UTC(),
	}
	if err := u.items.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	u.log.WithFields(logrus.Fields{"item_id": item.ID, "profile_id": profile.ID}).Info("Item listed")
	return item, nil
}

func (u *ItemUsecase) GetItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := u.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil || item.Status == model.ItemStatusDeleted {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// SplitCommission returns the marketplace fee, rounded half away from zero to
// a whole unit, and what is left for the seller.
func SplitCommission(price int, rate decimal.Decimal) (fee, payout int) {
	f := decimal.NewFromInt(int64(price)).Mul(rate).Div(hundred).Round(0)
	fee = int(f.IntPart())
	return fee, price - fee
}
