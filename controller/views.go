package controller

import (
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/model"
)

type counterOfferView struct {
	Rate        decimal.Decimal `json:"rate"`
	Reason      string          `json:"reason"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

type commissionOfferView struct {
	Rate             decimal.Decimal   `json:"rate"`
	Status           model.OfferStatus `json:"status"`
	OfferedBy        string            `json:"offeredBy"`
	OfferedAt        time.Time         `json:"offeredAt"`
	NegotiationRound int               `json:"negotiationRound"`
	LastOfferedBy    string            `json:"lastOfferedBy"`
	CounterOffer     *counterOfferView `json:"counterOffer,omitempty"`
	RejectionReason  string            `json:"rejectionReason,omitempty"`
	RespondedAt      *time.Time        `json:"respondedAt,omitempty"`
}

type profileView struct {
	ID                 string                   `json:"id"`
	UserID             string                   `json:"userId"`
	BusinessName       string                   `json:"businessName"`
	VerificationStatus model.VerificationStatus `json:"verificationStatus"`
	CommissionRate     *decimal.Decimal         `json:"commissionRate"`
	CommissionOffer    *commissionOfferView     `json:"commissionOffer,omitempty"`
	ReviewedAt         *time.Time               `json:"reviewedAt,omitempty"`
	ReviewedBy         string                   `json:"reviewedBy,omitempty"`
	RejectionReason    string                   `json:"rejectionReason,omitempty"`
	ApprovedAt         *time.Time               `json:"approvedAt,omitempty"`
	CreatedAt          time.Time                `json:"createdAt"`
	UpdatedAt          time.Time                `json:"updatedAt"`
}

func newProfileView(p *model.SellerProfile) profileView {
	v := profileView{
		ID:                 p.ID,
		UserID:             p.UserID,
		BusinessName:       p.BusinessName,
		VerificationStatus: p.State.VerificationStatus(),
		CommissionRate:     p.CommissionRate,
		ReviewedAt:         p.ReviewedAt,
		ReviewedBy:         p.ReviewedBy,
		RejectionReason:    p.RejectionReason,
		ApprovedAt:         p.ApprovedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if o := p.Offer; o != nil {
		v.CommissionOffer = &commissionOfferView{
			Rate:             o.Rate,
			Status:           p.State.OfferStatus(),
			OfferedBy:        o.OfferedBy,
			OfferedAt:        o.OfferedAt,
			NegotiationRound: o.Round,
			LastOfferedBy:    p.State.LastOfferedBy().String(),
			RejectionReason:  o.RejectionReason,
			RespondedAt:      o.RespondedAt,
		}
		if c := o.Counter; c != nil {
			v.CommissionOffer.CounterOffer = &counterOfferView{Rate: c.Rate, Reason: c.Reason, SubmittedAt: c.SubmittedAt}
		}
	}
	return v
}

func newProfileViews(profiles []model.SellerProfile) []profileView {
	out := make([]profileView, len(profiles))
	for i := range profiles {
		out[i] = newProfileView(&profiles[i])
	}
	return out
}
