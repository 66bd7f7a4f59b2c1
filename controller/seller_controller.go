package controller

import (
	"net/http"

	"github.com/shopspring/decimal"

	"marketplace-backend/usecase"
)

type SellerController struct {
	base
	usecase *usecase.SellerUsecase
}

func NewSellerController(b base, uc *usecase.SellerUsecase) *SellerController {
	return &SellerController{base: b, usecase: uc}
}

type createProfileRequest struct {
	BusinessName string `json:"businessName" validate:"required,min=2,max=120"`
}

type rejectCommissionRequest struct {
	Reason string `json:"reason" validate:"required,min=10,max=500"`
}

type counterOfferRequest struct {
	Rate   decimal.Decimal `json:"rate" validate:"required,gte=1,lte=50"`
	Reason string          `json:"reason" validate:"required,min=10,max=500"`
}

func (c *SellerController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !c.decode(w, r, &req) {
		return
	}
	p, err := c.usecase.CreateProfile(r.Context(), callerFromContext(r.Context()), req.BusinessName)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Seller profile created", newProfileView(p))
}

func (c *SellerController) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := c.usecase.GetOwnProfile(r.Context(), callerFromContext(r.Context()))
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", newProfileView(p))
}

func (c *SellerController) AcceptCommission(w http.ResponseWriter, r *http.Request) {
	p, err := c.usecase.AcceptCommission(r.Context(), callerFromContext(r.Context()))
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Commission rate accepted", map[string]any{
		"verificationStatus": p.State.VerificationStatus(),
		"commissionRate":     p.CommissionRate,
		"approvedAt":         p.ApprovedAt,
	})
}

func (c *SellerController) RejectCommission(w http.ResponseWriter, r *http.Request) {
	var req rejectCommissionRequest
	if !c.decode(w, r, &req) {
		return
	}
	p, err := c.usecase.RejectCommission(r.Context(), callerFromContext(r.Context()), req.Reason)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Commission offer rejected", map[string]any{
		"offerStatus": p.State.OfferStatus(),
		"reason":      p.Offer.RejectionReason,
	})
}

func (c *SellerController) SubmitCounterOffer(w http.ResponseWriter, r *http.Request) {
	var req counterOfferRequest
	if !c.decode(w, r, &req) {
		return
	}
	p, err := c.usecase.SubmitCounterOffer(r.Context(), callerFromContext(r.Context()), req.Rate, req.Reason)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Counter-offer submitted", map[string]any{
		"counterOfferRate": p.Offer.Counter.Rate,
		"reason":           p.Offer.Counter.Reason,
		"submittedAt":      p.Offer.Counter.SubmittedAt,
		"negotiationRound": p.Offer.Round,
	})
}
