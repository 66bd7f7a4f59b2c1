package controller

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"marketplace-backend/model"
	"marketplace-backend/usecase"
)

type AdminController struct {
	base
	usecase *usecase.AdminUsecase
}

func NewAdminController(b base, uc *usecase.AdminUsecase) *AdminController {
	return &AdminController{base: b, usecase: uc}
}

type listProfilesQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=PENDING UNDER_REVIEW COMMISSION_OFFERED APPROVED REJECTED"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
	Offset int    `json:"offset" validate:"gte=0"`
}

type offerCommissionRequest struct {
	Rate decimal.Decimal `json:"rate" validate:"required,gte=1,lte=50"`
}

type rejectProfileRequest struct {
	Reason string `json:"reason" validate:"required,min=10,max=500"`
}

func (c *AdminController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	q := listProfilesQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}
	if !c.validate(w, &q) {
		return
	}
	profiles, err := c.usecase.ListProfiles(r.Context(), callerFromContext(r.Context()), usecase.ProfileQuery{
		Status: model.VerificationStatus(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", newProfileViews(profiles))
}

func (c *AdminController) GetProfile(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := c.pathID(w, r, "sellerId", usecase.ErrProfileNotFound)
	if !ok {
		return
	}
	p, err := c.usecase.GetProfile(r.Context(), callerFromContext(r.Context()), sellerID)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", newProfileView(p))
}

func (c *AdminController) StartReview(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := c.pathID(w, r, "sellerId", usecase.ErrProfileNotFound)
	if !ok {
		return
	}
	p, err := c.usecase.StartReview(r.Context(), callerFromContext(r.Context()), sellerID)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Profile moved under review", map[string]any{
		"sellerId":           p.ID,
		"verificationStatus": p.State.VerificationStatus(),
	})
}

func (c *AdminController) OfferCommission(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := c.pathID(w, r, "sellerId", usecase.ErrProfileNotFound)
	if !ok {
		return
	}
	var req offerCommissionRequest
	if !c.decode(w, r, &req) {
		return
	}
	p, err := c.usecase.OfferCommission(r.Context(), callerFromContext(r.Context()), sellerID, req.Rate)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Commission offer sent", map[string]any{
		"sellerId":         p.ID,
		"commissionRate":   p.Offer.Rate,
		"offeredAt":        p.Offer.OfferedAt,
		"negotiationRound": p.Offer.Round,
	})
}

// AcceptCounterOffer re-offers at the seller's rate. The response reports the
// new pending offer; the seller is not approved yet.
func (c *AdminController) AcceptCounterOffer(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := c.pathID(w, r, "sellerId", usecase.ErrProfileNotFound)
	if !ok {
		return
	}
	p, err := c.usecase.AcceptCounterOffer(r.Context(), callerFromContext(r.Context()), sellerID)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Counter-offer accepted", map[string]any{
		"sellerId":         p.ID,
		"acceptedRate":     p.Offer.Rate,
		"acceptedAt":       p.Offer.OfferedAt,
		"negotiationRound": p.Offer.Round,
	})
}

func (c *AdminController) RejectProfile(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := c.pathID(w, r, "sellerId", usecase.ErrProfileNotFound)
	if !ok {
		return
	}
	var req rejectProfileRequest
	if !c.decode(w, r, &req) {
		return
	}
	p, err := c.usecase.RejectProfile(r.Context(), callerFromContext(r.Context()), sellerID, req.Reason)
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Seller profile rejected", map[string]any{
		"sellerId":           p.ID,
		"verificationStatus": p.State.VerificationStatus(),
		"rejectionReason":    p.RejectionReason,
	})
}

// queryInt returns fallback for a missing parameter and -1 for an unparsable
// one, which validation then rejects.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return v
}
