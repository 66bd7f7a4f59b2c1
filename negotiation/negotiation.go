// Package negotiation holds the seller commission negotiation as pure
// transitions over profile snapshots. Persistence and notification are the
// caller's job.
//
// Admin and seller take strict turns. The admin opens with an offer, the
// seller accepts, rejects or counters, and the admin answers a counter either
// with a new rate or by adopting the seller's rate. Each admin answer starts a
// new round, and there are at most model.MaxNegotiationRounds rounds.
package negotiation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/model"
)

// Action is one negotiation step. The set of actions is closed: only the types
// in this package implement it.
type Action interface {
	// Actor is the only side allowed to perform the action.
	Actor() model.Actor
	// Name identifies the action in logs and metrics.
	Name() string
	apply(p *model.SellerProfile, now time.Time) error
}

// Apply runs action on a copy of p and returns the resulting profile. On
// error p is returned unchanged.
func Apply(p model.SellerProfile, actor model.Actor, action Action, now time.Time) (model.SellerProfile, error) {
	if action.Actor() != actor {
		return p, ErrActorNotPermitted
	}
	if err := checkConsistent(p); err != nil {
		return p, err
	}
	next := p.Clone()
	if err := action.apply(&next, now); err != nil {
		return p, err
	}
	next.UpdatedAt = now
	return next, nil
}

func checkConsistent(p model.SellerProfile) error {
	if !p.State.Valid() {
		return fmt.Errorf("negotiation: profile %s has unknown state %q", p.ID, p.State)
	}
	if p.State.HasOffer() != (p.Offer != nil) {
		return fmt.Errorf("negotiation: profile %s in state %s has offer=%t", p.ID, p.State, p.Offer != nil)
	}
	if p.State == model.StateCounterPendingAdmin && p.Offer.Counter == nil {
		return fmt.Errorf("negotiation: profile %s awaits a counter-offer answer without a counter-offer", p.ID)
	}
	return nil
}

func checkRate(rate decimal.Decimal) error {
	if rate.LessThan(model.MinCommissionRate) || rate.GreaterThan(model.MaxCommissionRate) {
		return ErrInvalidRate
	}
	// Rates are stored as DECIMAL(5,2).
	if !rate.Equal(rate.Round(2)) {
		return ErrInvalidRate
	}
	return nil
}

// StartReview picks a freshly created profile up for review.
type StartReview struct {
	AdminID string
}

func (StartReview) Actor() model.Actor { return model.ActorAdmin }
func (StartReview) Name() string       { return "start_review" }

func (a StartReview) apply(p *model.SellerProfile, now time.Time) error {
	if p.State != model.StatePending {
		return ErrCannotStartReview
	}
	p.State = model.StateNoOffer
	return nil
}

// OfferCommission makes the first offer on a profile under review. When a
// counter-offer is waiting it acts as AdminCounterOffer instead.
type OfferCommission struct {
	Rate    decimal.Decimal
	AdminID string
}

func (OfferCommission) Actor() model.Actor { return model.ActorAdmin }
func (OfferCommission) Name() string       { return "offer_commission" }

func (a OfferCommission) apply(p *model.SellerProfile, now time.Time) error {
	switch p.State {
	case model.StateNoOffer:
		if err := checkRate(a.Rate); err != nil {
			return err
		}
		p.State = model.StateOfferPendingSeller
		p.Offer = &model.CommissionOffer{
			Rate:      a.Rate,
			OfferedBy: a.AdminID,
			OfferedAt: now,
			Round:     1,
		}
		p.ReviewedAt = &now
		p.ReviewedBy = a.AdminID
		return nil
	case model.StateCounterPendingAdmin:
		return AdminCounterOffer(a).apply(p, now)
	default:
		return ErrCannotOfferCommission
	}
}

// AdminCounterOffer answers the seller's counter-offer with a new rate.
type AdminCounterOffer struct {
	Rate    decimal.Decimal
	AdminID string
}

func (AdminCounterOffer) Actor() model.Actor { return model.ActorAdmin }
func (AdminCounterOffer) Name() string       { return "admin_counter_offer" }

func (a AdminCounterOffer) apply(p *model.SellerProfile, now time.Time) error {
	if p.State != model.StateCounterPendingAdmin {
		return ErrNoCounterOffer
	}
	if p.Offer.Round >= model.MaxNegotiationRounds {
		return ErrMaxRoundsReached
	}
	if err := checkRate(a.Rate); err != nil {
		return err
	}
	// The seller's counter stays attached until the next one replaces it.
	reopen(p, a.Rate, a.AdminID, now)
	return nil
}

// AcceptCounterOffer adopts the seller's proposed rate. It does not approve
// the seller: it puts a new pending offer at that rate, which the seller still
// has to accept.
type AcceptCounterOffer struct {
	AdminID string
}

func (AcceptCounterOffer) Actor() model.Actor { return model.ActorAdmin }
func (AcceptCounterOffer) Name() string       { return "accept_counter_offer" }

func (a AcceptCounterOffer) apply(p *model.SellerProfile, now time.Time) error {
	if p.State != model.StateCounterPendingAdmin {
		return ErrNoCounterOffer
	}
	if p.Offer.Round >= model.MaxNegotiationRounds {
		return ErrMaxRoundsReached
	}
	reopen(p, p.Offer.Counter.Rate, a.AdminID, now)
	p.Offer.Counter = nil
	return nil
}

func reopen(p *model.SellerProfile, rate decimal.Decimal, adminID string, now time.Time) {
	p.State = model.StateOfferPendingSeller
	p.Offer.Rate = rate
	p.Offer.Round++
	p.Offer.OfferedBy = adminID
	p.Offer.OfferedAt = now
}

// RejectProfile turns a profile down before any offer is made.
type RejectProfile struct {
	Reason  string
	AdminID string
}

func (RejectProfile) Actor() model.Actor { return model.ActorAdmin }
func (RejectProfile) Name() string       { return "reject_profile" }

func (a RejectProfile) apply(p *model.SellerProfile, now time.Time) error {
	if p.State != model.StateNoOffer {
		return ErrCannotRejectProfile
	}
	p.State = model.StateProfileRejected
	p.ReviewedAt = &now
	p.ReviewedBy = a.AdminID
	p.RejectionReason = a.Reason
	return nil
}

// AcceptOffer closes the negotiation at the offered rate and approves the seller.
type AcceptOffer struct{}

func (AcceptOffer) Actor() model.Actor { return model.ActorSeller }
func (AcceptOffer) Name() string       { return "accept_offer" }

func (AcceptOffer) apply(p *model.SellerProfile, now time.Time) error {
	if err := awaitingSeller(p); err != nil {
		return err
	}
	rate := p.Offer.Rate
	p.State = model.StateAccepted
	p.CommissionRate = &rate
	p.ApprovedAt = &now
	p.Offer.RespondedAt = &now
	return nil
}

// RejectOffer declines the offer. The negotiation ends there.
type RejectOffer struct {
	Reason string
}

func (RejectOffer) Actor() model.Actor { return model.ActorSeller }
func (RejectOffer) Name() string       { return "reject_offer" }

func (a RejectOffer) apply(p *model.SellerProfile, now time.Time) error {
	if err := awaitingSeller(p); err != nil {
		return err
	}
	p.State = model.StateRejectedBySeller
	p.Offer.RejectionReason = a.Reason
	p.Offer.RespondedAt = &now
	return nil
}

// SubmitCounterOffer proposes another rate and hands the turn to the admin.
type SubmitCounterOffer struct {
	Rate   decimal.Decimal
	Reason string
}

func (SubmitCounterOffer) Actor() model.Actor { return model.ActorSeller }
func (SubmitCounterOffer) Name() string       { return "submit_counter_offer" }

func (a SubmitCounterOffer) apply(p *model.SellerProfile, now time.Time) error {
	if err := awaitingSeller(p); err != nil {
		return err
	}
	if p.Offer.Round >= model.MaxNegotiationRounds {
		return ErrMaxRoundsReached
	}
	if err := checkRate(a.Rate); err != nil {
		return err
	}
	p.State = model.StateCounterPendingAdmin
	p.Offer.Counter = &model.CounterOffer{
		Rate:        a.Rate,
		Reason:      a.Reason,
		SubmittedAt: now,
	}
	return nil
}

func awaitingSeller(p *model.SellerProfile) error {
	switch p.State {
	case model.StateOfferPendingSeller:
		return nil
	case model.StateCounterPendingAdmin, model.StateAccepted, model.StateRejectedBySeller:
		return ErrAlreadyResponded
	default:
		return ErrNoCommissionOffer
	}
}
