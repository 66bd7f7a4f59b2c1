package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxNegotiationRounds caps how many offers an admin can put on the table.
const MaxNegotiationRounds = 5

// Commission rate bounds, in percent.
var (
	MinCommissionRate = decimal.NewFromInt(1)
	MaxCommissionRate = decimal.NewFromInt(50)
)

// Actor is the side of the negotiation performing an action.
type Actor int

const (
	ActorNone Actor = iota
	ActorAdmin
	ActorSeller
)

func (a Actor) String() string {
	switch a {
	case ActorAdmin:
		return "admin"
	case ActorSeller:
		return "seller"
	default:
		return ""
	}
}

// NegotiationState is the single composite state of a seller profile. Both the
// verification status and the commission offer status are derived from it.
type NegotiationState string

const (
	StatePending             NegotiationState = "PENDING"
	StateNoOffer             NegotiationState = "NO_OFFER"
	StateOfferPendingSeller  NegotiationState = "OFFER_PENDING_SELLER"
	StateCounterPendingAdmin NegotiationState = "COUNTER_PENDING_ADMIN"
	StateAccepted            NegotiationState = "ACCEPTED"
	StateRejectedBySeller    NegotiationState = "REJECTED_BY_SELLER"
	StateProfileRejected     NegotiationState = "PROFILE_REJECTED"
)

// Valid reports whether s is one of the known states.
func (s NegotiationState) Valid() bool {
	switch s {
	case StatePending, StateNoOffer, StateOfferPendingSeller, StateCounterPendingAdmin,
		StateAccepted, StateRejectedBySeller, StateProfileRejected:
		return true
	}
	return false
}

// HasOffer reports whether a commission offer exists in this state.
func (s NegotiationState) HasOffer() bool {
	switch s {
	case StateOfferPendingSeller, StateCounterPendingAdmin, StateAccepted, StateRejectedBySeller:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s NegotiationState) Terminal() bool {
	return s == StateAccepted || s == StateRejectedBySeller || s == StateProfileRejected
}

type VerificationStatus string

const (
	VerificationPending           VerificationStatus = "PENDING"
	VerificationUnderReview       VerificationStatus = "UNDER_REVIEW"
	VerificationCommissionOffered VerificationStatus = "COMMISSION_OFFERED"
	VerificationApproved          VerificationStatus = "APPROVED"
	VerificationRejected          VerificationStatus = "REJECTED"
)

type OfferStatus string

const (
	OfferNone           OfferStatus = ""
	OfferPending        OfferStatus = "PENDING"
	OfferAccepted       OfferStatus = "ACCEPTED"
	OfferRejected       OfferStatus = "REJECTED"
	OfferCounterOffered OfferStatus = "COUNTER_OFFERED"
)

// VerificationStatus maps the composite state onto the verification status.
func (s NegotiationState) VerificationStatus() VerificationStatus {
	switch s {
	case StateNoOffer:
		return VerificationUnderReview
	case StateOfferPendingSeller, StateCounterPendingAdmin, StateRejectedBySeller:
		return VerificationCommissionOffered
	case StateAccepted:
		return VerificationApproved
	case StateProfileRejected:
		return VerificationRejected
	default:
		return VerificationPending
	}
}

// OfferStatus maps the composite state onto the commission offer status.
func (s NegotiationState) OfferStatus() OfferStatus {
	switch s {
	case StateOfferPendingSeller:
		return OfferPending
	case StateCounterPendingAdmin:
		return OfferCounterOffered
	case StateAccepted:
		return OfferAccepted
	case StateRejectedBySeller:
		return OfferRejected
	default:
		return OfferNone
	}
}

// LastOfferedBy returns whose proposal is currently on the table.
func (s NegotiationState) LastOfferedBy() Actor {
	switch s {
	case StateOfferPendingSeller, StateAccepted, StateRejectedBySeller:
		return ActorAdmin
	case StateCounterPendingAdmin:
		return ActorSeller
	default:
		return ActorNone
	}
}

// StatesForVerification returns every state that maps onto v.
func StatesForVerification(v VerificationStatus) []NegotiationState {
	var out []NegotiationState
	for _, s := range []NegotiationState{StatePending, StateNoOffer, StateOfferPendingSeller,
		StateCounterPendingAdmin, StateAccepted, StateRejectedBySeller, StateProfileRejected} {
		if s.VerificationStatus() == v {
			out = append(out, s)
		}
	}
	return out
}

type CounterOffer struct {
	Rate        decimal.Decimal
	Reason      string
	SubmittedAt time.Time
}

type CommissionOffer struct {
	Rate            decimal.Decimal
	OfferedBy       string
	OfferedAt       time.Time
	Round           int
	Counter         *CounterOffer
	RejectionReason string
	RespondedAt     *time.Time
}

type SellerProfile struct {
	ID              string
	UserID          string
	BusinessName    string
	State           NegotiationState
	Offer           *CommissionOffer
	CommissionRate  *decimal.Decimal
	ReviewedAt      *time.Time
	ReviewedBy      string
	RejectionReason string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a deep copy so transitions never share pointers with their input.
func (p SellerProfile) Clone() SellerProfile {
	out := p
	if p.Offer != nil {
		offer := *p.Offer
		if p.Offer.Counter != nil {
			counter := *p.Offer.Counter
			offer.Counter = &counter
		}
		offer.RespondedAt = cloneTime(p.Offer.RespondedAt)
		out.Offer = &offer
	}
	if p.CommissionRate != nil {
		rate := *p.CommissionRate
		out.CommissionRate = &rate
	}
	out.ReviewedAt = cloneTime(p.ReviewedAt)
	out.ApprovedAt = cloneTime(p.ApprovedAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
