package usecase

import (
	"fmt"
	"strconv"

	"marketplace-backend/model"
	"marketplace-backend/negotiation"
)

const (
	NotifyProfileUnderReview        = "profile_under_review"
	NotifyCommissionOffered         = "commission_offered"
	NotifyCommissionCounterOffered  = "commission_counter_offered"
	NotifyCommissionCounterAccepted = "commission_counter_accepted"
	NotifyProfileRejected           = "profile_rejected"
	NotifyCommissionAccepted        = "commission_accepted"
	NotifyCommissionRejected        = "commission_rejected"
	NotifyCounterOfferSubmitted     = "commission_counter_submitted"
)

// notificationFor builds the message for the side that has to act next, or
// learns the outcome. prev is the profile before the transition.
func notificationFor(action negotiation.Action, prev, next model.SellerProfile) (model.Notification, bool) {
	data := map[string]string{"sellerId": next.ID}
	if next.Offer != nil {
		data["rate"] = next.Offer.Rate.String()
		data["negotiationRound"] = strconv.Itoa(next.Offer.Round)
	}
	toSeller := func(typ, title, msg string) (model.Notification, bool) {
		return model.Notification{UserID: next.UserID, Type: typ, Title: title, Message: msg, Data: data}, true
	}
	toAdmin := func(typ, title, msg string) (model.Notification, bool) {
		if prev.Offer == nil || prev.Offer.OfferedBy == "" {
			return model.Notification{}, false
		}
		return model.Notification{UserID: prev.Offer.OfferedBy, Type: typ, Title: title, Message: msg, Data: data}, true
	}

	switch action.(type) {
	case negotiation.StartReview:
		return toSeller(NotifyProfileUnderReview, "Profile under review",
			"Your seller profile is now being reviewed.")
	case negotiation.OfferCommission, negotiation.AdminCounterOffer:
		if prev.State == model.StateCounterPendingAdmin {
			return toSeller(NotifyCommissionCounterOffered, "New commission offer",
				fmt.Sprintf("Your counter-offer was answered with a commission rate of %s%%.", next.Offer.Rate))
		}
		return toSeller(NotifyCommissionOffered, "Commission offer received",
			fmt.Sprintf("You have been offered a commission rate of %s%%.", next.Offer.Rate))
	case negotiation.AcceptCounterOffer:
		return toSeller(NotifyCommissionCounterAccepted, "Counter-offer accepted",
			fmt.Sprintf("Your proposed rate of %s%% was accepted. Accept the offer to complete your approval.", next.Offer.Rate))
	case negotiation.RejectProfile:
		data["reason"] = next.RejectionReason
		return toSeller(NotifyProfileRejected, "Profile rejected",
			"Your seller profile was rejected: "+next.RejectionReason)
	case negotiation.AcceptOffer:
		return toAdmin(NotifyCommissionAccepted, "Commission accepted",
			fmt.Sprintf("%s accepted the %s%% commission rate.", next.BusinessName, next.Offer.Rate))
	case negotiation.RejectOffer:
		data["reason"] = next.Offer.RejectionReason
		return toAdmin(NotifyCommissionRejected, "Commission rejected",
			fmt.Sprintf("%s rejected the commission offer.", next.BusinessName))
	case negotiation.SubmitCounterOffer:
		data["counterOfferRate"] = next.Offer.Counter.Rate.String()
		return toAdmin(NotifyCounterOfferSubmitted, "Counter-offer submitted",
			fmt.Sprintf("%s proposed %s%% instead of %s%%.", next.BusinessName, next.Offer.Counter.Rate, next.Offer.Rate))
	}
	return model.Notification{}, false
}
