package negotiation

// Error is a rejected transition. Code is stable and returned to API clients.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrActorNotPermitted     = &Error{Code: "ACTOR_NOT_PERMITTED", Message: "this side of the negotiation cannot perform the action"}
	ErrCannotStartReview     = &Error{Code: "CANNOT_START_REVIEW", Message: "only pending profiles can be moved under review"}
	ErrCannotOfferCommission = &Error{Code: "CANNOT_OFFER_COMMISSION", Message: "a commission can only be offered on a profile under review or in reply to a counter-offer"}
	ErrMaxRoundsReached      = &Error{Code: "MAX_NEGOTIATION_ROUNDS_REACHED", Message: "maximum number of negotiation rounds reached"}
	ErrNoCommissionOffer     = &Error{Code: "NO_COMMISSION_OFFER", Message: "there is no commission offer to respond to"}
	ErrAlreadyResponded      = &Error{Code: "COMMISSION_ALREADY_RESPONDED", Message: "the commission offer has already been responded to"}
	ErrNoCounterOffer        = &Error{Code: "NO_COUNTER_OFFER", Message: "there is no pending counter-offer"}
	ErrCannotRejectProfile   = &Error{Code: "CANNOT_REJECT_PROFILE", Message: "only profiles under review can be rejected"}
	ErrInvalidRate           = &Error{Code: "INVALID_COMMISSION_RATE", Message: "commission rate must be between 1 and 50 with at most two decimal places"}
)
