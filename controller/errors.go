package controller

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"marketplace-backend/negotiation"
	"marketplace-backend/usecase"
)

// mapError translates a use case error into a status, code and client-safe
// message.
func mapError(err error) (int, string, string) {
	var nerr *negotiation.Error
	if errors.As(err, &nerr) {
		if nerr == negotiation.ErrActorNotPermitted {
			return http.StatusForbidden, nerr.Code, nerr.Message
		}
		return http.StatusBadRequest, nerr.Code, nerr.Message
	}
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return http.StatusNotFound, "PROFILE_NOT_FOUND", "seller profile not found"
	case errors.Is(err, usecase.ErrItemNotFound):
		return http.StatusNotFound, "ITEM_NOT_FOUND", "item not found"
	case errors.Is(err, usecase.ErrNotificationNotFound):
		return http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "notification not found"
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "you are not allowed to perform this action"
	case errors.Is(err, usecase.ErrSellerNotApproved):
		return http.StatusForbidden, "SELLER_NOT_APPROVED", "only approved sellers can list items"
	case errors.Is(err, usecase.ErrProfileExists):
		return http.StatusConflict, "PROFILE_EXISTS", "a seller profile already exists for this user"
	case errors.Is(err, usecase.ErrEmailTaken):
		return http.StatusConflict, "EMAIL_TAKEN", "this email is already registered"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

func respondError(w http.ResponseWriter, r *http.Request, log *logrus.Entry, err error) {
	status, code, msg := mapError(err)
	entry := log.WithError(err).WithFields(logrus.Fields{
		"request_id": requestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"code":       code,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}
	writeError(w, status, code, msg)
}
