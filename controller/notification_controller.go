package controller

import (
	"net/http"
	"strconv"

	"marketplace-backend/model"
	"marketplace-backend/usecase"
)

type NotificationController struct {
	base
	usecase *usecase.NotificationUsecase
}

func NewNotificationController(b base, uc *usecase.NotificationUsecase) *NotificationController {
	return &NotificationController{base: b, usecase: uc}
}

type listNotificationsQuery struct {
	Page    int    `json:"page" validate:"gte=1,lte=100000"`
	PerPage int    `json:"perPage" validate:"gte=1,lte=100"`
	Unread  string `json:"unread" validate:"omitempty,boolean"`
}

type notificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
	Total         int64                `json:"total"`
	Page          int                  `json:"page"`
	PerPage       int                  `json:"perPage"`
}

func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	q := listNotificationsQuery{
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "perPage", 10),
		Unread:  r.URL.Query().Get("unread"),
	}
	if !c.validate(w, &q) {
		return
	}
	// The validator accepted Unread. Empty parses to false.
	unread, _ := strconv.ParseBool(q.Unread)

	page, err := c.usecase.List(r.Context(), callerFromContext(r.Context()), model.NotificationFilter{
		UnreadOnly: unread,
		Page:       q.Page,
		PerPage:    q.PerPage,
	})
	if err != nil {
		respondError(w, r, c.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", notificationsResponse{
		Notifications: page.Notifications,
		Total:         page.Total,
		Page:          q.Page,
		PerPage:       q.PerPage,
	})
}

func (c *NotificationController) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r, "id", usecase.ErrNotificationNotFound)
	if !ok {
		return
	}
	if err := c.usecase.MarkAsRead(r.Context(), callerFromContext(r.Context()), id); err != nil {
		respondError(w, r, c.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
