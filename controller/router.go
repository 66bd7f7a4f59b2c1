package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"marketplace-backend/auth"
	"marketplace-backend/metrics"
	"marketplace-backend/model"
	"marketplace-backend/usecase"
)

// base carries what every controller needs besides its use case.
type base struct {
	validator *validator.Validate
	log       *logrus.Entry
}

type Deps struct {
	Users         *usecase.UserUsecase
	Sellers       *usecase.SellerUsecase
	Admins        *usecase.AdminUsecase
	Items         *usecase.ItemUsecase
	Notifications *usecase.NotificationUsecase
	Tokens        *auth.TokenManager
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	Log           *logrus.Entry
	CORSOrigin    string
}

func NewRouter(d Deps) http.Handler {
	b := base{validator: newValidator(), log: d.Log.WithField("component", "http")}
	users := NewUserController(b, d.Users, d.Tokens)
	sellers := NewSellerController(b, d.Sellers)
	admins := NewAdminController(b, d.Admins)
	items := NewItemController(b, d.Items)
	notifications := NewNotificationController(b, d.Notifications)

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(b.log))
	r.Use(observeMiddleware(b.log, d.Metrics))
	r.Use(corsMiddleware(d.CORSOrigin))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, "ok", nil)
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	r.Post("/register", users.Register)
	r.Post("/login", users.Login)
	r.Get("/items/{id}", items.GetItem)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(d.Tokens))

		r.Get("/notifications", notifications.List)
		r.Post("/notifications/{id}/read", notifications.MarkAsRead)

		r.Group(func(r chi.Router) {
			r.Use(requireRole(model.RoleSeller))
			r.Post("/seller/profile", sellers.CreateProfile)
			r.Get("/seller/profile", sellers.GetProfile)
			r.Post("/seller/commission/accept", sellers.AcceptCommission)
			r.Post("/seller/commission/reject", sellers.RejectCommission)
			r.Post("/seller/commission/counter-offer", sellers.SubmitCounterOffer)
			r.Post("/items", items.CreateItem)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireRole(model.RoleAdmin))
			r.Get("/profiles", admins.ListProfiles)
			r.Get("/profile/{sellerId}", admins.GetProfile)
			r.Post("/profile/review/{sellerId}", admins.StartReview)
			r.Post("/profile/reject/{sellerId}", admins.RejectProfile)
			r.Post("/commission/offer/{sellerId}", admins.OfferCommission)
			r.Post("/commission/counter-offer/accept/{sellerId}", admins.AcceptCounterOffer)
		})
	})

	return r
}
