package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketplace-backend/auth"
	"marketplace-backend/config"
	"marketplace-backend/controller"
	"marketplace-backend/dao"
	"marketplace-backend/db"
	"marketplace-backend/metrics"
	"marketplace-backend/notify"
	"marketplace-backend/pkg/logger"
	"marketplace-backend/usecase"
)

func main() {
	// Rates go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := logger.NewLogger("marketplace-backend", cfg.LogLevel)
	if cfg.DevSecret() {
		log.Warn("JWT_SECRET is not set, using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. DB Connection
	conn, err := db.Open(ctx, cfg.MySQL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to DB")
	}
	defer conn.Close()
	log.Info("Connected to Database")

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, conn); err != nil {
			log.WithError(err).Fatal("Migration failed")
		}
		log.Info("Schema is up to date")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)
	go recordDBStats(ctx, conn.Stats, m)

	// 2. Notifications
	publisher, err := newPublisher(ctx, cfg.Notify)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up notification transport")
	}
	defer publisher.Close()

	notificationRepo := dao.NewNotificationRepository(conn)
	dispatcher := notify.NewAsync(
		notify.NewService(notificationRepo, publisher),
		cfg.Notify.QueueSize,
		log.WithField("component", "notify"),
		m.NotifyDropped,
	)

	// 3. Dependency Injection
	profileRepo := dao.NewSellerProfileRepository(conn)
	router := controller.NewRouter(controller.Deps{
		Users:         usecase.NewUserUsecase(dao.NewUserRepository(conn), auth.NewBcryptHasher(cfg.BcryptCost)),
		Sellers:       usecase.NewSellerUsecase(profileRepo, dispatcher, m, log),
		Admins:        usecase.NewAdminUsecase(profileRepo, dispatcher, m, log),
		Items:         usecase.NewItemUsecase(dao.NewItemRepository(conn), profileRepo, log),
		Notifications: usecase.NewNotificationUsecase(notificationRepo),
		Tokens:        auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Metrics:       m,
		Gatherer:      reg,
		Log:           log,
		CORSOrigin:    cfg.CORSOrigin,
	})

	// 4. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown did not complete")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.WithError(err).Warn("Pending notifications were dropped")
	}
}

func newPublisher(ctx context.Context, cfg config.Notify) (notify.Publisher, error) {
	switch cfg.Driver {
	case "redis":
		client, err := notify.Connect(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, err
		}
		return notify.NewRedisPublisher(client), nil
	case "kafka":
		return notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		return notify.NoopPublisher{}, nil
	}
}

func recordDBStats(ctx context.Context, stats func() sql.DBStats, m *metrics.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RecordDBStats(stats())
		}
	}
}
