package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/ecom/returns/internal/cache"
	"gitlab.ozon.dev/ecom/returns/internal/config"
	"gitlab.ozon.dev/ecom/returns/internal/db"
	"gitlab.ozon.dev/ecom/returns/internal/gateway"
	"gitlab.ozon.dev/ecom/returns/internal/kafka"
	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/logger"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/repository/postgresql"
	"gitlab.ozon.dev/ecom/returns/internal/server"
	"gitlab.ozon.dev/ecom/returns/internal/service"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogDebug)
	defer func() { _ = zlog.Sync() }()

	database, err := db.NewDb(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Database init error: %v", err)
	}

	returnRepo := postgresql.NewReturnRepo(database)
	timelineRepo := postgresql.NewTimelineRepo(database)
	refundRepo := postgresql.NewRefundRepo(database)
	replacementRepo := postgresql.NewReplacementRepo(database)
	staffRepo := postgresql.NewStaffRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	store := storage.NewReturnStore(database, returnRepo, timelineRepo, refundRepo, replacementRepo, outboxRepo, cfg.KafkaTopic)

	statsCache := cache.NewStatsCache(store, cfg.StatsCacheTTL)
	if err := statsCache.Refresh(ctx); err != nil {
		log.Printf("Stats cache warmup failed, first read will retry: %v", err)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	payments := gateway.NewPaymentClient(cfg.PaymentBaseURL, httpClient)
	orders := gateway.NewOrderClient(cfg.OrdersBaseURL, httpClient)
	shipping := gateway.NewShippingClient(cfg.ShippingBaseURL, httpClient)

	validator := lifecycle.NewValidator(gateway.NewStaticRBAC())
	svc := service.NewReturnService(store, statsCache, validator, payments, orders, shipping, zlog)

	seedAdmin(ctx, staffRepo, cfg)

	var producer kafka.Producer
	if cfg.KafkaConsole {
		producer = kafka.NewConsoleProducer()
	} else {
		producer = kafka.NewKafkaProducer(cfg.KafkaBrokers)
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	})

	srv := server.New(svc, staffRepo)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})

	err = g.Wait()
	publisher.Shutdown()
	if err != nil {
		log.Fatalf("Engine stopped with error: %v", err)
	}
	log.Println("Engine gracefully stopped")
}

// seedAdmin makes sure the configured admin account exists so the staff
// endpoints are reachable on a fresh database.
func seedAdmin(ctx context.Context, staff storage.StaffRepository, cfg *config.Config) {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}

	_, err := staff.GetByUsername(ctx, cfg.AdminUsername)
	switch {
	case err == nil:
		return
	case errors.Is(err, repository.ErrObjectNotFound):
		if err := staff.CreateStaff(ctx, cfg.AdminUsername, cfg.AdminPassword, string(lifecycle.RoleAdmin)); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Admin user %q created", cfg.AdminUsername)
	default:
		log.Fatalf("Failed to check admin user: %v", err)
	}
}
