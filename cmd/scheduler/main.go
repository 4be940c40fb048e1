package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/cresxjohn/qwik-sub001/internal/config"
	"github.com/cresxjohn/qwik-sub001/internal/domain"
	"github.com/cresxjohn/qwik-sub001/internal/log"
	"github.com/cresxjohn/qwik-sub001/internal/repository"
	"github.com/cresxjohn/qwik-sub001/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.New(cfg.Logging.Level, cfg.Logging.Format, "scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	paymentRepo := repository.NewPaymentRepository(db)
	paymentService := service.NewPaymentService(paymentRepo, redisClient, cfg)
	dispatcher := &reminderDispatcher{
		service: paymentService,
		redis:   redisClient,
		ttl:     cfg.GetReminderTTL(),
		logger:  logger,
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))

	_, err = c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		if err := dispatcher.run(context.Background()); err != nil {
			logger.Error("reminder dispatch failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("failed to schedule reminder job", "error", err)
		os.Exit(1)
	}

	c.Start()
	logger.Info("scheduler started", "spec", cfg.Scheduler.ReminderSpec, "timezone", cfg.Scheduler.Timezone)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

// reminderDispatcher fires the reminders due today, once. Delivery is
// deduplicated across runs and replicas through a redis NX key per
// (payment, trigger date).
type reminderDispatcher struct {
	service *service.PaymentService
	redis   *redis.Client
	ttl     time.Duration
	logger  *log.Logger
}

func (d *reminderDispatcher) run(ctx context.Context) error {
	today := domain.Today()

	dispatches, err := d.service.DueReminders(ctx, today)
	if err != nil {
		return err
	}

	sent := 0
	for _, dispatch := range dispatches {
		key := fmt.Sprintf("reminder:sent:%s:%s", dispatch.PaymentID, dispatch.TriggerDate)
		ok, err := d.redis.SetNX(ctx, key, 1, d.ttl).Result()
		if err != nil {
			d.logger.Error("reminder dedup check failed", "payment_id", dispatch.PaymentID, "error", err)
			continue
		}
		if !ok {
			continue // already sent
		}

		d.logger.Info("payment reminder",
			"payment_id", dispatch.PaymentID,
			"payment", dispatch.PaymentName,
			"due_date", dispatch.DueDate.String(),
		)
		sent++
	}

	d.logger.Info("reminder dispatch complete", "date", today.String(), "due", len(dispatches), "sent", sent)
	return nil
}
