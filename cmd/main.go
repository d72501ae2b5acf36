package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/config"
	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
	"github.com/zeeshansheikh0001/calorie-tracker-sub001/routes"
	"github.com/zeeshansheikh0001/calorie-tracker-sub001/services"
	"github.com/zeeshansheikh0001/calorie-tracker-sub001/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid REMINDER_TIMEZONE", zap.Error(err))
	}

	transport, err := services.NewWebPushService(services.VAPIDConfig{
		PublicKey:  cfg.VAPIDPublicKey,
		PrivateKey: cfg.VAPIDPrivateKey,
		Subject:    cfg.VAPIDSubject,
	})
	if err != nil {
		log.Fatal("web push init failed", zap.Error(err))
	}

	reminders := services.NewReminderService(db)
	subs := services.NewSubscriptionService(db)
	hub := services.NewRealtimeHub()

	dispatcher := services.NewDispatcher(reminders, subs, transport, loc, log)
	dispatcher.Hub = hub
	dispatcher.OnEndpointGone = func(ctx context.Context, sub models.PushSubscription) {
		if err := subs.DropDead(ctx, sub); err != nil {
			log.Warn("drop dead subscription failed", zap.Error(err))
		}
	}

	if cfg.SchedulerEnabled {
		go services.NewScheduler(dispatcher, log).Run(context.Background())
	}

	r := routes.SetupRouter(routes.Deps{
		Cfg:        cfg,
		DB:         db,
		Dispatcher: dispatcher,
		Subs:       subs,
		Reminders:  reminders,
		Hub:        hub,
		Log:        log,
	})

	log.Info("starting server",
		zap.String("addr", cfg.HTTPAddr),
		zap.Bool("scheduler", cfg.SchedulerEnabled),
	)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
