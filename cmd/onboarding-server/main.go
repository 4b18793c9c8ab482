// cmd/onboarding-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"onboarding-intake/internal/api"
	"onboarding-intake/internal/common/aws"
	"onboarding-intake/internal/common/config"
	"onboarding-intake/internal/common/database"
	"onboarding-intake/internal/common/dedup"
	"onboarding-intake/internal/common/logger"
	"onboarding-intake/internal/common/observability"
	"onboarding-intake/internal/common/sendgrid"
	"onboarding-intake/internal/common/talenox"

	notifyhr "onboarding-intake/internal/workers/communication/notify-hr"
	aei "onboarding-intake/internal/workers/onboarding/allocate-employee-id"
	po "onboarding-intake/internal/workers/onboarding/process-onboarding"
	ts "onboarding-intake/internal/workers/onboarding/transform-submission"
	vs "onboarding-intake/internal/workers/onboarding/validate-submission"
)

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, logger.FormatForEnvironment(cfg.App.Environment, cfg.Logging.Format))
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting onboarding intake",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Talenox ---
	hr := talenox.NewClient(cfg.Talenox.BaseURL, cfg.Talenox.APIKey, config.GetDuration(cfg.Talenox.Timeout))
	if !cfg.Talenox.Configured() {
		zapLog.Error("Talenox API not configured, submissions will be refused until TALENOX_API_URL and TALENOX_API_KEY are set")
	}

	allocator := aei.NewAllocator(&aei.Config{
		PageSize:   cfg.Talenox.PageSize,
		Sort:       aei.DefaultConfig().Sort,
		Ceiling:    cfg.Talenox.EmployeeIDCeiling,
		FallbackID: cfg.Talenox.FallbackEmployeeID,
	}, hr, nil, log)

	transformer := ts.NewTransformer(ts.DefaultConfig(), allocator, time.Now)

	// --- Notifications ---
	observer := buildObservers(rootCtx, cfg, log)

	// --- Dedup cache ---
	var deduper dedup.Deduper = dedup.NopDeduper{}
	if cfg.Dedup.Enabled {
		redis, err := database.NewRedis(cfg.Dedup.Redis)
		if err != nil {
			zapLog.Fatal("redis client failed", zap.Error(err))
		}
		if err := redis.Ping(rootCtx); err != nil {
			// Claims fail open, so the service still starts.
			zapLog.Warn("redis not reachable, dedup will fail open", zap.Error(err))
		}
		defer redis.Close()
		deduper = dedup.NewRedisDeduper(redis, config.GetDuration(cfg.Dedup.TTL))
		zapLog.Info("Dedup cache enabled", zap.Duration("ttl", config.GetDuration(cfg.Dedup.TTL)))
	}

	workflow := po.NewService(po.ServiceDependencies{
		Validator:     vs.New(),
		Transformer:   transformer,
		HRClient:      hr,
		Observer:      observer,
		Deduper:       deduper,
		Observability: obs,
		Logger:        log,
	}, &po.Config{
		HRConfigured:    cfg.Talenox.Configured(),
		Timeout:         config.GetDuration(cfg.Workflow.Timeout),
		ContactEmail:    cfg.Notifications.ContactEmail,
		RawExcerptLimit: 500,
	})

	server := api.NewService(api.ServiceDeps{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Production:     cfg.App.IsProduction(),
		ReadTimeout:    config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:   config.GetDuration(cfg.Server.WriteTimeout),
		Submitter:      workflow,
		Logger:         log,
	})

	group, gctx := errgroup.WithContext(rootCtx)
	group.Go(func() error {
		return server.Start(gctx)
	})

	if err := group.Wait(); err != nil {
		zapLog.Error("HTTP API stopped with error", zap.Error(err))
	}

	// --- Graceful Shutdown ---
	zapLog.Info("Shutdown signal received, waiting for background workflows...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := workflow.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Background workflows did not finish in time", zap.Error(err))
	}

	zapLog.Info("Onboarding intake stopped gracefully")
}

// buildObservers picks the mail provider and adds the SNS alert topic when configured.
func buildObservers(ctx context.Context, cfg *config.Config, log logger.Logger) po.Observer {
	// A nil mailer turns email notifications into log lines.
	var mailer notifyhr.Mailer
	switch cfg.Notifications.Provider {
	case "ses":
		ses, err := aws.NewSESMailer(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			log.Error("SES client failed, email notifications disabled", map[string]interface{}{"error": err.Error()})
		} else {
			mailer = ses
		}
	default:
		if cfg.Notifications.APIKey != "" {
			mailer = sendgrid.NewMailer(cfg.Notifications.APIKey)
		}
	}

	mailCfg := notifyhr.DefaultConfig()
	mailCfg.NotifyEmail = cfg.Notifications.NotifyEmail
	mailCfg.FromEmail = cfg.Notifications.FromEmail

	observers := notifyhr.Fanout{
		notifyhr.NewService(notifyhr.ServiceDependencies{Mailer: mailer, Logger: log}, mailCfg),
	}

	if arn := cfg.Notifications.AWS.AlertTopicARN; arn != "" {
		topic, err := aws.NewTopicPublisher(ctx, cfg.Notifications.AWS.Region, arn)
		if err != nil {
			log.Error("SNS client failed, failure alerts disabled", map[string]interface{}{"error": err.Error()})
		} else {
			observers = append(observers, notifyhr.NewAlertPublisher(topic, log))
		}
	}

	return observers
}
