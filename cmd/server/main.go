// Command server boots the streaming core: the HTTP surface (message-queue
// operations, SSE subscriptions, run scheduling) and the background job host
// that actually executes chatbot/translation runs. Both share one Redis
// connection pool and one orchestrator wired over Postgres-backed storage.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aurorah/streamcore/agentclient"
	"github.com/aurorah/streamcore/cache"
	"github.com/aurorah/streamcore/config"
	"github.com/aurorah/streamcore/feature"
	"github.com/aurorah/streamcore/host"
	"github.com/aurorah/streamcore/httpapi"
	"github.com/aurorah/streamcore/logger"
	"github.com/aurorah/streamcore/mqueue"
	"github.com/aurorah/streamcore/orchestrator"
	"github.com/aurorah/streamcore/queue"
	qredis "github.com/aurorah/streamcore/queue/redis"
	"github.com/aurorah/streamcore/router/middlewares"
	"github.com/aurorah/streamcore/sse"
	"github.com/aurorah/streamcore/storage"
	"github.com/aurorah/streamcore/store"
	"github.com/aurorah/streamcore/webhook"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// appConfig is the process's closed set of env-driven settings, parsed once
// via config.Load.
type appConfig struct {
	Env            string        `env:"APP_ENV" envDefault:"production"`
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	AgentBaseURL   string        `env:"AGENT_BASE_URL,required"`
	AgentTimeout   time.Duration `env:"AGENT_TIMEOUT" envDefault:"60s"`
	WebhookURL     string        `env:"WEBHOOK_URL"`
	WebhookSecret  string        `env:"WEBHOOK_SIGNING_SECRET"`
	JobConcurrency int           `env:"JOB_CONCURRENCY" envDefault:"8"`
	JobMaxRetries  int           `env:"JOB_MAX_RETRIES" envDefault:"3"`
	JobPurgeEvery  time.Duration `env:"JOB_PURGE_INTERVAL" envDefault:"1h"`

	AttachmentStorageBucket string `env:"ATTACHMENT_STORAGE_BUCKET"`
	AttachmentStorageRegion string `env:"ATTACHMENT_STORAGE_REGION"`
	AttachmentStorageKey    string `env:"ATTACHMENT_STORAGE_KEY"`
	AttachmentStorageSecret string `env:"ATTACHMENT_STORAGE_SECRET"`
}

func main() {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		slog.Default().Error("config load failed", "error", err)
		os.Exit(1)
	}

	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
		reqID := middlewares.GetRequestID(ctx)
		if reqID == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", reqID), true
	}
	log := logger.NewEnvironmentLoggerWithExtractors("streamcore", logger.Environment(cfg.Env), []logger.ContextExtractor{requestIDExtractor})
	logger.SetAsDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg appConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := store.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
	}

	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	redisCache, err := cache.NewRedisAdapter(redisClient)
	if err != nil {
		return err
	}

	st := store.NewCachedStore(store.NewPostgresStore(pgPool), redisCache, 10*time.Minute)

	mq := mqueue.New(redisClient, mqueue.Config{KeyPrefix: "streamcore:mq:"})
	adapter := sse.NewAdapter(mq)

	agent := agentclient.New(agentclient.Config{
		BaseURL:        cfg.AgentBaseURL,
		RequestTimeout: cfg.AgentTimeout,
	}, agentclient.WithClientLogger(log))

	orchOpts := []orchestrator.Option{
		orchestrator.WithFeatures(feature.NewStaticProviderFromEnv(map[string]string{})),
		orchestrator.WithLogger(log),
	}
	if cfg.WebhookURL != "" {
		var senderOpts []webhook.SenderOption
		if cfg.WebhookSecret != "" {
			senderOpts = append(senderOpts, webhook.WithSigningSecret(cfg.WebhookSecret))
		}
		base := webhook.NewWebhookSender(senderOpts...)
		retrying := webhook.NewRetryDecorator(base,
			webhook.WithRetryCount(2),
			webhook.WithRetryDelay(time.Second),
			webhook.WithRetryBackoff(),
			webhook.WithRetryOnServerErrors(),
			webhook.WithRetryOnNetworkErrors(),
			webhook.WithRetryLogger(log),
		)
		sender := webhook.NewLoggerDecorator(retrying, log, webhook.WithMaskedFields("task_id", "message_id"))
		orchOpts = append(orchOpts, orchestrator.WithWebhook(sender, cfg.WebhookURL))
	}
	if cfg.AttachmentStorageBucket != "" {
		mirror, err := storage.New(ctx, storage.Config{
			Key:         cfg.AttachmentStorageKey,
			Secret:      cfg.AttachmentStorageSecret,
			Region:      cfg.AttachmentStorageRegion,
			Bucket:      cfg.AttachmentStorageBucket,
			MaxFileSize: storage.DefaultMaxFileSize,
		})
		if err != nil {
			return err
		}
		orchOpts = append(orchOpts, orchestrator.WithAttachmentMirror(mirror))
	}
	orch := orchestrator.New(mq, agent, st, orchOpts...)

	jobStorage := qredis.New(redisClient)
	jobQueue := queue.New(jobStorage,
		queue.WithConcurrency(cfg.JobConcurrency),
		queue.WithMaxRetries(cfg.JobMaxRetries),
		queue.WithMiddleware(queue.Chain(
			queue.WithRecovery(),
			queue.WithLogging(log),
		)),
	)

	jobHost, err := host.New(jobQueue, orch, host.WithLogger(log))
	if err != nil {
		return err
	}

	debugTmpl, err := httpapi.NewDebugTemplateEngine()
	if err != nil {
		return err
	}

	apiServer, err := httpapi.New(mq, adapter, jobHost, st,
		httpapi.WithLogger(log),
		httpapi.WithTemplateEngine(debugTmpl),
		httpapi.WithVersion("0.1.0"),
	)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 2)

	go func() {
		log.Info("job host starting")
		if err := jobHost.Run(ctx); err != nil {
			errc <- err
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.JobPurgeEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := jobStorage.PurgeCompleted(ctx, queue.DefaultPurgeAge); err != nil {
					log.Warn("job purge: completed jobs", "error", err)
				}
				if err := jobStorage.PurgeFailed(ctx, queue.DefaultFailedPurgeAge); err != nil {
					log.Warn("job purge: failed jobs", "error", err)
				}
			}
		}
	}()

	go func() {
		log.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		log.Error("component failed, shutting down", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", "error", err)
	}
	if err := jobHost.Stop(shutdownCtx); err != nil {
		log.Error("job host shutdown error", "error", err)
	}

	return nil
}
