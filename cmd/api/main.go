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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"walink/internal/awsutil"
	"walink/internal/config"
	"walink/internal/httpserver"
	"walink/internal/logging"
	"walink/internal/observability"
	"walink/internal/phone"
	sqsqueue "walink/internal/queue/sqs"
	"walink/internal/service"
	"walink/internal/store"
	"walink/internal/store/cache"
	"walink/internal/store/pg"
	"walink/internal/templates"
	"walink/internal/wa"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadAPI()
	logging.Init("api", cfg.LogFormat, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := pg.NewPool(ctx, cfg.DBDSN, pg.PoolOptions{
		MaxConns:          cfg.DBPoolMaxConns,
		MinConns:          cfg.DBPoolMinConns,
		MaxConnLifetime:   cfg.DBPoolMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBPoolMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBPoolHealthCheckPeriod,
	})
	if err != nil {
		slog.Error("api db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	dbStore := pg.New(db)

	readyChecks := []httpserver.ReadyzCheck{dbStore.Ping}

	var users store.PhoneLookup = store.NewBreakerLookup(dbStore, "users")
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
		users = &cache.PhoneCache{Redis: rdb, Next: users, TTL: cfg.PhoneCacheTTL}
		readyChecks = append(readyChecks, func(c context.Context) error { return rdb.Ping(c).Err() })
		slog.Info("phone cache enabled", "redis_addr", cfg.RedisAddr, "ttl", cfg.PhoneCacheTTL)
	}

	phones := phone.Normalizer{CountryCode: cfg.CountryCode}
	svc := &service.LinkService{
		Users:   users,
		Builder: wa.Builder{BaseURL: cfg.BaseURL, Phones: phones},
		Templates: templates.New(templates.Boilerplate{
			Brand:          cfg.BrandName,
			SupportPhone:   cfg.SupportPhone,
			SupportEmail:   cfg.SupportEmail,
			CurrencySymbol: cfg.CurrencySymbol,
		}),
		Log:       dbStore,
		Validator: phone.Validator{Region: cfg.Region},
	}

	if cfg.LinkEventsQueueURL != "" {
		sqsClient, err := awsutil.NewSQSClient(ctx, cfg.AWSRegion, cfg.LocalstackEndpoint)
		if err != nil {
			slog.Error("api sqs client init failed", "err", err)
			os.Exit(1)
		}
		svc.Events = &sqsqueue.Producer{SQS: sqsClient, QueueURL: cfg.LinkEventsQueueURL}
		slog.Info("link events enabled", "queue_url", cfg.LinkEventsQueueURL)
	}

	observability.Register(prometheus.DefaultRegisterer)

	s := httpserver.New()
	s.Mux.Use(httpserver.Logging, httpserver.Metrics(observability.APIRequests))
	api := &httpserver.API{
		Svc:     svc,
		Limiter: rate.NewLimiter(rate.Limit(cfg.APIRPS), cfg.APIBurst),
	}
	api.Register(s.Mux)
	s.Mux.HandleFunc("/healthz", httpserver.Healthz()).Methods(http.MethodGet)
	s.Mux.HandleFunc("/readyz", httpserver.Readyz(2*time.Second, readyChecks...)).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsSrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: promhttp.Handler()}

	srvErrCh := make(chan error, 1)
	go func() {
		slog.Info("api listening", "port", cfg.Port)
		srvErrCh <- srv.ListenAndServe()
	}()
	metricsErrCh := make(chan error, 1)
	go func() {
		slog.Info("api metrics listening", "port", cfg.MetricsPort)
		metricsErrCh <- metricsSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-srvErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api server failed", "err", err)
			exitCode = 1
		}
	case err := <-metricsErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api metrics server failed", "err", err)
			exitCode = 1
		}
	case sig := <-sigCh:
		slog.Info("api shutdown", "signal", sig.String())
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)

	if exitCode != 0 {
		db.Close()
		os.Exit(exitCode)
	}
}
