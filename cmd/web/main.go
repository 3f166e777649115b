package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/anvaya-web/internal/config"
	"github.com/xavierca1/anvaya-web/internal/infra/http/handlers"
	"github.com/xavierca1/anvaya-web/internal/infra/http/middleware"
	"github.com/xavierca1/anvaya-web/internal/infra/http/web"
	"github.com/xavierca1/anvaya-web/internal/infra/integration/anvaya"
	"github.com/xavierca1/anvaya-web/internal/infra/mail"
	"github.com/xavierca1/anvaya-web/internal/infra/queue"
	"github.com/xavierca1/anvaya-web/internal/usecase"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Remote API
	client := anvaya.NewClient(cfg.AnvayaAPIURL,
		anvaya.WithTimeout(cfg.AnvayaTimeout),
		anvaya.WithErrorHook(func(op string, err error) {
			middleware.RecordIntegrationError("anvaya", op)
			logger.Warn("anvaya request failed", "op", op, "error", err)
		}),
	)

	// 2. Activity events (optional)
	var publisher usecase.ActivityPublisher
	var queueConn handlers.ConnectionState
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			logger.Error("activity events disabled", "error", err)
		} else {
			defer rabbitMQ.Close()
			publisher = queue.NewProducer(rabbitMQ.Ch)
			queueConn = rabbitMQ.Conn

			if cfg.ActivityMailEnabled() {
				sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailFrom)
				notifier := &mail.ActivityNotifier{Sender: sender, To: cfg.ActivityEmail, PublicURL: cfg.PublicBaseURL}
				worker := queue.NewWorker(rabbitMQ.Ch, notifier, logger.With("component", "activity_worker"))
				go func() {
					if err := worker.Start(ctx, queue.QueueName); err != nil {
						logger.Error("activity worker stopped", "error", err)
					}
				}()
			}
		}
	}

	// 3. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(client, publisher, logger)
	createCommentUC := usecase.NewCreateCommentUseCase(client, publisher, logger)

	// 4. Handlers
	renderer, err := web.NewRenderer(cfg.DateLayout)
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}
	dashboardHandler := handlers.NewDashboardHandler(client, usecase.ParseFooterMode(cfg.FooterMode), renderer, logger)
	leadDetailHandler := handlers.NewLeadDetailHandler(client, createCommentUC, renderer, logger)
	addLeadHandler := handlers.NewAddLeadHandler(client, createLeadUC, renderer, logger)
	healthHandler := handlers.NewHealthHandler(client, queueConn)
	formLimiter := middleware.NewRateLimiter(ctx, cfg.FormRateLimit, time.Minute)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/", dashboardHandler.Handle)
	r.Get("/leads/{id}", leadDetailHandler.Show)
	r.Get("/addLead", addLeadHandler.Show)
	r.Group(func(r chi.Router) {
		r.Use(formLimiter.Limit)
		r.Post("/leads/{id}/comments", leadDetailHandler.AddComment)
		r.Post("/addLead", addLeadHandler.Create)
	})
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("anvaya web listening", "port", cfg.Port, "api", cfg.AnvayaAPIURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
