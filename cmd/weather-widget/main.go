package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/robfig/cron/v3"

	"github.com/PetoAdam/homenavi/weather-widget/internal/config"
	"github.com/PetoAdam/homenavi/weather-widget/internal/httpapi"
	"github.com/PetoAdam/homenavi/weather-widget/internal/icons"
	"github.com/PetoAdam/homenavi/weather-widget/internal/mqtt"
	"github.com/PetoAdam/homenavi/weather-widget/internal/observability"
	"github.com/PetoAdam/homenavi/weather-widget/internal/render"
	"github.com/PetoAdam/homenavi/weather-widget/internal/visualcrossing"
	"github.com/PetoAdam/homenavi/weather-widget/internal/widget"
)

const serviceName = "weather-widget"

func main() {
	cfg, err := config.Load(os.Getenv("WEATHER_WIDGET_CONFIG"))
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()
	shutdownObs, promHandler, tracer, err := observability.Setup(ctx, serviceName, cfg.OTel.Endpoint)
	if err != nil {
		slog.Error("observability init failed", "error", err)
		os.Exit(1)
	}
	defer shutdownObs()

	vc := visualcrossing.New(cfg.VisualCrossing.APIKey,
		visualcrossing.WithBaseURL(cfg.VisualCrossing.BaseURL),
		visualcrossing.WithTimeout(cfg.VisualCrossing.Timeout),
		visualcrossing.WithLogger(logger),
	)
	if !vc.HasCredential() {
		slog.Warn("VISUALCROSSING_API_KEY not set, serving sample weather")
	}

	resolver := icons.NewResolver(cfg.Icons.Mode, icons.Assets(), "/assets/icons")
	renderer := render.New(cfg.Icons.Mode, resolver)

	opts := []httpapi.Option{
		httpapi.WithLogger(logger),
		httpapi.WithOutcomeHook(func(out widget.Outcome, d time.Duration) {
			observability.ObserveSubmission(out.Kind(), d)
		}),
	}
	var publisher *mqtt.Publisher
	if cfg.MQTT.BrokerURL != "" {
		publisher, err = mqtt.Connect(cfg.MQTT.BrokerURL, "", cfg.MQTT.TopicPrefix)
		if err != nil {
			slog.Warn("mqtt unavailable, weather announcements disabled", "error", err)
		} else {
			opts = append(opts, httpapi.WithAnnouncer(publisher))
		}
	}

	sessions := httpapi.NewSessionStore(cfg.Session.TTL)
	srv, err := httpapi.NewServer(observability.InstrumentFetcher(vc), renderer, sessions, opts...)
	if err != nil {
		slog.Error("server init failed", "error", err)
		os.Exit(1)
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 1m", func() {
		if n := sessions.Sweep(); n > 0 {
			slog.Debug("expired sessions swept", "count", n)
		}
		observability.SetSessions(sessions.Len())
	}); err != nil {
		slog.Error("session sweeper init failed", "error", err)
		os.Exit(1)
	}
	sweeper.Start()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(observability.MetricsAndTracingMiddleware(tracer, serviceName))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promHandler)
	srv.RegisterRoutes(r)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.VisualCrossing.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("weather-widget started", "port", cfg.Port, "icons", cfg.Icons.Mode)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down")
	<-sweeper.Stop().Done()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	publisher.Close()
	slog.Info("weather-widget stopped")
}
