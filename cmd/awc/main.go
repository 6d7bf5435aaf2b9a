package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"awc/internal/config"
	"awc/internal/handlers"
	mw "awc/internal/middleware"
	"awc/internal/notify"
	"awc/internal/ratelimit"
	"awc/internal/sessions"
	"awc/internal/store"
	"awc/internal/validate"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database schema ready")

	redisClient := ratelimit.NewRedisClient(cfg.RedisAddr)
	limiter := ratelimit.NewRedis(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow)

	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		mailer, err = notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailSender, cfg.MailReceiver)
		if err != nil {
			logger.Error("smtp setup failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("SMTP not configured, notifications will only be logged")
		mailer = notify.Nop{Log: logger}
	}

	notifyCtx, stopNotify := context.WithCancel(context.Background())
	dispatcher := notify.NewDispatcher(mailer, 64, logger)
	dispatcher.Start(notifyCtx)

	sm := sessions.NewManager(cfg.SessionSecret, cfg.HTTPS)

	h := &handlers.Handlers{
		Records:  store.NewRecordStore(db),
		Users:    store.NewUserStore(db),
		Sessions: sm,
		Gate:     validate.New(),
		Limiter:  limiter,
		Notifier: dispatcher,
		Log:      logger,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RedirectSlashes)
	r.Use(mw.Metrics)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	// ---------- Public pages ----------
	r.Get("/", h.ShowIndexPage)
	r.Get("/about", h.ShowAboutPage)
	r.Get("/devs", h.ShowDevsPage)
	r.Get("/nominate", h.ShowNominateForm)
	r.Post("/nominate", h.HandleNominate)

	// ---------- Admin authentication ----------
	r.Get("/login", h.ShowLoginPage)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	// ---------- Admin panel ----------
	r.Group(func(g chi.Router) {
		g.Use(mw.AdminOnlyMW(sm))

		g.Get("/admin", h.AdminHome)
		g.Get("/admin/nominees", h.AdminNomineesPage)
		g.Post("/admin/nominees", h.HandleNomineeAction)
		g.Get("/admin/devs", h.AdminDevsPage)
		g.Post("/admin/devs", h.HandleDevAction)
		g.Get("/admin/edit/{bucket}/{id}", h.ShowEditForm)
		g.Post("/admin/edit/{bucket}/{id}", h.HandleEdit)
	})

	// ---------- Operational endpoints ----------
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		dbHealthy := db.PingContext(ctx) == nil
		redisHealthy := limiter.Healthy(ctx)
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]bool{"db": dbHealthy, "redis": redisHealthy})
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	// Drain pending notifications before exiting.
	dispatcher.Close()
	stopNotify()
	logger.Info("server exited")
}
