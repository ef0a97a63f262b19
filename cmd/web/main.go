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

	"storefront-gateway/internal/admin"
	"storefront-gateway/internal/catalog"
	"storefront-gateway/internal/config"
	"storefront-gateway/internal/httpapi"
	"storefront-gateway/internal/session"
	"storefront-gateway/internal/upstream"
	"storefront-gateway/pkg/logger"
	"storefront-gateway/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local convenience; in deployed environments the runner injects env.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	codec, err := session.NewCodec(cfg.Session.Secret)
	if err != nil {
		log.Error("session init failed", "err", err)
		os.Exit(1)
	}

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	manager := session.NewManager(codec, client, cfg.Session.CookieName, cfg.Session.CookieSecure)
	cat := catalog.NewService(catalog.NewRedisCache(rdb), cfg.Catalog.CacheTTL)

	h := httpapi.Handlers{
		Client:       client,
		Session:      manager,
		Catalog:      cat,
		Admin:        admin.NewService(cat),
		CookieSecure: cfg.Session.CookieSecure,
		SignInPath:   "/admin/login",
		SignInLimit: func(ctx context.Context, key string) (bool, error) {
			return utils.AllowAttempt(ctx, rdb, "signin:"+key, cfg.Auth.SignInLimit, cfg.Auth.SignInWindow)
		},
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, cfg, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("gateway listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
