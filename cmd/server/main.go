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

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardgen/internal/api"
	"github.com/youruser/cardgen/internal/config"
	"github.com/youruser/cardgen/internal/generate"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/session"
	"github.com/youruser/cardgen/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// placeholder pool is best-effort: a missing dir just means fallback images
	if err := util.EnsureDir(cfg.ImagesDir()); err != nil {
		logger.Warn("failed to create placeholder dir", "dir", cfg.ImagesDir(), "error", err)
	}
	pool := generate.NewPool(cfg.ImagesDir(), cfg.ImagesBaseURL())
	logger.Info("placeholder pool", "dir", pool.Dir(), "base_url", cfg.ImagesBaseURL())
	local := generate.NewLocal(pool, generate.StdRNG{}, logger)

	var (
		gen     generate.Generator = local
		genName                    = "local"
	)
	if cfg.GenerationEndpoint != "" {
		gen = generate.NewClient(&http.Client{Timeout: cfg.GenerationTimeout}, cfg.GenerationEndpoint, logger)
		genName = cfg.GenerationEndpoint
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = "http://localhost" + cfg.Addr()
	}

	store := session.NewStore(gen, logger)
	h := api.NewHandler(api.Options{
		Store:         store,
		Local:         local,
		Pool:          pool,
		Fetcher:       imagepkg.Downloader{Client: &http.Client{Timeout: cfg.DownloadTimeout}},
		Logger:        logger,
		GeneratorName: genName,
		PublicBaseURL: publicBase,
	})

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.Logger(logger))
	h.RegisterRoutes(r, cfg.StaticDir)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go store.Run(ctx, cfg.SessionTTL)

	go func() {
		logger.Info("starting server", "addr", cfg.Addr(), "generator", genName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
