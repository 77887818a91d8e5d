// @title         Doomscroll API
// @version       0.1.0
// @description   Usage event ingest, on-demand classification and daily sentiment rollups

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"doomscroll/internal/platform/config"
	"doomscroll/internal/platform/logger"
	"doomscroll/internal/platform/metrics"
	phttp "doomscroll/internal/platform/net/http"
	"doomscroll/internal/platform/net/middleware"
	"doomscroll/internal/platform/store"
	pstrings "doomscroll/internal/platform/strings"

	"doomscroll/internal/modkit/repokit"
	"doomscroll/internal/services/api"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Panic().Err(err).Msg("load .env")
	}
	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// open the platform store (postgres + optional CH)
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	mounted := api.Mount(srv.Router(), api.Options{
		Root:           root,
		Store:          st,
		Logger:         l,
		Registry:       metrics.NewRegistry(),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
		CORS: middleware.CORSOptions{
			AllowedOrigins: pstrings.SplitList(apiCfg.MayString("CORS_ORIGINS", "")),
		},
	})

	// the rollup loop shares the process with the server
	if mounted.Rollup.Enabled() {
		sched := mounted.Rollup.Scheduler()
		if err := sched.Start(ctx); err != nil {
			l.Panic().Err(err).Msg("rollup scheduler")
		}
		defer sched.Stop()
	} else {
		l.Info().Msg("rollup scheduler disabled")
	}

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
