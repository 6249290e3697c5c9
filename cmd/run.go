package cmd

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/telefwd/telefwd/config"
	"github.com/telefwd/telefwd/peers"
	"github.com/telefwd/telefwd/storage"
	"github.com/telefwd/telefwd/tgclient"
)

func run(cmd *cobra.Command, _ []string) {
	env := config.LoadEnv()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "telefwd",
	})
	if lvl, err := log.ParseLevel(env.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	ctx := log.WithContext(cmd.Context(), logger)

	gw, err := storage.NewGateway(ctx, storage.Options{
		Mode:     env.StorageMode,
		MongoURI: env.MongoURI,
		MongoDB:  env.MongoDB,
		MongoCol: env.MongoCol,
	})
	if err != nil {
		logger.Fatal("storage backend unavailable", "error", err)
	}

	cfg := gw.ReadConfig(ctx)
	for _, warning := range config.Normalize(cfg) {
		logger.Warn(warning)
	}

	// The pid is session-only state: skip the storage round trip on the
	// document backend.
	cfg.PID = os.Getpid()
	if err := gw.WriteConfig(ctx, cfg, false); err != nil {
		logger.Warn("could not record pid", "error", err)
	}

	client, err := tgclient.New(ctx, cfg.Login, env.SessionPath)
	if err != nil {
		logger.Fatal("telegram login failed", "error", err)
	}

	resolver, err := peers.NewCachedResolver(
		peers.NewTelegramResolver(client.CreateContext()),
		peers.CacheOptions{
			TTL:         time.Duration(env.CacheTTL) * time.Second,
			NumCounters: env.CacheNumCounters,
			MaxCost:     env.CacheMaxCost,
		},
	)
	if err != nil {
		logger.Fatal("resolver cache", "error", err)
	}

	routes, err := peers.LoadRoutes(ctx, resolver, cfg.Forwards)
	if err != nil {
		logger.Fatal("building routing map", "error", err)
	}
	admins, err := peers.LoadAdmins(ctx, resolver, cfg.Admins)
	if err != nil {
		logger.Fatal("resolving admins", "error", err)
	}
	logger.Info("configuration loaded",
		"backend", gw.Kind(),
		"routes", len(routes),
		"admins", len(admins),
		"mode", cfg.Mode,
	)

	err = gw.Watch(ctx, func(fresh *config.Config) {
		for _, warning := range config.Normalize(fresh) {
			logger.Warn(warning)
		}
		routes, err := peers.LoadRoutes(ctx, resolver, fresh.Forwards)
		if err != nil {
			logger.Error("routing map rebuild failed, keeping previous map", "error", err)
			return
		}
		logger.Info("routing map rebuilt", "routes", len(routes))
	})
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	}

	<-ctx.Done()
	logger.Info("bye")
}
