// Command ingestd runs the durability queue's background replay and
// cleanup loops alongside a health/metrics HTTP server.
package main

import (
	"context"
	"log"

	"durableq/internal/app"
	"durableq/pkg/config"
	"durableq/pkg/logger"
	"durableq/pkg/shutdown"
)

func main() {
	version := "dev"

	logger.Init()

	flags := config.ParseConfigFlags()
	fileCfg, fileExists, err := config.ParseConfigFile(flags)
	if err != nil {
		log.Fatalf("failed to load config file: %v", err)
	}
	envCfg, envRes := config.ParseConfigEnvs()

	eff, err := config.LoadEffectiveConfig(flags, fileCfg, fileExists, envCfg, envRes)
	if err != nil {
		log.Fatalf("failed to build effective config: %v", err)
	}

	a, err := app.New(eff, version)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	ctx, cancel := shutdown.SetupSignalHandler(context.Background())
	defer cancel()

	if err := a.Run(ctx); err != nil {
		logger.Error("ingestd_fatal", "error", err)
		log.Fatal(err)
	}

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	defer shutdownCancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		logger.Error("ingestd_shutdown_error", "error", err)
	}
}
