package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/plated/internal/buildinfo"
	"github.com/dmitrijs2005/plated/internal/client/cli"
	"github.com/dmitrijs2005/plated/internal/client/config"
	"github.com/dmitrijs2005/plated/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	log := logging.NewZerologLogger(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "err", err)
		os.Exit(1)
	}

	app.Run(ctx)

	if err := app.Close(); err != nil {
		log.Error(ctx, "shutdown", "err", err)
	}
}
