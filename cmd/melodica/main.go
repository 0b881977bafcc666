package main

import (
	"context"
	"log"
	"os"

	"github.com/melodica-app/melodica/internal/app/cli"
	"github.com/melodica-app/melodica/internal/app/config"
	"github.com/melodica-app/melodica/internal/buildinfo"
	"github.com/melodica-app/melodica/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewZerolog(logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
