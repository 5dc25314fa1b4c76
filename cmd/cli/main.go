package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/edupilot/edupilot/internal/buildinfo"
	"github.com/edupilot/edupilot/internal/client/cli"
	"github.com/edupilot/edupilot/internal/client/config"
	"github.com/edupilot/edupilot/internal/client/storage"
	"github.com/edupilot/edupilot/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer logger.Sync()

	db, err := storage.OpenDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	app := cli.NewApp(cfg, storage.NewSQLiteStore(db), logger, os.Stdin, os.Stdout)
	app.Run(ctx)

}
