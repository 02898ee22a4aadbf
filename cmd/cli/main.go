package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/buildinfo"
	"github.com/dmitrijs2005/gophershop/internal/client/cli"
	"github.com/dmitrijs2005/gophershop/internal/client/client"
	"github.com/dmitrijs2005/gophershop/internal/client/config"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, "text")

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	tel, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName:  "gophershop-cli",
		OTLPEndpoint: cfg.OTLPEndpoint,
		MetricsAddr:  cfg.MetricsAddr,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "telemetry shutdown failed", "error", err)
		}
	}()

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	app := cli.NewApp(cfg, os.Stdin, os.Stdout, logger)

	api, err := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithMetrics(client.NewMetrics(tel.Registry)),
		client.WithLogger(logger.With("module", "client")),
		client.WithNotifier(app),
		client.WithNavigator(app),
		client.WithOnLogout(app.SessionEnded),
	)
	if err != nil {
		return err
	}

	app.Bind(cli.NewServices(api, client.NewRepositories(db), logger))
	app.Run(ctx)
	return nil
}
