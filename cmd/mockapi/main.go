package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophershop/internal/buildinfo"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/mockapi"
	"github.com/dmitrijs2005/gophershop/internal/mockapi/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, cfg.LogLevel, "json")

	srv, err := mockapi.New(mockapi.Options{
		Secret:     []byte(cfg.SecretKey),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger.Info(ctx, "demo account", "email", mockapi.DemoEmail, "password", mockapi.DemoPassword)
	if err := srv.Run(ctx, cfg.ListenAddr); err != nil {
		log.Fatalf("%v", err)
	}
}
