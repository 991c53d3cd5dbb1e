package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/handler"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/internal/mailer"
	"github.com/MKhiriev/go-contact-book/internal/server"
	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/internal/store"
	"github.com/MKhiriev/go-contact-book/internal/workers"
	"github.com/MKhiriev/go-contact-book/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		panic(fmt.Sprintf("error getting configs: %v", err))
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.Version
	}

	log := logger.NewLogger("contact-book-server", cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	mailWorker := workers.NewMailWorker(cfg.Workers, mailer.NewSender(cfg.Mail, log), log)
	backgroundWorkers := workers.NewWorkers(mailWorker)
	backgroundWorkers.Run(ctx)

	services, err := service.NewServices(storages, mailWorker, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages.RateCounter, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped")
	}

	stop()
	backgroundWorkers.Wait()
	log.Info().Msg("background workers stopped")
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
