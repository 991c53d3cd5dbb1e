package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/adapter"
	"github.com/MKhiriev/go-contact-book/internal/client"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/MKhiriev/go-contact-book/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	serverURL := flag.String("server", envOr("CONTACT_BOOK_SERVER", "http://localhost:8080"), "contact book server address")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	logLevel := flag.String("log-level", "warn", "log level")
	showVersion := flag.Bool("build-info", false, "print build information and exit")
	flag.Parse()

	if *showVersion {
		info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
		fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", info.Version, info.Date, info.Commit)
		return
	}

	log := logger.NewLogger("contact-book-client", *logLevel)

	serverAdapter, err := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{BaseURL: *serverURL, Timeout: *timeout})
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	tokens := models.NewTokenPair(os.Getenv(client.AccessTokenEnv), os.Getenv(client.RefreshTokenEnv))
	app := client.NewApp(serverAdapter, tokens, os.Stdout, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
