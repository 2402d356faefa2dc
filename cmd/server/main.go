package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"travelbook/checkout-relay/internal/app/checkout"
	"travelbook/checkout-relay/internal/app/processor"
	"travelbook/checkout-relay/internal/app/server"
	"travelbook/checkout-relay/internal/app/server/handlers"
	"travelbook/checkout-relay/internal/app/validation"
	"travelbook/checkout-relay/internal/config"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "checkout-relay",
		Usage: "Relay travel checkout requests to the payment processor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file when it exists",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides PORT)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides LOG_LEVEL)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("checkout relay stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}

	cfg := config.NewConfig()
	if c.IsSet("port") {
		cfg.Server.Port = c.String("port")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	// The relay is useless without a processor credential; refuse to listen.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	processorClient, err := processor.NewClient(cfg.Processor.APIURL, cfg.Processor.SecretKey, cfg.Processor.Timeout, logger)
	if err != nil {
		return fmt.Errorf("initializing payment processor: %w", err)
	}
	defer processorClient.CloseIdleConnections()

	validator, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("initializing request validation: %w", err)
	}

	builder := checkout.NewBuilder(cfg.Checkout.Currency, cfg.Checkout.SiteURL, cfg.Checkout.LocalOrigins)
	h := handlers.NewHandlers(processorClient, validator, builder, logger)
	srv := server.NewServer(cfg, logger, h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting checkout relay",
		slog.String("addr", cfg.Addr()),
		slog.String("currency", cfg.Checkout.Currency),
		slog.String("site_url", cfg.Checkout.SiteURL))

	return srv.Run(ctx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With(slog.String("app", "checkout-relay"))
}
