// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jameskabz/mpesa/cmd/app/commands"
	"github.com/jameskabz/mpesa/internal/app"
	"github.com/jameskabz/mpesa/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "mpesa",
		Usage:   "M-Pesa payment gateway service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "generate-credential",
				Usage: "Encrypt an initiator password into a security credential",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Value:   "",
						Usage:   "Initiator password (defaults to the configured B2C initiator password)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateCredential(cmd.String("password"), os.Stdout)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
