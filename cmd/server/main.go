// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"codeberg.org/lesgardiens/boardclub/internal/config"
	"codeberg.org/lesgardiens/boardclub/internal/database"
	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/server"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:   "boardclub",
		Usage:  "Start the club API server",
		Flags:  config.Flags(),
		Action: server.Run,
		Commands: []*cli.Command{
			{
				Name:   "purge-tokens",
				Usage:  "Remove expired entries from the token revocation registry",
				Flags:  config.Flags(),
				Action: purgeTokens,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func purgeTokens(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	purged, err := repository.New(db).PurgeExpiredTokens(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("purged %d expired tokens\n", purged)
	return nil
}
