package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tinoosan/booksapi/internal/credential"
	"github.com/tinoosan/booksapi/internal/devseed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample catalogue into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore(st, cfg.ShutdownTimeout, logger)

			issuer, err := newIssuer(cfg, logger)
			if err != nil {
				return err
			}
			return seed(ctx, newServices(st, credential.NewHasher(cfg.BcryptCost), issuer), logger)
		},
	}
}

func seed(ctx context.Context, svc devseed.Services, logger *slog.Logger) error {
	res, err := devseed.Run(ctx, svc)
	if err != nil {
		return err
	}
	logger.Info("DEV seed", "ids", res.IDs())
	printDevSeedBanner(res)
	return nil
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of IDs
func printDevSeedBanner(res devseed.Result) {
	fmt.Println("==================== DEV SEED ====================")
	for _, a := range res.Authors {
		fmt.Printf("author %-10s %s\n", a.LastName+":", a.ID)
	}
	if len(res.Books) > 0 {
		fmt.Printf("books: %d (first %s)\n", len(res.Books), res.Books[0].ID)
	}
	for _, m := range res.Members {
		fmt.Printf("adherent %s / %s: %s\n", m.Login, m.Password, m.ID)
	}
	fmt.Printf("loans: %d\n", len(res.Loans))
	fmt.Println("==================================================")
}
