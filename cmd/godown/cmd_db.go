package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prakashraj/godown/app/repositories"
	"github.com/prakashraj/godown/app/services"
	"github.com/prakashraj/godown/config"
	"github.com/prakashraj/godown/database/seeders"
	"github.com/prakashraj/godown/pkg/database"
	"github.com/prakashraj/godown/pkg/storage"
)

// godown seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample catalog data (no-op if products exist)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := database.Connect(ctx)
		if err != nil {
			return err
		}
		defer database.Disconnect(client)

		col := client.Database(config.MongoDatabase()).Collection("products")
		n, err := seeders.Catalog(ctx, col)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Products collection is not empty, nothing seeded.")
			return nil
		}
		fmt.Printf("Seeded %d products.\n", n)
		return nil
	},
}

// godown export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON snapshot of the catalog to a storage disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		client, err := database.Connect(ctx)
		if err != nil {
			return err
		}
		defer database.Disconnect(client)

		if err := storage.Connect(ctx); err != nil {
			return err
		}

		disk, _ := cmd.Flags().GetString("disk")
		col := client.Database(config.MongoDatabase()).Collection("products")
		catalog := services.NewCatalogService(repositories.NewProductRepository(col), nil)

		result, err := catalog.ExportCatalog(ctx, disk)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d products to %s (%s)\n", result.Count, result.Path, result.URL)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("disk", "", `target disk: "local" or "s3" (default STORAGE_DISK)`)
}
