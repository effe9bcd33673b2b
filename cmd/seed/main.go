// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the schema and seed the database with initial data",
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "Apply the database schema",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "schema-file",
						Usage: "Path to the schema SQL file",
						Value: "./data/schema.sql",
					},
				},
				Action: runSchema,
			},
			{
				Name:   "master",
				Usage:  "Seed master data (stores, suppliers, products, costs)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runMasterSeed,
			},
			{
				Name:   "inventory",
				Usage:  "Seed per-store inventory snapshots",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runInventorySeed,
			},
			{
				Name:   "promotions",
				Usage:  "Seed supplier promotions",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runPromotionSeed,
			},
			{
				Name:  "all",
				Usage: "Seed master data, inventory, and promotions",
				Flags: []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: func(c *cli.Context) error {
					if err := runMasterSeed(c); err != nil {
						return fmt.Errorf("error seeding master data: %w", err)
					}
					if err := runInventorySeed(c); err != nil {
						return fmt.Errorf("error seeding inventory: %w", err)
					}
					if err := runPromotionSeed(c); err != nil {
						return fmt.Errorf("error seeding promotions: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSchema(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ddl, err := os.ReadFile(c.String("schema-file"))
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), string(ddl)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Println("Schema applied successfully")
	return nil
}

func runMasterSeed(c *cli.Context) error {
	return withSeedTx(c, func(ctx context.Context, tx *sql.Tx) error {
		dataDir := c.String("data-dir")

		if err := seedTable(ctx, tx, "stores",
			[]string{"id", "name"},
			filepath.Join(dataDir, "stores.csv")); err != nil {
			return fmt.Errorf("failed to seed stores: %w", err)
		}

		if err := seedTable(ctx, tx, "suppliers",
			[]string{"id", "name", "contact_name", "phone"},
			filepath.Join(dataDir, "suppliers.csv")); err != nil {
			return fmt.Errorf("failed to seed suppliers: %w", err)
		}

		if err := seedTable(ctx, tx, "products",
			[]string{"id", "name", "brand_id", "category_id"},
			filepath.Join(dataDir, "products.csv")); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		return seedSupplierProducts(ctx, tx, filepath.Join(dataDir, "supplier_products.csv"))
	})
}

func runInventorySeed(c *cli.Context) error {
	return withSeedTx(c, func(ctx context.Context, tx *sql.Tx) error {
		return seedInventory(ctx, tx, filepath.Join(c.String("data-dir"), "inventory.csv"))
	})
}

func runPromotionSeed(c *cli.Context) error {
	return withSeedTx(c, func(ctx context.Context, tx *sql.Tx) error {
		return seedPromotions(ctx, tx, filepath.Join(c.String("data-dir"), "promotions.csv"))
	})
}

func withSeedTx(c *cli.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Starting database seeding...")

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}
