// Command seed loads the canonical development fixture into the
// SQLite database so the reporting routes have something to chew on.
package main

import (
	"context"
	"os"

	"bottega/internal/cli"
	"bottega/internal/core"
	applog "bottega/internal/log"
	"bottega/internal/store"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(false).WithComponent(applog.ComponentSeed)
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	if err := seed(context.Background(), repo); err != nil {
		logger.Error("Seeding failed", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Seed data loaded", "db_path", cfg.SQLiteDBPath)
}

func seed(ctx context.Context, w store.Writer) error {
	cleaning, err := w.InsertCategory(ctx, "Cleaning")
	if err != nil {
		return err
	}
	chemicals, err := w.InsertCategory(ctx, "Chemicals")
	if err != nil {
		return err
	}
	household, err := w.InsertCategory(ctx, "Household Supplies")
	if err != nil {
		return err
	}

	bleach, err := w.InsertProduct(ctx, "Bleach", []int64{chemicals, cleaning})
	if err != nil {
		return err
	}
	toiletPaper, err := w.InsertProduct(ctx, "toilet paper", []int64{chemicals, household})
	if err != nil {
		return err
	}
	mop, err := w.InsertProduct(ctx, "mop", []int64{household})
	if err != nil {
		return err
	}
	if _, err := w.InsertProduct(ctx, "hand soap", []int64{cleaning}); err != nil {
		return err
	}
	bucket, err := w.InsertProduct(ctx, "small bucket", []int64{household})
	if err != nil {
		return err
	}

	kirk, err := w.InsertCustomer(ctx, "Kirk")
	if err != nil {
		return err
	}
	spock, err := w.InsertCustomer(ctx, "Spock")
	if err != nil {
		return err
	}
	mccoy, err := w.InsertCustomer(ctx, "McCoy")
	if err != nil {
		return err
	}

	type line struct {
		product  int64
		quantity int64
	}
	orders := []struct {
		customer int64
		status   string
		date     core.Date
		lines    []line
	}{
		{kirk, "Waiting", core.NewDate(2024, 1, 10), []line{{bleach, 5}}},
		{kirk, "Waiting", core.NewDate(2024, 2, 1), []line{{bleach, 5}, {bucket, 2}}},
		{spock, "In Transit", core.NewDate(2024, 3, 2), []line{{toiletPaper, 20}}},
		{mccoy, "Delivered", core.NewDate(2024, 3, 15), []line{{mop, 1}}},
	}
	for _, o := range orders {
		orderID, err := w.InsertOrder(ctx, o.customer, o.status, o.date)
		if err != nil {
			return err
		}
		for _, l := range o.lines {
			if _, err := w.InsertOrderItem(ctx, orderID, l.product, l.quantity); err != nil {
				return err
			}
		}
	}
	return nil
}
