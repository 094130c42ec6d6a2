// Package store declares the read interfaces the reporting core needs
// from its persistence collaborator, plus the writer the seeder uses.
package store

import (
	"context"

	"bottega/internal/core"
)

// SnapshotReader loads the pieces of the domain graph a report folds
// over. Each call returns a complete, consistent collection.
type SnapshotReader interface {
	ListCustomers(ctx context.Context) ([]core.Customer, error)
	ListProducts(ctx context.Context) ([]core.Product, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
}

// OrderReader filters orders by calendar date, inclusive on both ends.
type OrderReader interface {
	ListOrdersBetween(ctx context.Context, start, end core.Date) ([]core.Order, error)
}

// Writer is the seeding surface. The reporting paths never write.
type Writer interface {
	InsertCustomer(ctx context.Context, name string) (int64, error)
	InsertCategory(ctx context.Context, name string) (int64, error)
	InsertProduct(ctx context.Context, name string, categoryIDs []int64) (int64, error)
	InsertOrder(ctx context.Context, customerID int64, status string, date core.Date) (int64, error)
	InsertOrderItem(ctx context.Context, orderID, productID, quantity int64) (int64, error)
}
