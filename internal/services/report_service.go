package services

import (
	"context"
	"fmt"
	"log/slog"

	"bottega/internal/core"
	"bottega/internal/store"
)

// Store is the persistence surface the report service needs.
type Store interface {
	store.SnapshotReader
	store.OrderReader
}

// ReportService loads a fresh snapshot per call and runs the pure
// aggregation folds over it. It holds no state between calls.
type ReportService struct {
	store Store
}

func NewReportService(s Store) *ReportService {
	return &ReportService{store: s}
}

// CustomerCategoryReport computes purchased quantity per customer per
// product category.
func (s *ReportService) CustomerCategoryReport(ctx context.Context) ([]core.CategoryQuantity, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := core.AggregateCustomerCategories(snap)
	if err != nil {
		return nil, fmt.Errorf("aggregate customer categories: %w", err)
	}
	slog.DebugContext(ctx, "Customer category report computed",
		"customers", len(snap.Customers), "rows", len(rows))
	return rows, nil
}

// CustomerOrderLines lists one customer's purchased items across all
// of their orders.
func (s *ReportService) CustomerOrderLines(ctx context.Context, customerID int64) ([]core.OrderLine, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return core.CustomerOrderLines(snap, customerID)
}

// ProductsSold answers a validated date-range query: normalized
// per-product rates when the query carries an interval, the raw
// matched orders otherwise.
func (s *ReportService) ProductsSold(ctx context.Context, q core.RangeQuery) (core.RangeReport, error) {
	orders, err := s.store.ListOrdersBetween(ctx, q.Start, q.End)
	if err != nil {
		return core.RangeReport{}, fmt.Errorf("list orders in range: %w", err)
	}
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return core.RangeReport{}, err
	}
	report, err := core.BuildRangeReport(snap, orders, q)
	if err != nil {
		return core.RangeReport{}, fmt.Errorf("build range report: %w", err)
	}
	slog.DebugContext(ctx, "Range report computed",
		"start", q.Start.String(), "end", q.End.String(),
		"interval", string(q.Interval), "orders", len(orders))
	return report, nil
}

// ListCustomers returns all customers for lookup purposes.
func (s *ReportService) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	return s.store.ListCustomers(ctx)
}

// ListProducts returns all orderable products.
func (s *ReportService) ListProducts(ctx context.Context) ([]core.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *ReportService) loadSnapshot(ctx context.Context) (core.Snapshot, error) {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load customers: %w", err)
	}
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load products: %w", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load categories: %w", err)
	}

	snap := core.Snapshot{
		Customers:  customers,
		Products:   make(map[int64]core.Product, len(products)),
		Categories: make(map[int64]core.Category, len(categories)),
	}
	for _, p := range products {
		snap.Products[p.ID] = p
	}
	for _, c := range categories {
		snap.Categories[c.ID] = c
	}
	return snap, nil
}
