package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"bottega/internal/core"
	"bottega/internal/storage"
)

func TestCustomerCategoryReport(t *testing.T) {
	svc := NewReportService(storage.NewMemoryStore())
	rows, err := svc.CustomerCategoryReport(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	want := []core.CategoryQuantity{
		{CustomerID: 1, CustomerName: "Kirk", CategoryID: 2, CategoryName: "Chemicals", Quantity: 10},
		{CustomerID: 1, CustomerName: "Kirk", CategoryID: 1, CategoryName: "Cleaning", Quantity: 10},
		{CustomerID: 1, CustomerName: "Kirk", CategoryID: 3, CategoryName: "Household Supplies", Quantity: 2},
		{CustomerID: 2, CustomerName: "Spock", CategoryID: 2, CategoryName: "Chemicals", Quantity: 20},
		{CustomerID: 2, CustomerName: "Spock", CategoryID: 3, CategoryName: "Household Supplies", Quantity: 20},
		{CustomerID: 3, CustomerName: "McCoy", CategoryID: 3, CategoryName: "Household Supplies", Quantity: 1},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows mismatch\n got: %+v\nwant: %+v", rows, want)
	}
}

func TestCustomerOrderLinesNotFound(t *testing.T) {
	svc := NewReportService(storage.NewMemoryStore())
	if _, err := svc.CustomerOrderLines(context.Background(), 42); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductsSoldInclusiveBounds(t *testing.T) {
	svc := NewReportService(storage.NewMemoryStore())

	// Both bounds sit exactly on fixture order dates.
	q, err := core.ParseRangeQuery("2024-01-10", "2024-03-15", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report, err := svc.ProductsSold(context.Background(), q)
	if err != nil {
		t.Fatalf("products sold: %v", err)
	}
	if report.Grouped() {
		t.Fatalf("expected raw report without interval")
	}
	if len(report.Orders) != 4 {
		t.Fatalf("expected 4 matched orders, got %d", len(report.Orders))
	}
	first := report.Orders[0]
	if first.Customer != "Kirk" || first.Date != "2024-01-10" {
		t.Fatalf("unexpected first order: %+v", first)
	}
}

func TestProductsSoldGrouped(t *testing.T) {
	svc := NewReportService(storage.NewMemoryStore())

	// 2024-01-01..2024-04-05 is 95 days; month divisor truncates to 3.
	q, err := core.ParseRangeQuery("2024-01-01", "2024-04-05", "month")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report, err := svc.ProductsSold(context.Background(), q)
	if err != nil {
		t.Fatalf("products sold: %v", err)
	}
	if !report.Grouped() {
		t.Fatalf("expected grouped report")
	}
	want := []core.ProductRate{
		{Product: "Bleach", Rate: 10.0 / 3},
		{Product: "mop", Rate: 1.0 / 3},
		{Product: "small bucket", Rate: 2.0 / 3},
		{Product: "toilet paper", Rate: 20.0 / 3},
	}
	if !reflect.DeepEqual(report.Rates, want) {
		t.Fatalf("rates mismatch\n got: %+v\nwant: %+v", report.Rates, want)
	}
}

func TestProductsSoldIsIdempotent(t *testing.T) {
	svc := NewReportService(storage.NewMemoryStore())
	q, err := core.ParseRangeQuery("2024-01-01", "2024-04-05", "month")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first, err := svc.ProductsSold(context.Background(), q)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.ProductsSold(context.Background(), q)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different reports")
	}
}
