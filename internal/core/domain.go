package core

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the textual date form used on the wire and in storage.
const DateFormat = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	Customer struct {
		ID     int64
		Name   string
		Orders []Order
	}

	Order struct {
		ID         int64
		CustomerID int64
		Status     string
		Date       Date
		Items      []OrderItem
	}

	OrderItem struct {
		ID        int64
		OrderID   int64
		ProductID int64
		Quantity  int64
	}

	Product struct {
		ID          int64
		Name        string
		CategoryIDs []int64
	}

	Category struct {
		ID   int64
		Name string
	}
)

var ErrNotFound = errors.New("not found")

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the YYYY-MM-DD textual form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateFormat)
}

// DaysUntil returns the signed number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time) / (24 * time.Hour))
}

func (i OrderItem) Validate() error {
	if i.Quantity < 0 {
		return fmt.Errorf("order item %d: negative quantity %d", i.ID, i.Quantity)
	}
	return nil
}

// Snapshot is a consistent, read-only view of the domain graph for one
// aggregation call. Entities reference each other by id; the snapshot
// resolves the references.
type Snapshot struct {
	Customers  []Customer
	Products   map[int64]Product
	Categories map[int64]Category
}

func (s Snapshot) Product(id int64) (Product, error) {
	p, ok := s.Products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s Snapshot) Category(id int64) (Category, error) {
	c, ok := s.Categories[id]
	if !ok {
		return Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s Snapshot) Customer(id int64) (Customer, error) {
	for _, c := range s.Customers {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, fmt.Errorf("customer %d: %w", id, ErrNotFound)
}
