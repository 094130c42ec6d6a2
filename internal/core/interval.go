package core

import (
	"errors"
	"fmt"
	"sort"
)

// Interval normalizes a summed quantity by elapsed time.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD (2000-11-20 for Nov 20, 2000)")
	ErrInvalidInterval   = errors.New("invalid interval (use day, month, or year)")
	ErrInvalidDateRange  = errors.New("ending date cannot be before starting date")
	ErrRangeTooShort     = errors.New("date range is too short to normalize by the requested interval")
)

// RangeQuery is a validated date-range query. An empty Interval means
// no normalization: the caller gets the raw matched orders back.
type RangeQuery struct {
	Start    Date
	End      Date
	Interval Interval
}

// ParseRangeQuery validates raw query inputs. Checks run in a fixed
// order and stop at the first failure: date format, interval value,
// range direction, then divisor viability.
func ParseRangeQuery(startStr, endStr, intervalStr string) (RangeQuery, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return RangeQuery{}, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return RangeQuery{}, err
	}
	q := RangeQuery{Start: start, End: end}
	if intervalStr != "" {
		switch Interval(intervalStr) {
		case IntervalDay, IntervalMonth, IntervalYear:
			q.Interval = Interval(intervalStr)
		default:
			return RangeQuery{}, ErrInvalidInterval
		}
	}
	if q.Days() < 0 {
		return RangeQuery{}, ErrInvalidDateRange
	}
	// A range that truncates to zero interval units would divide by
	// zero during normalization; refuse it up front.
	if q.Interval != "" && q.Divisor() == 0 {
		return RangeQuery{}, ErrRangeTooShort
	}
	return q, nil
}

// Days returns the signed day delta between start and end.
func (q RangeQuery) Days() int {
	return q.Start.DaysUntil(q.End)
}

// Divisor returns the number of elapsed interval units in the range.
// Month uses a fixed 30-day approximation and year 365.25 days, both
// truncated, matching the historical behavior of this report.
func (q RangeQuery) Divisor() int {
	days := q.Days()
	switch q.Interval {
	case IntervalDay:
		return days
	case IntervalMonth:
		return days / 30
	case IntervalYear:
		return int(float64(days) / 365.25)
	}
	return 0
}

// ProductRate is a product's summed quantity divided by elapsed
// interval units.
type ProductRate struct {
	Product string
	Rate    float64
}

// OrderSummary is one raw matched order, rendered for the no-interval
// response shape.
type OrderSummary struct {
	CustomerID int64
	Customer   string
	Date       string
	Items      []string
}

// RangeReport is the two-variant result of a range query: Rates when
// an interval was requested, Orders otherwise. Grouped tells the two
// apart.
type RangeReport struct {
	Interval Interval
	Rates    []ProductRate
	Orders   []OrderSummary
}

func (r RangeReport) Grouped() bool {
	return r.Interval != ""
}

// BuildRangeReport aggregates the matched orders per the query. The
// orders are expected to already be filtered to [start, end]; the
// snapshot resolves product and customer references.
func BuildRangeReport(snap Snapshot, orders []Order, q RangeQuery) (RangeReport, error) {
	if q.Interval == "" {
		return rawOrderReport(snap, orders)
	}

	totals := make(map[string]int64)
	for _, order := range orders {
		for _, item := range order.Items {
			product, err := snap.Product(item.ProductID)
			if err != nil {
				return RangeReport{}, err
			}
			totals[product.Name] += item.Quantity
		}
	}

	divisor := q.Divisor()
	rates := make([]ProductRate, 0, len(totals))
	for name, qty := range totals {
		rates = append(rates, ProductRate{Product: name, Rate: float64(qty) / float64(divisor)})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Product < rates[j].Product })
	return RangeReport{Interval: q.Interval, Rates: rates}, nil
}

func rawOrderReport(snap Snapshot, orders []Order) (RangeReport, error) {
	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		customer, err := snap.Customer(order.CustomerID)
		if err != nil {
			return RangeReport{}, err
		}
		items := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			product, err := snap.Product(item.ProductID)
			if err != nil {
				return RangeReport{}, err
			}
			items = append(items, fmt.Sprintf("%s x%d", product.Name, item.Quantity))
		}
		summaries = append(summaries, OrderSummary{
			CustomerID: customer.ID,
			Customer:   customer.Name,
			Date:       order.Date.String(),
			Items:      items,
		})
	}
	return RangeReport{Orders: summaries}, nil
}
