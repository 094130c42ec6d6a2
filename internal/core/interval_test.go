package core

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestParseRangeQuery(t *testing.T) {
	q, err := ParseRangeQuery("2000-01-01", "2012-06-15", "month")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Start.String() != "2000-01-01" || q.End.String() != "2012-06-15" {
		t.Fatalf("dates mismatch: %s..%s", q.Start, q.End)
	}
	if q.Interval != IntervalMonth {
		t.Fatalf("interval mismatch: %q", q.Interval)
	}
}

func TestParseRangeQueryErrors(t *testing.T) {
	cases := []struct {
		name                 string
		start, end, interval string
		want                 error
	}{
		{"bad start date", "13/1/200", "2012-06-15", "month", ErrInvalidDateFormat},
		{"bad end date", "2000-01-01", "6/15/212", "month", ErrInvalidDateFormat},
		{"legacy date convention", "11/20/2000", "06/15/2012", "month", ErrInvalidDateFormat},
		{"bad interval", "2000-01-01", "2012-06-15", "monthhhhhhhh", ErrInvalidInterval},
		// Date format is checked before the interval value.
		{"bad date and interval", "13/1/200", "6/15/212", "monthhhhhhhh", ErrInvalidDateFormat},
		{"reversed range", "2012-06-15", "2000-01-01", "", ErrInvalidDateRange},
		{"reversed range with interval", "2012-06-15", "2000-01-01", "day", ErrInvalidDateRange},
		{"zero-day range by day", "2020-05-01", "2020-05-01", "day", ErrRangeTooShort},
		{"short range by month", "2020-05-01", "2020-05-20", "month", ErrRangeTooShort},
		{"short range by year", "2020-01-01", "2020-12-31", "year", ErrRangeTooShort},
	}
	for _, tc := range cases {
		if _, err := ParseRangeQuery(tc.start, tc.end, tc.interval); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

// A zero-day range is fine when no normalization is requested.
func TestParseRangeQuerySameDayWithoutInterval(t *testing.T) {
	q, err := ParseRangeQuery("2020-05-01", "2020-05-01", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Interval != "" || q.Days() != 0 {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestDivisor(t *testing.T) {
	cases := []struct {
		start, end Date
		interval   Interval
		days       int
		divisor    int
	}{
		{NewDate(2000, 1, 1), NewDate(2012, 6, 15), IntervalDay, 4549, 4549},
		{NewDate(2000, 1, 1), NewDate(2012, 6, 15), IntervalMonth, 4549, 151},
		{NewDate(2000, 1, 1), NewDate(2012, 6, 15), IntervalYear, 4549, 12},
		{NewDate(2000, 1, 1), NewDate(2018, 6, 15), IntervalYear, 6740, 18},
		{NewDate(2020, 5, 1), NewDate(2020, 5, 11), IntervalDay, 10, 10},
	}
	for i, tc := range cases {
		q := RangeQuery{Start: tc.start, End: tc.end, Interval: tc.interval}
		if got := q.Days(); got != tc.days {
			t.Fatalf("case %d: days=%d, want %d", i, got, tc.days)
		}
		if got := q.Divisor(); got != tc.divisor {
			t.Fatalf("case %d: divisor=%d, want %d", i, got, tc.divisor)
		}
	}
}

func rangeOrders() []Order {
	return []Order{
		{ID: 10, CustomerID: 1, Status: "Waiting", Date: NewDate(2000, 11, 20), Items: []OrderItem{
			{ID: 20, OrderID: 10, ProductID: 1, Quantity: 5},
			{ID: 21, OrderID: 10, ProductID: 4, Quantity: 10},
		}},
		{ID: 11, CustomerID: 2, Status: "In Transit", Date: NewDate(2010, 3, 5), Items: []OrderItem{
			{ID: 22, OrderID: 11, ProductID: 2, Quantity: 25},
		}},
	}
}

func TestBuildRangeReportMonth(t *testing.T) {
	q, err := ParseRangeQuery("2000-01-01", "2012-06-15", "month")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report, err := BuildRangeReport(fixtureSnapshot(), rangeOrders(), q)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !report.Grouped() {
		t.Fatalf("expected grouped report")
	}
	// 4549 elapsed days over 30-day months truncates to 151 units.
	want := []ProductRate{
		{Product: "Bleach", Rate: 5.0 / 151},
		{Product: "hand soap", Rate: 10.0 / 151},
		{Product: "toilet paper", Rate: 25.0 / 151},
	}
	if len(report.Rates) != len(want) {
		t.Fatalf("rates: got %d, want %d", len(report.Rates), len(want))
	}
	for i, w := range want {
		got := report.Rates[i]
		if got.Product != w.Product || math.Abs(got.Rate-w.Rate) > 1e-12 {
			t.Fatalf("rate %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestBuildRangeReportDay(t *testing.T) {
	q, err := ParseRangeQuery("2000-11-10", "2000-11-20", "day")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	orders := rangeOrders()[:1]
	report, err := BuildRangeReport(fixtureSnapshot(), orders, q)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := report.Rates[0]; got.Product != "Bleach" || got.Rate != 0.5 {
		t.Fatalf("expected Bleach at 0.5/day, got %+v", got)
	}
}

func TestBuildRangeReportSumsAcrossOrders(t *testing.T) {
	orders := []Order{
		{ID: 1, CustomerID: 1, Date: NewDate(2024, 1, 2), Items: []OrderItem{{OrderID: 1, ProductID: 1, Quantity: 5}}},
		{ID: 2, CustomerID: 2, Date: NewDate(2024, 1, 5), Items: []OrderItem{{OrderID: 2, ProductID: 1, Quantity: 7}}},
	}
	q, err := ParseRangeQuery("2024-01-01", "2024-01-13", "day")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report, err := BuildRangeReport(fixtureSnapshot(), orders, q)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := report.Rates[0]; got.Product != "Bleach" || got.Rate != 1.0 {
		t.Fatalf("expected 12 units over 12 days, got %+v", got)
	}
}

func TestBuildRangeReportRaw(t *testing.T) {
	q, err := ParseRangeQuery("2000-01-01", "2012-06-15", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report, err := BuildRangeReport(fixtureSnapshot(), rangeOrders(), q)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if report.Grouped() {
		t.Fatalf("expected raw report")
	}
	want := []OrderSummary{
		{CustomerID: 1, Customer: "Kirk", Date: "2000-11-20", Items: []string{"Bleach x5", "hand soap x10"}},
		{CustomerID: 2, Customer: "Spock", Date: "2010-03-05", Items: []string{"toilet paper x25"}},
	}
	if !reflect.DeepEqual(report.Orders, want) {
		t.Fatalf("orders mismatch\n got: %+v\nwant: %+v", report.Orders, want)
	}
}

func TestBuildRangeReportUnresolvableProduct(t *testing.T) {
	snap := fixtureSnapshot()
	delete(snap.Products, 1)
	q, err := ParseRangeQuery("2000-01-01", "2012-06-15", "month")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := BuildRangeReport(snap, rangeOrders(), q); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
