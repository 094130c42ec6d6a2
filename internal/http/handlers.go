package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"bottega/internal/core"
	applog "bottega/internal/log"
)

type customerJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type categoryRowJSON struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	Category   string `json:"category"`
	Quantity   int64  `json:"quantity"`
}

type orderLineJSON struct {
	OrderID   int64  `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

type orderSummaryJSON struct {
	CustomerID int64    `json:"customer_id"`
	Customer   string   `json:"customer"`
	Date       string   `json:"date"`
	Items      []string `json:"items"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCustomers lists every customer with its id, so callers can
// look someone up before hitting the per-customer routes.
func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.reports.ListCustomers(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]customerJSON, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerJSON{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCustomerCategories reports the quantity each customer
// purchased per product category.
func (s *Server) handleCustomerCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.CustomerCategoryReport(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]categoryRowJSON, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryRowJSON{
			ID:         row.CustomerID,
			Name:       row.CustomerName,
			CategoryID: row.CategoryID,
			Category:   row.CategoryName,
			Quantity:   row.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCustomerOrders lists one customer's orders and their items.
func (s *Server) handleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	lines, err := s.reports.CustomerOrderLines(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make([]orderLineJSON, 0, len(lines))
	for _, line := range lines {
		out = append(out, orderLineJSON{
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Name:      line.Product,
			Quantity:  line.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleProducts maps product ids to names.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.reports.ListProducts(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out := make(map[int64]string, len(products))
	for _, p := range products {
		out[p.ID] = p.Name
	}
	writeJSON(w, http.StatusOK, out)
}

// handleProductsSold answers the date-range query. With an interval
// the body is a {product: rate} object; without one it is the list of
// raw matched orders.
func (s *Server) handleProductsSold(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q, err := core.ParseRangeQuery(
		params.Get("start_date"),
		params.Get("end_date"),
		params.Get("interval"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	report, err := s.reports.ProductsSold(r.Context(), q)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if report.Grouped() {
		rates := make(map[string]float64, len(report.Rates))
		for _, pr := range report.Rates {
			rates[pr.Product] = pr.Rate
		}
		writeJSON(w, http.StatusOK, rates)
		return
	}

	out := make([]orderSummaryJSON, 0, len(report.Orders))
	for _, o := range report.Orders {
		out = append(out, orderSummaryJSON{
			CustomerID: o.CustomerID,
			Customer:   o.Customer,
			Date:       o.Date,
			Items:      o.Items,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
