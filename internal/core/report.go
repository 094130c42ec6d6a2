package core

// CategoryQuantity is one row of the customer/category purchase report.
type CategoryQuantity struct {
	CustomerID   int64
	CustomerName string
	CategoryID   int64
	CategoryName string
	Quantity     int64
}

// OrderLine is one purchased item of a single customer, flattened
// across that customer's orders.
type OrderLine struct {
	OrderID   int64
	ProductID int64
	Product   string
	Quantity  int64
}

// AggregateCustomerCategories walks every customer's orders and sums
// item quantities per product category. An item whose product belongs
// to several categories contributes its full quantity to each of them;
// that double-counting is intentional, a product can sit in more than
// one category at once.
//
// Rows come out in customer input order, and per customer in the order
// categories were first encountered. Categories that received nothing
// produce no row.
func AggregateCustomerCategories(snap Snapshot) ([]CategoryQuantity, error) {
	var rows []CategoryQuantity
	for _, customer := range snap.Customers {
		totals := make(map[int64]int64)
		var seen []int64
		for _, order := range customer.Orders {
			for _, item := range order.Items {
				product, err := snap.Product(item.ProductID)
				if err != nil {
					return nil, err
				}
				for _, catID := range product.CategoryIDs {
					if _, ok := totals[catID]; !ok {
						seen = append(seen, catID)
					}
					totals[catID] += item.Quantity
				}
			}
		}
		for _, catID := range seen {
			if totals[catID] == 0 {
				continue
			}
			category, err := snap.Category(catID)
			if err != nil {
				return nil, err
			}
			rows = append(rows, CategoryQuantity{
				CustomerID:   customer.ID,
				CustomerName: customer.Name,
				CategoryID:   category.ID,
				CategoryName: category.Name,
				Quantity:     totals[catID],
			})
		}
	}
	return rows, nil
}

// CustomerOrderLines flattens one customer's orders into per-item rows.
// Unknown customer ids surface ErrNotFound.
func CustomerOrderLines(snap Snapshot, customerID int64) ([]OrderLine, error) {
	customer, err := snap.Customer(customerID)
	if err != nil {
		return nil, err
	}
	var lines []OrderLine
	for _, order := range customer.Orders {
		for _, item := range order.Items {
			product, err := snap.Product(item.ProductID)
			if err != nil {
				return nil, err
			}
			lines = append(lines, OrderLine{
				OrderID:   order.ID,
				ProductID: product.ID,
				Product:   product.Name,
				Quantity:  item.Quantity,
			})
		}
	}
	return lines, nil
}
