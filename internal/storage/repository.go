package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"bottega/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the order-management schema and serves the
// read snapshots the reporting core folds over.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListCustomers implements store.SnapshotReader. Customers come back
// with their orders and order items attached, in id order.
func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []core.Customer
	index := make(map[int64]int)
	for rows.Next() {
		var c core.Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		index[c.ID] = len(customers)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	orders, err := r.listOrders(ctx, `SELECT id, status, date, customer_id FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if i, ok := index[o.CustomerID]; ok {
			customers[i].Orders = append(customers[i].Orders, o)
		}
	}
	return customers, nil
}

// ListOrdersBetween implements store.OrderReader. Both bounds are
// inclusive; textual YYYY-MM-DD dates compare in calendar order.
func (r *SQLiteRepository) ListOrdersBetween(ctx context.Context, start, end core.Date) ([]core.Order, error) {
	return r.listOrders(ctx,
		`SELECT id, status, date, customer_id FROM orders WHERE date BETWEEN ? AND ? ORDER BY id`,
		start.String(), end.String())
}

func (r *SQLiteRepository) listOrders(ctx context.Context, query string, args ...any) ([]core.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []core.Order
	index := make(map[int64]int)
	for rows.Next() {
		var o core.Order
		var date string
		if err := rows.Scan(&o.ID, &o.Status, &date, &o.CustomerID); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if o.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("order %d date %q: %w", o.ID, date, err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	// Items for orders outside the matched set are skipped below.
	itemRows, err := r.db.QueryContext(ctx,
		`SELECT id, quantity, product_id, order_id FROM order_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it core.OrderItem
		if err := itemRows.Scan(&it.ID, &it.Quantity, &it.ProductID, &it.OrderID); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return orders, nil
}

// ListProducts implements store.SnapshotReader. Category ids keep the
// association-table insertion order so report rows come out in
// first-encounter order.
func (r *SQLiteRepository) ListProducts(ctx context.Context) ([]core.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []core.Product
	index := make(map[int64]int)
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	linkRows, err := r.db.QueryContext(ctx,
		`SELECT product_id, category_id FROM products_categories ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var productID, categoryID int64
		if err := linkRows.Scan(&productID, &categoryID); err != nil {
			return nil, fmt.Errorf("scan product category: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].CategoryIDs = append(products[i].CategoryIDs, categoryID)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product categories: %w", err)
	}
	return products, nil
}

// ListCategories implements store.SnapshotReader.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// InsertCustomer implements store.Writer.
func (r *SQLiteRepository) InsertCustomer(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO customers (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return res.LastInsertId()
}

// InsertCategory implements store.Writer.
func (r *SQLiteRepository) InsertCategory(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	return res.LastInsertId()
}

// InsertProduct implements store.Writer.
func (r *SQLiteRepository) InsertProduct(ctx context.Context, name string, categoryIDs []int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO products (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product id: %w", err)
	}
	for _, catID := range categoryIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO products_categories (product_id, category_id) VALUES (?, ?)`, id, catID); err != nil {
			return 0, fmt.Errorf("link product %d to category %d: %w", id, catID, err)
		}
	}
	return id, nil
}

// InsertOrder implements store.Writer.
func (r *SQLiteRepository) InsertOrder(ctx context.Context, customerID int64, status string, date core.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (status, date, customer_id) VALUES (?, ?, ?)`,
		status, date.String(), customerID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return res.LastInsertId()
}

// InsertOrderItem implements store.Writer.
func (r *SQLiteRepository) InsertOrderItem(ctx context.Context, orderID, productID, quantity int64) (int64, error) {
	item := core.OrderItem{OrderID: orderID, ProductID: productID, Quantity: quantity}
	if err := item.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO order_items (quantity, product_id, order_id) VALUES (?, ?, ?)`,
		quantity, productID, orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order item: %w", err)
	}
	return res.LastInsertId()
}
