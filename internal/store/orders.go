package store

import (
	"context"
	"database/sql"

	"invdash/internal/data"
	"invdash/internal/models"
)

var orderList = listQuery{
	selectFrom: `SELECT o.id, o.customer_id, TRIM(c.first_name || ' ' || c.last_name), o.order_date, o.ship_city, o.status, o.total
		FROM orders o JOIN customers c ON c.id = o.customer_id`,
	columns: map[data.SortKey]string{
		data.OrderDate:  "o.order_date",
		data.OrderTotal: "o.total",
	},
	searchCols: []string{"c.first_name", "c.last_name", "o.ship_city", "o.status"},
	idColumn:   "o.id",
}

// OrderRepo handles orders.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// List returns one page of orders joined with their customer's name.
func (r *OrderRepo) List(ctx context.Context, req data.Request) ([]models.Order, error) {
	query, args, err := orderList.build(req)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		var (
			o       models.Order
			ordered int64
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &ordered, &o.ShipCity, &o.Status, &o.TotalCents); err != nil {
			return nil, err
		}
		o.OrderDate = fromMillis(ordered)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Count returns the number of orders.
func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

// Insert stores o and returns its id. The customer must exist.
func (r *OrderRepo) Insert(ctx context.Context, o models.Order) (int64, error) {
	return InsertOrder(ctx, r.db, o)
}

func InsertOrder(ctx context.Context, db Execer, o models.Order) (int64, error) {
	status := o.Status
	if status == "" {
		status = "pending"
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO orders (customer_id, order_date, ship_city, status, total) VALUES (?, ?, ?, ?, ?)`,
		o.CustomerID, toMillis(o.OrderDate), o.ShipCity, status, o.TotalCents,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
