package store

import (
	"context"
	"database/sql"

	"invdash/internal/data"
	"invdash/internal/models"
)

var productList = listQuery{
	selectFrom: `SELECT id, name, category, list_price, stock_units, created_on FROM products`,
	columns: map[data.SortKey]string{
		data.ProductStockUnits: "stock_units",
		data.ProductListPrice:  "list_price",
		data.ProductName:       "name",
	},
	searchCols: []string{"name", "category"},
	idColumn:   "id",
}

// ProductRepo handles products.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(ctx context.Context, req data.Request) ([]models.Product, error) {
	query, args, err := productList.build(req)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		var (
			p       models.Product
			created int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.ListPriceCents, &p.StockUnits, &created); err != nil {
			return nil, err
		}
		p.CreatedOn = fromMillis(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *ProductRepo) Insert(ctx context.Context, p models.Product) (int64, error) {
	return InsertProduct(ctx, r.db, p)
}

func InsertProduct(ctx context.Context, db Execer, p models.Product) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO products (name, category, list_price, stock_units, created_on) VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Category, p.ListPriceCents, p.StockUnits, toMillis(p.CreatedOn),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
