package store

import (
	"context"
	"database/sql"
	"errors"

	"invdash/internal/data"
	"invdash/internal/models"
)

var customerList = listQuery{
	selectFrom: `SELECT id, first_name, last_name, email, city, children_at_home, created_on, last_modified_on FROM customers`,
	columns: map[data.SortKey]string{
		data.CustomerCreatedOn:      "created_on",
		data.CustomerChildrenAtHome: "children_at_home",
		data.CustomerLastName:       "last_name",
	},
	searchCols: []string{"first_name", "last_name", "email"},
	idColumn:   "id",
}

// CustomerRepo handles customers.
type CustomerRepo struct {
	db *sql.DB
}

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// List returns one page of customers in the requested order.
func (r *CustomerRepo) List(ctx context.Context, req data.Request) ([]models.Customer, error) {
	query, args, err := customerList.build(req)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		var (
			c                 models.Customer
			created, modified int64
		)
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.City, &c.ChildrenAtHome, &created, &modified); err != nil {
			return nil, err
		}
		c.CreatedOn = fromMillis(created)
		c.LastModifiedOn = fromMillis(modified)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns a single customer by id.
func (r *CustomerRepo) Get(ctx context.Context, id int64) (models.Customer, error) {
	var (
		c                 models.Customer
		created, modified int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, city, children_at_home, created_on, last_modified_on FROM customers WHERE id = ?`, id,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.City, &c.ChildrenAtHome, &created, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrNotFound
	}
	if err != nil {
		return models.Customer{}, err
	}
	c.CreatedOn = fromMillis(created)
	c.LastModifiedOn = fromMillis(modified)
	return c, nil
}

// Count returns the number of customers.
func (r *CustomerRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

// Insert stores c and returns its id. A zero LastModifiedOn defaults to CreatedOn.
func (r *CustomerRepo) Insert(ctx context.Context, c models.Customer) (int64, error) {
	return InsertCustomer(ctx, r.db, c)
}

func InsertCustomer(ctx context.Context, db Execer, c models.Customer) (int64, error) {
	modified := c.LastModifiedOn
	if modified.IsZero() {
		modified = c.CreatedOn
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO customers (first_name, last_name, email, city, children_at_home, created_on, last_modified_on) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.City, c.ChildrenAtHome, toMillis(c.CreatedOn), toMillis(modified),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
