// Package seed loads YAML fixtures into an empty database.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"invdash/internal/models"
	"invdash/internal/store"
)

//go:embed demo.yaml
var demo []byte

// ErrNotEmpty is returned when the database already holds customers or products.
var ErrNotEmpty = errors.New("database is not empty")

// Fixture is the YAML document layout. Timestamps are either absolute
// (created_on / order_date) or relative to the seed time (age, e.g. "36h").
type Fixture struct {
	Customers []CustomerFixture `yaml:"customers"`
	Products  []ProductFixture  `yaml:"products"`
	Orders    []OrderFixture    `yaml:"orders"`
}

type CustomerFixture struct {
	Key            string     `yaml:"key"`
	FirstName      string     `yaml:"first_name"`
	LastName       string     `yaml:"last_name"`
	Email          string     `yaml:"email"`
	City           string     `yaml:"city"`
	ChildrenAtHome int        `yaml:"children_at_home"`
	CreatedOn      *time.Time `yaml:"created_on"`
	Age            string     `yaml:"age"`
}

type ProductFixture struct {
	Name       string     `yaml:"name"`
	Category   string     `yaml:"category"`
	ListPrice  string     `yaml:"list_price"`
	StockUnits int        `yaml:"stock_units"`
	CreatedOn  *time.Time `yaml:"created_on"`
	Age        string     `yaml:"age"`
}

type OrderFixture struct {
	Customer  string     `yaml:"customer"`
	ShipCity  string     `yaml:"ship_city"`
	Status    string     `yaml:"status"`
	Total     string     `yaml:"total"`
	OrderDate *time.Time `yaml:"order_date"`
	Age       string     `yaml:"age"`
}

// Demo returns the embedded demo fixture.
func Demo() (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(demo, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse demo fixture: %w", err)
	}
	return f, nil
}

// Decode reads a fixture from r. Unknown fields are rejected.
func Decode(r io.Reader) (Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// Counts reports how many rows Load inserted.
type Counts struct {
	Customers, Products, Orders int
}

// Load inserts f into db in a single transaction. now anchors relative ages.
func Load(ctx context.Context, db *sql.DB, f Fixture, now time.Time) (Counts, error) {
	var counts Counts
	err := store.WithTx(ctx, db, func(tx *sql.Tx) error {
		var existing int
		if err := tx.QueryRowContext(ctx, `SELECT (SELECT COUNT(*) FROM customers) + (SELECT COUNT(*) FROM products)`).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return ErrNotEmpty
		}

		keys := make(map[string]int64, len(f.Customers))
		for i, c := range f.Customers {
			created, err := resolve(c.CreatedOn, c.Age, now)
			if err != nil {
				return fmt.Errorf("customer %d: %w", i, err)
			}
			id, err := store.InsertCustomer(ctx, tx, models.Customer{
				FirstName:      c.FirstName,
				LastName:       c.LastName,
				Email:          c.Email,
				City:           c.City,
				ChildrenAtHome: c.ChildrenAtHome,
				CreatedOn:      created,
			})
			if err != nil {
				return fmt.Errorf("customer %d: %w", i, err)
			}
			if c.Key != "" {
				if _, dup := keys[c.Key]; dup {
					return fmt.Errorf("customer %d: duplicate key %q", i, c.Key)
				}
				keys[c.Key] = id
			}
			counts.Customers++
		}

		for i, p := range f.Products {
			created, err := resolve(p.CreatedOn, p.Age, now)
			if err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			price, err := ParseCents(p.ListPrice)
			if err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			if _, err := store.InsertProduct(ctx, tx, models.Product{
				Name:           p.Name,
				Category:       p.Category,
				ListPriceCents: price,
				StockUnits:     p.StockUnits,
				CreatedOn:      created,
			}); err != nil {
				return fmt.Errorf("product %d: %w", i, err)
			}
			counts.Products++
		}

		for i, o := range f.Orders {
			customerID, ok := keys[o.Customer]
			if !ok {
				return fmt.Errorf("order %d: unknown customer %q", i, o.Customer)
			}
			ordered, err := resolve(o.OrderDate, o.Age, now)
			if err != nil {
				return fmt.Errorf("order %d: %w", i, err)
			}
			total, err := ParseCents(o.Total)
			if err != nil {
				return fmt.Errorf("order %d: %w", i, err)
			}
			if _, err := store.InsertOrder(ctx, tx, models.Order{
				CustomerID: customerID,
				OrderDate:  ordered,
				ShipCity:   o.ShipCity,
				Status:     o.Status,
				TotalCents: total,
			}); err != nil {
				return fmt.Errorf("order %d: %w", i, err)
			}
			counts.Orders++
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func resolve(at *time.Time, age string, now time.Time) (time.Time, error) {
	if at != nil {
		return at.UTC(), nil
	}
	if age == "" {
		return now.UTC(), nil
	}
	d, err := time.ParseDuration(age)
	if err != nil {
		return time.Time{}, fmt.Errorf("age %q: %w", age, err)
	}
	return now.Add(-d).UTC(), nil
}
