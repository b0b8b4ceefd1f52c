package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/internal/data"
	"invdash/internal/models"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCustomers(t *testing.T, repo *CustomerRepo, n int) []int64 {
	t.Helper()
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		id, err := repo.Insert(context.Background(), models.Customer{
			FirstName:      "Cust",
			LastName:       string(rune('A' + i)),
			Email:          "c@example.com",
			ChildrenAtHome: (i * 3) % 5,
			CreatedOn:      base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

func TestOpen_MigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	n, err := NewCustomerRepo(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCustomerRepo_ListCreatedOnDesc(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepo(db)
	ids := seedCustomers(t, repo, 6)

	got, err := repo.List(context.Background(), data.Request{Take: 5, Sort: data.Desc(data.CustomerCreatedOn)})
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, ids[5], got[0].ID, "most recent first")
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].CreatedOn.After(got[i].CreatedOn), "row %d out of order", i)
	}
	assert.Equal(t, base.Add(5*time.Hour), got[0].CreatedOn)
	assert.Equal(t, got[0].CreatedOn, got[0].LastModifiedOn, "modified defaults to created")
}

func TestCustomerRepo_SkipAndQuery(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepo(db)
	ids := seedCustomers(t, repo, 4)

	got, err := repo.List(context.Background(), data.Request{Skip: 2, Take: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID, "default order is id ascending")

	got, err = repo.List(context.Background(), data.Request{Take: 10, Query: "B"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].LastName)
}

func TestCustomerRepo_QueryWildcardsAreLiteral(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepo(db)
	for _, last := range []string{"Off 100%", "Off 1000", "Mac_Kay", "MacxKay", `Back\slash`} {
		_, err := repo.Insert(context.Background(), models.Customer{FirstName: "Q", LastName: last, CreatedOn: base})
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"%", []string{"Off 100%"}},
		{"_", []string{"Mac_Kay"}},
		{"0%", []string{"Off 100%"}},
		{`\`, []string{`Back\slash`}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := repo.List(context.Background(), data.Request{Take: 10, Query: tt.query})
			require.NoError(t, err)
			var names []string
			for _, c := range got {
				names = append(names, c.LastName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCustomerRepo_UnknownSortKey(t *testing.T) {
	db := openTestDB(t)
	_, err := NewCustomerRepo(db).List(context.Background(), data.Request{Take: 5, Sort: data.Desc(data.OrderDate)})
	assert.ErrorIs(t, err, data.ErrUnknownSortKey)
}

func TestCustomerRepo_InvalidPaging(t *testing.T) {
	db := openTestDB(t)
	_, err := NewCustomerRepo(db).List(context.Background(), data.Request{Take: 0})
	assert.ErrorIs(t, err, data.ErrInvalidPaging)
}

func TestCustomerRepo_Get(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepo(db)
	ids := seedCustomers(t, repo, 1)

	c, err := repo.Get(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Cust A", c.FullName())

	_, err = repo.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderRepo_ListJoinsCustomerName(t *testing.T) {
	db := openTestDB(t)
	ids := seedCustomers(t, NewCustomerRepo(db), 2)
	orders := NewOrderRepo(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := orders.Insert(ctx, models.Order{
			CustomerID: ids[i%2],
			OrderDate:  base.AddDate(0, 0, i),
			TotalCents: int64(1000 * (i + 1)),
		})
		require.NoError(t, err)
	}

	got, err := orders.List(ctx, data.Request{Take: 5, Sort: data.Desc(data.OrderDate)})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, base.AddDate(0, 0, 2), got[0].OrderDate)
	assert.Equal(t, "Cust A", got[0].CustomerName)
	assert.Equal(t, "pending", got[0].Status)

	n, err := orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOrderRepo_InsertRequiresCustomer(t *testing.T) {
	db := openTestDB(t)
	_, err := NewOrderRepo(db).Insert(context.Background(), models.Order{CustomerID: 42, OrderDate: base})
	assert.Error(t, err, "foreign key should reject unknown customer")
}

func TestProductRepo_ListStockDesc(t *testing.T) {
	db := openTestDB(t)
	products := NewProductRepo(db)
	ctx := context.Background()
	for _, stock := range []int{7, 30, 1, 30, 12} {
		_, err := products.Insert(ctx, models.Product{Name: "p", StockUnits: stock, CreatedOn: base})
		require.NoError(t, err)
	}

	got, err := products.List(ctx, data.Request{Take: 3, Sort: data.Desc(data.ProductStockUnits)})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{30, 30, 12}, []int{got[0].StockUnits, got[1].StockUnits, got[2].StockUnits})
	assert.Greater(t, got[0].ID, got[1].ID, "ties broken by id in sort direction")
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := InsertProduct(ctx, tx, models.Product{Name: "gone", CreatedOn: base}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	n, err := NewProductRepo(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
