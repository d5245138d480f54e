package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/database"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errRollback = errors.New("rollback")

type backend struct {
	name      string
	products  repository.ProductRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	returns   repository.ReturnRepository
	dashboard repository.DashboardRepository
	tx        repository.TransactionManager
}

// backends returns the in-memory store and, when TEST_DATABASE_DSN is set, postgres
func backends(t *testing.T) []backend {
	t.Helper()
	store := memory.NewStore()
	out := []backend{{
		name:      "memory",
		products:  store.Products(),
		customers: store.Customers(),
		orders:    store.Orders(),
		returns:   store.Returns(),
		dashboard: store.Dashboard(),
		tx:        store.TxManager(),
	}}

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Log("TEST_DATABASE_DSN not set, skipping postgres")
		return out
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return append(out, backend{
		name:      "postgres",
		products:  repository.NewProductRepository(db),
		customers: repository.NewCustomerRepository(db),
		orders:    repository.NewOrderRepository(db),
		returns:   repository.NewReturnRepository(db),
		dashboard: repository.NewDashboardRepository(db),
		tx:        repository.NewTransactionManager(db),
	})
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(month time.Month, dd int) time.Time {
	return time.Date(2091, month, dd, 12, 0, 0, 0, time.UTC)
}

type dashboardCounts struct {
	customers, products, low, out int64
	returns                       repository.ReturnSummary
}

func readCounts(t *testing.T, ctx context.Context, r repository.DashboardRepository) dashboardCounts {
	t.Helper()
	var c dashboardCounts
	var err error
	c.customers, err = r.CountCustomers(ctx)
	require.NoError(t, err)
	c.products, err = r.CountProducts(ctx)
	require.NoError(t, err)
	c.low, c.out, err = r.CountVariantStock(ctx, d("50"))
	require.NoError(t, err)
	c.returns, err = r.GetReturnSummary(ctx)
	require.NoError(t, err)
	return c
}

// TestDashboardQueries seeds one data set per backend inside a transaction
// that is rolled back, so a shared database is left untouched. Range queries
// use dates no other data can reach; global counts are compared as deltas.
func TestDashboardQueries(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			err := b.tx.RunInTx(context.Background(), func(ctx context.Context) error {
				before := readCounts(t, ctx, b.dashboard)

				cotton := model.Product{Name: "Cotton Poplin", Unit: model.UnitMeters, Variants: []model.ProductVariant{
					{Color: "Red", PricePerMeters: d("60"), StockInMeters: d("500")},
					{Color: "Blue", PricePerMeters: d("100"), StockInMeters: d("10")},
					{Color: "Green", PricePerMeters: d("90"), StockInMeters: d("0")},
				}}
				silk := model.Product{Name: "Silk Satin", Unit: model.UnitMeters, Variants: []model.ProductVariant{
					{Color: "White", PricePerMeters: d("400"), StockInMeters: d("5")},
				}}
				require.NoError(t, b.products.Create(ctx, &cotton))
				require.NoError(t, b.products.Create(ctx, &silk))
				require.NoError(t, b.customers.Create(ctx, &model.Customer{Name: "Ravi Traders", Type: model.CustomerTypeWholesale}))

				item := func(p model.Product, color, qty, price string) model.OrderItem {
					return model.OrderItem{ProductID: p.ID, Product: p.Name, Color: color, Quantity: d(qty), Unit: model.UnitMeters, PricePerMeters: d(price)}
				}
				orders := []model.Order{
					{Customer: "Ravi Traders", Status: model.OrderStatusPending, OrderDate: day(time.January, 15),
						Items: []model.OrderItem{item(cotton, "Red", "100", "60"), item(cotton, "Blue", "10", "100")}},
					{Customer: "Ravi Traders", Status: model.OrderStatusDelivered, OrderDate: day(time.January, 20),
						Items: []model.OrderItem{item(silk, "White", "5", "400")}},
					{Customer: "Ravi Traders", Status: model.OrderStatusConfirmed, OrderDate: day(time.February, 10),
						Items: []model.OrderItem{item(cotton, "Red", "20", "65")}},
					{Customer: "Ravi Traders", Status: model.OrderStatusCancelled, OrderDate: day(time.February, 11),
						Items: []model.OrderItem{item(silk, "White", "50", "1000")}},
				}
				want := decimal.Zero
				for i := range orders {
					require.NoError(t, b.orders.Create(ctx, &orders[i]))
					if orders[i].Status != model.OrderStatusCancelled {
						want = want.Add(model.OrderTotal(orders[i].Items))
					}
				}

				for _, r := range []model.Return{
					{RefundAmount: d("300")},
					{RefundAmount: d("600"), IsApprove: true},
					{RefundAmount: d("1000"), IsRejected: true},
				} {
					r.OrderID = orders[0].ID
					r.Customer, r.Product, r.Color = "Ravi Traders", "Cotton Poplin", "Red"
					r.QuantityInMeters, r.PricePerMeters, r.ReturnReason = d("5"), d("60"), "Damaged"
					require.NoError(t, b.returns.Create(ctx, &r))
				}

				start, end := day(time.January, 1), day(time.March, 1)

				revenue, err := b.dashboard.GetRevenue(ctx, start, end)
				require.NoError(t, err)
				assert.True(t, d("10300").Equal(revenue.Revenue), "revenue %s", revenue.Revenue)
				assert.True(t, want.Equal(revenue.Revenue), "matches the computed order totals")
				assert.EqualValues(t, 3, revenue.Orders)

				statuses, err := b.dashboard.CountOrdersByStatus(ctx, start, end)
				require.NoError(t, err)
				assert.Equal(t, map[string]int64{
					model.OrderStatusPending:   1,
					model.OrderStatusDelivered: 1,
					model.OrderStatusConfirmed: 1,
					model.OrderStatusCancelled: 1,
				}, statuses)

				monthly, err := b.dashboard.GetMonthlyRevenue(ctx, start, end)
				require.NoError(t, err)
				require.Len(t, monthly, 2)
				assert.Equal(t, "2091-01", monthly[0].Period)
				assert.True(t, d("9000").Equal(monthly[0].Revenue), "january %s", monthly[0].Revenue)
				assert.EqualValues(t, 2, monthly[0].Orders)
				assert.Equal(t, "2091-02", monthly[1].Period)
				assert.True(t, d("1300").Equal(monthly[1].Revenue), "february %s", monthly[1].Revenue)

				top, err := b.dashboard.GetTopProducts(ctx, start, end, 5)
				require.NoError(t, err)
				require.Len(t, top, 2)
				assert.Equal(t, cotton.ID.String(), top[0].ProductID)
				assert.Equal(t, "Cotton Poplin", top[0].ProductName)
				assert.True(t, d("130").Equal(top[0].TotalQuantity))
				assert.True(t, d("8300").Equal(top[0].TotalValue))
				assert.True(t, d("5").Equal(top[1].TotalQuantity), "cancelled silk is not counted")

				only, err := b.dashboard.GetTopProducts(ctx, start, end, 1)
				require.NoError(t, err)
				assert.Len(t, only, 1)

				after := readCounts(t, ctx, b.dashboard)
				assert.EqualValues(t, 1, after.customers-before.customers)
				assert.EqualValues(t, 2, after.products-before.products)
				assert.EqualValues(t, 2, after.low-before.low, "blue and white are under 50")
				assert.EqualValues(t, 1, after.out-before.out, "green is empty")
				assert.EqualValues(t, 1, after.returns.Pending-before.returns.Pending)
				assert.True(t, d("600").Equal(after.returns.RefundTotal.Sub(before.returns.RefundTotal)))
				return errRollback
			})
			assert.ErrorIs(t, err, errRollback)
		})
	}
}
