// internal/domain/sale/service_test.go
package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/customer"
	"github.com/your-org/fertilizer-backend/internal/domain/hr"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type saleFixture struct {
	db       *gorm.DB
	service  *Service
	branch   branch.Branch
	customer customer.Customer
	product  product.Product
	product2 product.Product
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&product.Category{},
		&product.Product{},
		&branch.Branch{},
		&customer.Customer{},
		&hr.Department{},
		&hr.Position{},
		&hr.Employee{},
		&Sale{},
		&SaleItem{},
		&Payment{},
	))

	category := product.Category{Name: "Urea", Slug: "urea", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	f := &saleFixture{db: db}

	f.branch = branch.Branch{Name: "Main Branch", Code: "MAIN", IsActive: true, IsDefault: true}
	require.NoError(t, db.Create(&f.branch).Error)

	f.customer = customer.Customer{Name: "Green Valley Farm", IsActive: true}
	require.NoError(t, db.Create(&f.customer).Error)

	f.product = product.Product{
		SKU: "UREA-46", Name: "Urea 46", Slug: "urea-46",
		Unit: "bag", Price: 38000, CategoryID: category.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&f.product).Error)

	f.product2 = product.Product{
		SKU: "NPK-15", Name: "NPK 15-15-15", Slug: "npk-15-15-15",
		Unit: "bag", Price: 45000, CategoryID: category.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&f.product2).Error)

	cfg := &config.Config{}
	cfg.Stock.DefaultBranchID = f.branch.ID

	f.service = NewService(db, cfg)
	return f
}

func TestCreateSaleComputesTotals(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.service.CreateSale(&CreateSaleRequest{
		CustomerID: &f.customer.ID,
		BranchID:   f.branch.ID,
		Discount:   1000,
		Items: []SaleItemRequest{
			{ProductID: f.product.ID, Quantity: 2},                    // 2 x 38000
			{ProductID: f.product2.ID, Quantity: 1, UnitPrice: 40000}, // override
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.SaleNumber)
	assert.Equal(t, SaleStatusPending, created.Status)
	assert.EqualValues(t, 116000, created.Subtotal)
	assert.EqualValues(t, 115000, created.Total)
	assert.Len(t, created.Items, 2)
	assert.EqualValues(t, 76000, created.Items[0].LineTotal)
	assert.EqualValues(t, 115000, created.Outstanding())
}

func TestCreateSaleRejectsExcessiveDiscount(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.service.CreateSale(&CreateSaleRequest{
		BranchID: f.branch.ID,
		Discount: 1000000,
		Items: []SaleItemRequest{
			{ProductID: f.product.ID, Quantity: 1},
		},
	})
	assert.Error(t, err)

	var count int64
	require.NoError(t, f.db.Model(&Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateSaleUnknownProductRollsBack(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.service.CreateSale(&CreateSaleRequest{
		BranchID: f.branch.ID,
		Items: []SaleItemRequest{
			{ProductID: f.product.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	})
	assert.Error(t, err)

	var count int64
	require.NoError(t, f.db.Model(&Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateSaleStatusTransitions(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.service.CreateSale(&CreateSaleRequest{
		BranchID: f.branch.ID,
		Items:    []SaleItemRequest{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	completed, err := f.service.UpdateSaleStatus(created.ID, SaleStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, SaleStatusCompleted, completed.Status)

	// Completed sales are final
	_, err = f.service.UpdateSaleStatus(created.ID, SaleStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Only the two terminal statuses are valid targets
	other, err := f.service.CreateSale(&CreateSaleRequest{
		BranchID: f.branch.ID,
		Items:    []SaleItemRequest{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.service.UpdateSaleStatus(other.ID, SaleStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAddPaymentAccumulates(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.service.CreateSale(&CreateSaleRequest{
		CustomerID: &f.customer.ID,
		BranchID:   f.branch.ID,
		Items:      []SaleItemRequest{{ProductID: f.product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 76000, created.Total)

	_, err = f.service.AddPayment(created.ID, &PaymentRequest{Amount: 50000, Method: PaymentMethodCash})
	require.NoError(t, err)

	_, err = f.service.AddPayment(created.ID, &PaymentRequest{Amount: 26000, Method: PaymentMethodTransfer})
	require.NoError(t, err)

	reloaded, err := f.service.GetSale(created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 76000, reloaded.Paid)
	assert.True(t, reloaded.IsSettled())
	assert.Len(t, reloaded.Payments, 2)
}

func TestAddPaymentToCancelledSaleFails(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.service.CreateSale(&CreateSaleRequest{
		BranchID: f.branch.ID,
		Items:    []SaleItemRequest{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.service.UpdateSaleStatus(created.ID, SaleStatusCancelled)
	require.NoError(t, err)

	_, err = f.service.AddPayment(created.ID, &PaymentRequest{Amount: 1000, Method: PaymentMethodCash})
	assert.Error(t, err)
}

func TestAddPaymentUnknownSale(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.service.AddPayment(9999, &PaymentRequest{Amount: 1000, Method: PaymentMethodCash})
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestSaleNumbersAreUnique(t *testing.T) {
	f := newSaleFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		created, err := f.service.CreateSale(&CreateSaleRequest{
			BranchID: f.branch.ID,
			Items:    []SaleItemRequest{{ProductID: f.product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.False(t, seen[created.SaleNumber], "sale number %s repeated", created.SaleNumber)
		seen[created.SaleNumber] = true
	}
}
