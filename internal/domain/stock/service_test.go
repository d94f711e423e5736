// internal/domain/stock/service_test.go
package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/supplier"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	service  *Service
	product  product.Product
	product2 product.Product
	supplier supplier.Supplier
	branch   branch.Branch
	branch2  branch.Branch
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&product.Category{},
		&product.Product{},
		&branch.Branch{},
		&supplier.Supplier{},
		&StockEntry{},
		&StockLevel{},
	))

	category := product.Category{Name: "NPK Compound", Slug: "npk-compound", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	f := &fixture{db: db}

	f.product = product.Product{
		SKU: "NPK-15", Name: "NPK 15-15-15", Slug: "npk-15-15-15",
		Unit: "bag", Price: 45000, CategoryID: category.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&f.product).Error)

	f.product2 = product.Product{
		SKU: "UREA-46", Name: "Urea 46", Slug: "urea-46",
		Unit: "bag", Price: 38000, CategoryID: category.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&f.product2).Error)

	f.supplier = supplier.Supplier{Name: "AgriChem Ltd"}
	require.NoError(t, db.Create(&f.supplier).Error)

	f.branch = branch.Branch{Name: "Main Branch", Code: "MAIN", IsActive: true, IsDefault: true}
	require.NoError(t, db.Create(&f.branch).Error)

	f.branch2 = branch.Branch{Name: "North Branch", Code: "NORTH", IsActive: true}
	require.NoError(t, db.Create(&f.branch2).Error)

	cfg := &config.Config{}
	cfg.Stock.DefaultBranchID = f.branch.ID

	f.service = NewService(db, cfg)
	return f
}

// levelQuantity reads the raw stock level row for a pair, returning 0 when
// no row exists.
func (f *fixture) levelQuantity(t *testing.T, productID, branchID uint) int {
	t.Helper()
	var level StockLevel
	err := f.db.Where("product_id = ? AND branch_id = ?", productID, branchID).First(&level).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return level.Quantity
}

// activeEntrySum computes the ledger-side quantity for a pair, which must
// always equal the stored level.
func (f *fixture) activeEntrySum(t *testing.T, productID, branchID uint) int {
	t.Helper()
	var total int64
	require.NoError(t, f.db.Model(&StockEntry{}).
		Where("product_id = ? AND branch_id = ? AND status = ?", productID, branchID, EntryStatusActive).
		Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error)
	return int(total)
}

func (f *fixture) assertInvariant(t *testing.T, productID, branchID uint) {
	t.Helper()
	assert.Equal(t, f.activeEntrySum(t, productID, branchID), f.levelQuantity(t, productID, branchID),
		"stock level must equal the sum of active entry quantities")
}

func TestRecordEntryCreatesLevel(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   100,
		EntryPrice: 40000,
		Invoice:    "INV-001",
	})
	require.NoError(t, err)

	assert.Equal(t, EntryStatusActive, entry.Status)
	assert.Equal(t, 100, f.levelQuantity(t, f.product.ID, f.branch.ID))
	f.assertInvariant(t, f.product.ID, f.branch.ID)

	// Level unit comes from the product
	level, err := f.service.GetLevel(f.product.ID, f.branch.ID)
	require.NoError(t, err)
	assert.Equal(t, "bag", level.Unit)
}

func TestRecordEntryAccumulates(t *testing.T) {
	f := newFixture(t)

	for _, qty := range []int{100, 50, 25} {
		_, err := f.service.RecordEntry(&RecordEntryRequest{
			ProductID:  f.product.ID,
			SupplierID: f.supplier.ID,
			BranchID:   f.branch.ID,
			Quantity:   qty,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 175, f.levelQuantity(t, f.product.ID, f.branch.ID))
	f.assertInvariant(t, f.product.ID, f.branch.ID)
}

func TestRecordEntryDefaultsBranch(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		Quantity:   10,
	})
	require.NoError(t, err)

	assert.Equal(t, f.branch.ID, entry.BranchID)
	assert.Equal(t, 10, f.levelQuantity(t, f.product.ID, f.branch.ID))
}

func TestRecordEntryRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		Quantity:   0,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		Quantity:   -5,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRecordEntryUnknownProductWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  9999,
		SupplierID: f.supplier.ID,
		Quantity:   10,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	var entries int64
	require.NoError(t, f.db.Model(&StockEntry{}).Count(&entries).Error)
	assert.Zero(t, entries, "failed record must not leave an entry behind")
}

func TestRecordEntryBadSupplierReference(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: 9999,
		Quantity:   10,
	})
	assert.ErrorIs(t, err, ErrBadReference)
	assert.Contains(t, err.Error(), "supplier 9999")
}

func TestReviseEntryQuantityAdjustsLevel(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   100,
	})
	require.NoError(t, err)

	qty := 60
	revised, err := f.service.ReviseEntry(entry.ID, &ReviseEntryRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 60, revised.Quantity)
	assert.Equal(t, 60, f.levelQuantity(t, f.product.ID, f.branch.ID))
	f.assertInvariant(t, f.product.ID, f.branch.ID)
}

func TestReviseEntryNoQuantityChangeLeavesLevelAlone(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   100,
	})
	require.NoError(t, err)

	memo := "recount confirmed"
	_, err = f.service.ReviseEntry(entry.ID, &ReviseEntryRequest{Memo: &memo})
	require.NoError(t, err)

	assert.Equal(t, 100, f.levelQuantity(t, f.product.ID, f.branch.ID))
}

func TestReviseEntryMovesBetweenBranches(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   80,
	})
	require.NoError(t, err)

	revised, err := f.service.ReviseEntry(entry.ID, &ReviseEntryRequest{BranchID: &f.branch2.ID})
	require.NoError(t, err)

	assert.Equal(t, f.branch2.ID, revised.BranchID)
	assert.Equal(t, 0, f.levelQuantity(t, f.product.ID, f.branch.ID))
	assert.Equal(t, 80, f.levelQuantity(t, f.product.ID, f.branch2.ID))
	f.assertInvariant(t, f.product.ID, f.branch.ID)
	f.assertInvariant(t, f.product.ID, f.branch2.ID)
}

func TestReviseEntryMovesBetweenProducts(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   40,
	})
	require.NoError(t, err)

	qty := 70
	revised, err := f.service.ReviseEntry(entry.ID, &ReviseEntryRequest{
		ProductID: &f.product2.ID,
		Quantity:  &qty,
	})
	require.NoError(t, err)

	assert.Equal(t, f.product2.ID, revised.ProductID)
	assert.Equal(t, 0, f.levelQuantity(t, f.product.ID, f.branch.ID))
	assert.Equal(t, 70, f.levelQuantity(t, f.product2.ID, f.branch.ID))
	f.assertInvariant(t, f.product.ID, f.branch.ID)
	f.assertInvariant(t, f.product2.ID, f.branch.ID)
}

func TestReviseEntryBlockedWhenLevelWouldGoNegative(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   10,
	})
	require.NoError(t, err)

	// Drain the level below the entry's contribution to simulate a
	// divergent ledger; shrinking the entry would now go negative.
	require.NoError(t, f.db.Model(&StockLevel{}).
		Where("product_id = ? AND branch_id = ?", f.product.ID, f.branch.ID).
		Update("quantity", 5).Error)

	qty := 2
	_, err = f.service.ReviseEntry(entry.ID, &ReviseEntryRequest{Quantity: &qty})
	assert.ErrorIs(t, err, ErrNegativeStock)

	// The refused revision must leave both sides untouched.
	reloaded, err := f.service.GetEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Quantity)
	assert.Equal(t, 5, f.levelQuantity(t, f.product.ID, f.branch.ID))
}

func TestReviseRetiredEntryLeavesLevelAlone(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   10,
	})
	require.NoError(t, err)
	require.NoError(t, f.service.RetireEntry(entry.ID))

	memo := "archived"
	revised, err := f.service.ReviseEntry(entry.ID, &ReviseEntryRequest{Memo: &memo})
	require.NoError(t, err)

	assert.Equal(t, "archived", revised.Memo)
	assert.Equal(t, 0, f.levelQuantity(t, f.product.ID, f.branch.ID))
}

func TestGetLevelMissingPair(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetLevel(f.product.ID, f.branch.ID)
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestRetireEntryBlockedWhenLevelWouldGoNegative(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product2.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   10,
	})
	require.NoError(t, err)

	// Drain the level below the entry's contribution to simulate a
	// divergent ledger, then retiring must refuse.
	require.NoError(t, f.db.Model(&StockLevel{}).
		Where("product_id = ? AND branch_id = ?", f.product2.ID, f.branch.ID).
		Update("quantity", 5).Error)

	err = f.service.RetireEntry(entry.ID)
	assert.ErrorIs(t, err, ErrNegativeStock)

	// The refused retire must leave the entry active and the level as-is.
	reloaded, err := f.service.GetEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusActive, reloaded.Status)
	assert.Equal(t, 5, f.levelQuantity(t, f.product2.ID, f.branch.ID))
}

func TestRetireEntrySubtractsAndDeactivates(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   100,
	})
	require.NoError(t, err)

	_, err = f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   30,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.RetireEntry(entry.ID))

	assert.Equal(t, 30, f.levelQuantity(t, f.product.ID, f.branch.ID))
	f.assertInvariant(t, f.product.ID, f.branch.ID)

	retired, err := f.service.GetEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, EntryStatusInactive, retired.Status)
}

func TestRetireEntryTwiceFails(t *testing.T) {
	f := newFixture(t)

	entry, err := f.service.RecordEntry(&RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   10,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.RetireEntry(entry.ID))
	assert.ErrorIs(t, f.service.RetireEntry(entry.ID), ErrEntryInactive)

	// The level is not touched again
	assert.Equal(t, 0, f.levelQuantity(t, f.product.ID, f.branch.ID))
}

func TestRetireUnknownEntry(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.service.RetireEntry(9999), ErrEntryNotFound)
}

func TestGetEntriesFilters(t *testing.T) {
	f := newFixture(t)

	for _, p := range []uint{f.product.ID, f.product.ID, f.product2.ID} {
		_, err := f.service.RecordEntry(&RecordEntryRequest{
			ProductID:  p,
			SupplierID: f.supplier.ID,
			BranchID:   f.branch.ID,
			Quantity:   10,
		})
		require.NoError(t, err)
	}

	entries, total, err := f.service.GetEntries(&EntryListRequest{ProductID: f.product.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, entries, 2)

	entries, total, err = f.service.GetEntries(&EntryListRequest{Status: string(EntryStatusInactive)})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}

func TestTotalOnHandAcrossBranches(t *testing.T) {
	f := newFixture(t)

	for _, b := range []uint{f.branch.ID, f.branch2.ID} {
		_, err := f.service.RecordEntry(&RecordEntryRequest{
			ProductID:  f.product.ID,
			SupplierID: f.supplier.ID,
			BranchID:   b,
			Quantity:   25,
		})
		require.NoError(t, err)
	}

	total, err := f.service.TotalOnHand(f.product.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, total)

	total, err = f.service.TotalOnHand(f.product.ID, &f.branch2.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
}
