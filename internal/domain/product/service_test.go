// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, Category) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}, &Brand{}, &Product{}))

	category := Category{Name: "Organic", Slug: "organic", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	return NewService(db, &config.Config{}), db, category
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "npk-15-15-15", GenerateSlug("NPK 15-15-15"))
	assert.Equal(t, "urea-46", GenerateSlug("  Urea 46!  "))
	assert.Equal(t, "compost-mix", GenerateSlug("Compost Mix"))
}

func TestCreateProductEnforcesUniqueSKU(t *testing.T) {
	service, _, category := newTestService(t)

	_, err := service.CreateProduct(&ProductCreateRequest{
		SKU: "ORG-1", Name: "Compost Mix", Price: 12000, CategoryID: category.ID, IsActive: true,
	})
	require.NoError(t, err)

	_, err = service.CreateProduct(&ProductCreateRequest{
		SKU: "ORG-1", Name: "Other Compost", Price: 13000, CategoryID: category.ID, IsActive: true,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateProductUnknownCategory(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateProduct(&ProductCreateRequest{
		SKU: "ORG-2", Name: "Compost", Price: 12000, CategoryID: 9999,
	})
	assert.Error(t, err)
}

func TestUpdateProductSparseFields(t *testing.T) {
	service, _, category := newTestService(t)

	created, err := service.CreateProduct(&ProductCreateRequest{
		SKU: "ORG-3", Name: "Compost Mix", Price: 12000, CategoryID: category.ID, IsActive: true,
	})
	require.NoError(t, err)

	newPrice := int64(15000)
	updated, err := service.UpdateProduct(created.ID, &ProductUpdateRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.EqualValues(t, 15000, updated.Price)
	assert.Equal(t, "Compost Mix", updated.Name, "unsupplied fields keep their values")
	assert.Equal(t, "compost-mix", updated.Slug)
}

func TestGetProductsFiltersAndPaginates(t *testing.T) {
	service, _, category := newTestService(t)

	for _, seed := range []struct {
		sku, name string
		price     int64
		active    bool
	}{
		{"P-1", "Urea 46", 38000, true},
		{"P-2", "NPK 15-15-15", 45000, true},
		{"P-3", "Old Stock Blend", 10000, false},
	} {
		_, err := service.CreateProduct(&ProductCreateRequest{
			SKU: seed.sku, Name: seed.name, Price: seed.price,
			CategoryID: category.ID, IsActive: seed.active,
		})
		require.NoError(t, err)
	}

	active := true
	response, err := service.GetProducts(&ProductListRequest{IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, response.Products, 2)
	assert.EqualValues(t, 2, response.Pagination.Total)

	response, err = service.GetProducts(&ProductListRequest{Search: "urea"})
	require.NoError(t, err)
	require.Len(t, response.Products, 1)
	assert.Equal(t, "P-1", response.Products[0].SKU)

	response, err = service.GetProducts(&ProductListRequest{MinPrice: 40000})
	require.NoError(t, err)
	require.Len(t, response.Products, 1)
	assert.Equal(t, "P-2", response.Products[0].SKU)

	response, err = service.GetProducts(&ProductListRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, response.Products, 1)
	assert.True(t, response.Pagination.HasPrev)
	assert.False(t, response.Pagination.HasNext)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	service, db, category := newTestService(t)

	created, err := service.CreateProduct(&ProductCreateRequest{
		SKU: "ORG-4", Name: "Compost", Price: 12000, CategoryID: category.ID, IsActive: true,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(created.ID))

	_, err = service.GetProduct(created.ID)
	assert.Error(t, err)

	// Row still exists under soft delete
	var count int64
	require.NoError(t, db.Unscoped().Model(&Product{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
