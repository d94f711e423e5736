// internal/interfaces/http/handlers/stock_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/stock"
	"github.com/your-org/fertilizer-backend/internal/domain/supplier"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stockHandlerFixture struct {
	db       *gorm.DB
	router   *gin.Engine
	product  product.Product
	supplier supplier.Supplier
	branch   branch.Branch
}

func newStockHandlerFixture(t *testing.T) *stockHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&product.Category{},
		&product.Product{},
		&branch.Branch{},
		&supplier.Supplier{},
		&stock.StockEntry{},
		&stock.StockLevel{},
	))

	category := product.Category{Name: "Urea", Slug: "urea", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	f := &stockHandlerFixture{db: db}

	f.product = product.Product{
		SKU: "UREA-46", Name: "Urea 46", Slug: "urea-46",
		Unit: "bag", Price: 38000, CategoryID: category.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&f.product).Error)

	f.supplier = supplier.Supplier{Name: "AgriChem Ltd"}
	require.NoError(t, db.Create(&f.supplier).Error)

	f.branch = branch.Branch{Name: "Main Branch", Code: "MAIN", IsActive: true, IsDefault: true}
	require.NoError(t, db.Create(&f.branch).Error)

	cfg := &config.Config{}
	cfg.Stock.DefaultBranchID = f.branch.ID

	// Unreachable redis: dashboard cache invalidation must never be able
	// to fail a ledger write.
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	handler := NewStockHandler(db, redisClient, cfg)

	router := gin.New()
	router.POST("/stock/entries", handler.RecordEntry)
	router.DELETE("/stock/entries/:id", handler.RetireEntry)
	f.router = router
	return f
}

func (f *stockHandlerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRecordEntryEndpointSurvivesCacheOutage(t *testing.T) {
	f := newStockHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/stock/entries", stock.RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   10,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var level stock.StockLevel
	require.NoError(t, f.db.
		Where("product_id = ? AND branch_id = ?", f.product.ID, f.branch.ID).
		First(&level).Error)
	assert.Equal(t, 10, level.Quantity)
}

func TestRetireEntryEndpointMapsInactiveToBadRequest(t *testing.T) {
	f := newStockHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/stock/entries", stock.RecordEntryRequest{
		ProductID:  f.product.ID,
		SupplierID: f.supplier.ID,
		BranchID:   f.branch.ID,
		Quantity:   10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var entry stock.StockEntry
	require.NoError(t, f.db.First(&entry).Error)

	path := fmt.Sprintf("/stock/entries/%d", entry.ID)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/stock/entries/9999", nil).Code)
}
