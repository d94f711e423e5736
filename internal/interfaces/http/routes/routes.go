// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/interfaces/http/handlers"
	"github.com/your-org/fertilizer-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group under the API base group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupUserRoutes(rg, db, redisClient, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupOrganizationRoutes(rg, db, cfg)
	SetupPartnerRoutes(rg, db, cfg)
	SetupStockRoutes(rg, db, redisClient, cfg)
	SetupSaleRoutes(rg, db, redisClient, cfg)
	SetupEventRoutes(rg, db, cfg)
	SetupReportRoutes(rg, db, redisClient, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
		}
	}
}

// SetupUserRoutes sets up profile and address routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	profileHandler := handlers.NewUserProfileHandler(db, redisClient, cfg)
	addressHandler := handlers.NewUserAddressHandler(db, redisClient, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/profile", profileHandler.GetProfile)
		users.PUT("/profile", profileHandler.UpdateProfile)
		users.PUT("/password", profileHandler.ChangePassword)

		users.GET("/addresses", addressHandler.GetAddresses)
		users.POST("/addresses", addressHandler.CreateAddress)
		users.PUT("/addresses/:id", addressHandler.UpdateAddress)
		users.DELETE("/addresses/:id", addressHandler.DeleteAddress)
	}
}

// SetupCatalogRoutes sets up product, category and brand routes.
// Reads are open to any authenticated user; writes need manager or admin.
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	brandHandler := handlers.NewBrandHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)

		writes := products.Group("")
		writes.Use(middleware.RequireRoles("admin", "manager"))
		{
			writes.POST("", productHandler.CreateProduct)
			writes.PUT("/:id", productHandler.UpdateProduct)
			writes.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	categories := rg.Group("/categories")
	categories.Use(middleware.AuthMiddleware(cfg))
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/:id", categoryHandler.GetCategory)

		writes := categories.Group("")
		writes.Use(middleware.RequireRoles("admin", "manager"))
		{
			writes.POST("", categoryHandler.CreateCategory)
			writes.PUT("/:id", categoryHandler.UpdateCategory)
			writes.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}

	brands := rg.Group("/brands")
	brands.Use(middleware.AuthMiddleware(cfg))
	{
		brands.GET("", brandHandler.GetBrands)
		brands.GET("/:id", brandHandler.GetBrand)

		writes := brands.Group("")
		writes.Use(middleware.RequireRoles("admin", "manager"))
		{
			writes.POST("", brandHandler.CreateBrand)
			writes.PUT("/:id", brandHandler.UpdateBrand)
			writes.DELETE("/:id", brandHandler.DeleteBrand)
		}
	}
}

// SetupOrganizationRoutes sets up branch and HR routes
func SetupOrganizationRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	branchHandler := handlers.NewBranchHandler(db, cfg)
	hrHandler := handlers.NewHRHandler(db, cfg)

	branches := rg.Group("/branches")
	branches.Use(middleware.AuthMiddleware(cfg))
	{
		branches.GET("", branchHandler.GetBranches)
		branches.GET("/default", branchHandler.GetDefaultBranch)
		branches.GET("/:id", branchHandler.GetBranch)

		writes := branches.Group("")
		writes.Use(middleware.RequireRoles("admin"))
		{
			writes.POST("", branchHandler.CreateBranch)
			writes.PUT("/:id", branchHandler.UpdateBranch)
			writes.DELETE("/:id", branchHandler.DeleteBranch)
		}
	}

	hrGroup := rg.Group("/hr")
	hrGroup.Use(middleware.AuthMiddleware(cfg))
	{
		hrGroup.GET("/departments", hrHandler.GetDepartments)
		hrGroup.GET("/positions", hrHandler.GetPositions)
		hrGroup.GET("/employees", hrHandler.GetEmployees)
		hrGroup.GET("/employees/:id", hrHandler.GetEmployee)

		writes := hrGroup.Group("")
		writes.Use(middleware.RequireRoles("admin", "manager"))
		{
			writes.POST("/departments", hrHandler.CreateDepartment)
			writes.PUT("/departments/:id", hrHandler.UpdateDepartment)
			writes.DELETE("/departments/:id", hrHandler.DeleteDepartment)

			writes.POST("/positions", hrHandler.CreatePosition)
			writes.PUT("/positions/:id", hrHandler.UpdatePosition)
			writes.DELETE("/positions/:id", hrHandler.DeletePosition)

			writes.POST("/employees", hrHandler.CreateEmployee)
			writes.PUT("/employees/:id", hrHandler.UpdateEmployee)
			writes.DELETE("/employees/:id", hrHandler.DeleteEmployee)
		}
	}
}

// SetupPartnerRoutes sets up supplier and customer routes
func SetupPartnerRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	supplierHandler := handlers.NewSupplierHandler(db, cfg)
	customerHandler := handlers.NewCustomerHandler(db, cfg)

	suppliers := rg.Group("/suppliers")
	suppliers.Use(middleware.AuthMiddleware(cfg))
	{
		suppliers.GET("", supplierHandler.GetSuppliers)
		suppliers.GET("/:id", supplierHandler.GetSupplier)
		suppliers.POST("", supplierHandler.CreateSupplier)
		suppliers.PUT("/:id", supplierHandler.UpdateSupplier)

		suppliers.DELETE("/:id", middleware.RequireRoles("admin", "manager"), supplierHandler.DeleteSupplier)
	}

	customers := rg.Group("/customers")
	customers.Use(middleware.AuthMiddleware(cfg))
	{
		customers.GET("", customerHandler.GetCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.POST("", customerHandler.CreateCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)

		customers.DELETE("/:id", middleware.RequireRoles("admin", "manager"), customerHandler.DeleteCustomer)
	}
}

// SetupStockRoutes sets up stock ledger routes. Ledger writes are
// restricted to managers and admins; reads are open to all staff.
func SetupStockRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	stockHandler := handlers.NewStockHandler(db, redisClient, cfg)

	stockGroup := rg.Group("/stock")
	stockGroup.Use(middleware.AuthMiddleware(cfg))
	{
		stockGroup.GET("/entries", stockHandler.GetEntries)
		stockGroup.GET("/entries/:id", stockHandler.GetEntry)
		stockGroup.GET("/levels", stockHandler.GetLevels)
		stockGroup.GET("/levels/product/:id", stockHandler.GetProductOnHand)

		writes := stockGroup.Group("")
		writes.Use(middleware.RequireRoles("admin", "manager"))
		{
			writes.POST("/entries", stockHandler.RecordEntry)
			writes.PUT("/entries/:id", stockHandler.ReviseEntry)
			writes.DELETE("/entries/:id", stockHandler.RetireEntry)
		}
	}
}

// SetupSaleRoutes sets up sales routes
func SetupSaleRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	saleHandler := handlers.NewSaleHandler(db, redisClient, cfg)

	sales := rg.Group("/sales")
	sales.Use(middleware.AuthMiddleware(cfg))
	{
		sales.GET("", saleHandler.GetSales)
		sales.GET("/:id", saleHandler.GetSale)
		sales.GET("/:id/payments", saleHandler.GetPayments)
		sales.POST("", saleHandler.CreateSale)
		sales.POST("/:id/payments", saleHandler.AddPayment)

		sales.PUT("/:id/status", middleware.RequireRoles("admin", "manager"), saleHandler.UpdateSaleStatus)
	}
}

// SetupEventRoutes sets up calendar event routes
func SetupEventRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	eventHandler := handlers.NewEventHandler(db, cfg)

	events := rg.Group("/events")
	events.Use(middleware.AuthMiddleware(cfg))
	{
		events.GET("", eventHandler.GetEvents)
		events.GET("/:id", eventHandler.GetEvent)
		events.POST("", eventHandler.CreateEvent)
		events.PUT("/:id", eventHandler.UpdateEvent)
		events.DELETE("/:id", eventHandler.DeleteEvent)
	}
}

// SetupReportRoutes sets up dashboard and export routes
func SetupReportRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	reportHandler := handlers.NewReportHandler(db, redisClient, cfg)

	reports := rg.Group("/reports")
	reports.Use(middleware.AuthMiddleware(cfg))
	{
		reports.GET("/dashboard", reportHandler.GetDashboard)

		exports := reports.Group("")
		exports.Use(middleware.RequireRoles("admin", "manager"))
		{
			exports.GET("/stock/export", reportHandler.ExportStockLevels)
			exports.GET("/sales/export", reportHandler.ExportSales)
		}
	}
}

// SetupAdminRoutes sets up admin account management routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	adminHandler := handlers.NewUserAdminHandler(db, redisClient, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", adminHandler.GetUsers)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
	}
}
