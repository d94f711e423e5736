// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/customer"
	"github.com/your-org/fertilizer-backend/internal/domain/event"
	"github.com/your-org/fertilizer-backend/internal/domain/hr"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/sale"
	"github.com/your-org/fertilizer-backend/internal/domain/stock"
	"github.com/your-org/fertilizer-backend/internal/domain/supplier"
	"github.com/your-org/fertilizer-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// Account domain - Base tables
		&user.User{},
		&user.Address{},

		// Catalog domain
		&product.Category{},
		&product.Brand{},
		&product.Product{},

		// Organization
		&branch.Branch{},
		&hr.Department{},
		&hr.Position{},
		&hr.Employee{},

		// Partners
		&supplier.Supplier{},
		&customer.Customer{},

		// Stock ledger
		&stock.StockEntry{},
		&stock.StockLevel{},

		// Sales - Dependent tables
		&sale.Sale{},
		&sale.SaleItem{},
		&sale.Payment{},

		// Calendar
		&event.Event{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_parent_active ON categories(parent_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",

		// Stock entry indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_entries_product_branch ON stock_entries(product_id, branch_id)",
		"CREATE INDEX IF NOT EXISTS idx_stock_entries_supplier ON stock_entries(supplier_id)",
		"CREATE INDEX IF NOT EXISTS idx_stock_entries_status ON stock_entries(status)",
		"CREATE INDEX IF NOT EXISTS idx_stock_entries_entry_date ON stock_entries(entry_date DESC)",

		// Stock level indexes (the unique pair index comes from the model tags)
		"CREATE INDEX IF NOT EXISTS idx_stock_levels_branch ON stock_levels(branch_id)",

		// Sale indexes
		"CREATE INDEX IF NOT EXISTS idx_sales_customer_status ON sales(customer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_sales_branch_date ON sales(branch_id, sale_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sales_sale_number ON sales(sale_number)",
		"CREATE INDEX IF NOT EXISTS idx_sales_status_created ON sales(status, created_at DESC)",

		// Sale item indexes
		"CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id)",
		"CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items(product_id)",

		// Payment indexes
		"CREATE INDEX IF NOT EXISTS idx_payments_sale_id ON payments(sale_id)",
		"CREATE INDEX IF NOT EXISTS idx_payments_method ON payments(method)",
		"CREATE INDEX IF NOT EXISTS idx_payments_paid_at ON payments(paid_at DESC)",

		// Employee indexes
		"CREATE INDEX IF NOT EXISTS idx_employees_branch_status ON employees(branch_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department_id)",
		"CREATE INDEX IF NOT EXISTS idx_employees_position ON employees(position_id)",

		// Event indexes
		"CREATE INDEX IF NOT EXISTS idx_events_start_at ON events(start_at)",
		"CREATE INDEX IF NOT EXISTS idx_events_branch ON events(branch_id)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_addresses_user_default ON addresses(user_id, is_default)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	// Create default branch first, the stock ledger needs one
	if err := m.seedDefaultBranch(); err != nil {
		return fmt.Errorf("failed to seed default branch: %w", err)
	}

	// Create default categories
	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	// Create default admin user
	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedDefaultBranch creates the main branch if none exists
func (m *Migration) seedDefaultBranch() error {
	log.Println("🏪 Seeding default branch...")

	var count int64
	if err := m.db.Model(&branch.Branch{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Branches already exist, skipping")
		return nil
	}

	main := branch.Branch{
		Name:      "Main Branch",
		Code:      "MAIN",
		IsActive:  true,
		IsDefault: true,
	}
	if err := m.db.Create(&main).Error; err != nil {
		return err
	}

	log.Printf("Created default branch with ID %d", main.ID)
	return nil
}

// seedCategories creates default fertilizer categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []product.Category{
		{
			Name:        "NPK Compound",
			Slug:        "npk-compound",
			Description: "Balanced nitrogen, phosphorus and potassium blends",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Name:        "Urea",
			Slug:        "urea",
			Description: "High-nitrogen urea fertilizers",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Name:        "Organic",
			Slug:        "organic",
			Description: "Compost, manure and other organic inputs",
			SortOrder:   3,
			IsActive:    true,
		},
		{
			Name:        "Pesticides",
			Slug:        "pesticides",
			Description: "Crop protection products",
			SortOrder:   4,
			IsActive:    true,
		},
	}

	for _, category := range categories {
		var existing product.Category
		result := m.db.Where("slug = ?", category.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&category).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// seedAdminUser creates the initial admin account
func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			Email:     "admin@example.com",
			Password:  string(hashedPassword),
			FirstName: "Admin",
			LastName:  "User",
			Role:      user.RoleAdmin,
			IsActive:  true,
		}

		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Created admin user admin@example.com (change the password!)")
	}

	return nil
}
