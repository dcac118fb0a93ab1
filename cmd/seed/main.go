package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopkart/internal/config"
	"shopkart/internal/db"
	"shopkart/internal/model"
	"shopkart/internal/repository"
	"shopkart/internal/service"
)

// Registration never grants the admin role, so the seed script is the
// supported way to provision the catalog administrator.
const (
	adminName     = "Catalog Admin"
	adminEmail    = "admin@shopkart.local"
	adminPassword = "admin123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, skipped, err := seedProducts(ctx, productRepo)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New products created: %d", created)
	log.Printf("  - Existing products skipped: %d", skipped)
}

// seedAdmin creates the admin user unless the email is already taken.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	email := service.NormalizeEmail(adminEmail)

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check admin existence: %w", err)
	}
	if existing != nil {
		log.Printf("Admin user already present: %s", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         adminName,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("Admin user created: %s", email)
	return nil
}

// seedProducts inserts a demo catalog, skipping names that already exist.
func seedProducts(ctx context.Context, repo repository.ProductRepository) (created, skipped int, err error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list products: %w", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, p := range existing {
		byName[p.Name] = true
	}

	for _, p := range demoCatalog() {
		if byName[p.Name] {
			skipped++
			continue
		}
		product := p
		if fieldErrs := product.Validate(); len(fieldErrs) > 0 {
			return created, skipped, fmt.Errorf("invalid seed product %q: %v", product.Name, fieldErrs.Messages())
		}
		if err := repo.Create(ctx, &product); err != nil {
			return created, skipped, fmt.Errorf("create product %q: %w", product.Name, err)
		}
		created++
	}
	return created, skipped, nil
}

func demoCatalog() []model.Product {
	return []model.Product{
		{
			Name:        "Wireless Earbuds",
			Description: "Bluetooth 5.3 earbuds with noise cancellation and a 24-hour charging case.",
			Price:       decimal.NewFromFloat(49.99),
			Image:       "https://cdn.shopkart.local/img/earbuds.jpg",
			Category:    model.CategoryElectronics,
			Brand:       "SoundCore",
			Stock:       120,
			IsActive:    true,
		},
		{
			Name:        "Cotton Crew T-Shirt",
			Description: "Plain crew-neck t-shirt, 100% combed cotton, pre-shrunk.",
			Price:       decimal.NewFromFloat(12.50),
			Image:       "https://cdn.shopkart.local/img/tshirt.png?v=2",
			Category:    model.CategoryClothing,
			Stock:       300,
			IsActive:    true,
		},
		{
			Name:        "The Go Programming Language",
			Description: "Comprehensive introduction to Go by Donovan and Kernighan.",
			Price:       decimal.NewFromFloat(39.00),
			Image:       "https://cdn.shopkart.local/img/gopl.jpeg",
			Category:    model.CategoryBooks,
			Brand:       "Addison-Wesley",
			Stock:       45,
			IsActive:    true,
		},
		{
			Name:        "Cast Iron Skillet 26cm",
			Description: "Pre-seasoned cast iron skillet suitable for stovetop and oven use.",
			Price:       decimal.NewFromFloat(28.75),
			Image:       "https://cdn.shopkart.local/img/skillet.webp",
			Category:    model.CategoryHome,
			Stock:       60,
			IsActive:    true,
		},
		{
			Name:        "Yoga Mat 6mm",
			Description: "Non-slip TPE yoga mat with carrying strap.",
			Price:       decimal.NewFromFloat(18.99),
			Image:       "https://cdn.shopkart.local/img/yogamat.jpg",
			Category:    model.CategorySports,
			Stock:       0,
			IsActive:    false,
		},
	}
}
