package main

import (
	"fmt"
	"log"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/config"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/database"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/utils"
)

// Seeds a demo tenant with a warehouse, products, a vendor and a cashier
// account so a fresh install has something to click through.
func main() {
	fmt.Println("Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Permission{},
		&models.Warehouse{},
		&models.Product{},
		&models.ProductStock{},
		&models.StockMovement{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.PurchaseOrder{},
		&models.OrderItem{},
		&models.OrderStep{},
		&models.Vendor{},
		&models.LedgerEntry{},
		&models.Quotation{},
		&models.QuotationItem{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	var companies int64
	db.Model(&models.Company{}).Count(&companies)
	if companies > 0 {
		fmt.Printf("Database already has %d companies. Re-seed anyway? (y/N): ", companies)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted. Database not modified.")
			return
		}
	}

	company := models.Company{
		Name:     "Demo Trading Co",
		Currency: "USD",
		Phone:    "+1 555 0100",
		Address:  "1 Demo Street",
	}
	if err := db.Create(&company).Error; err != nil {
		log.Fatalf("Failed to create company: %v", err)
	}
	fmt.Printf("Created company: %s (id %d)\n", company.Name, company.ID)

	adminPassword, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	admin := models.User{
		Username:  "admin",
		Email:     "admin@demo.local",
		Password:  adminPassword,
		Name:      "Demo Admin",
		Role:      "admin",
		CompanyID: company.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	cashierPassword, err := utils.HashPassword("cashier123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	cashier := models.User{
		Username:  "cashier",
		Email:     "cashier@demo.local",
		Password:  cashierPassword,
		Name:      "Demo Cashier",
		Role:      "user",
		CompanyID: company.ID,
	}
	if err := db.Create(&cashier).Error; err != nil {
		log.Fatalf("Failed to create cashier: %v", err)
	}

	// Cashier can sell and look at inventory, nothing else
	permissions := []models.Permission{
		{UserID: cashier.ID, ModuleName: "point_of_sale", CanView: true, CanCreate: true},
		{UserID: cashier.ID, ModuleName: "inventory", CanView: true},
	}
	for _, p := range permissions {
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Failed to create permission %s: %v", p.ModuleName, err)
		}
	}
	fmt.Println("Created users: admin@demo.local / cashier@demo.local")

	warehouse := models.Warehouse{
		CompanyID: company.ID,
		Name:      "Main Warehouse",
		Code:      "WH-MAIN",
		City:      "Demo City",
		IsActive:  true,
	}
	if err := db.Create(&warehouse).Error; err != nil {
		log.Fatalf("Failed to create warehouse: %v", err)
	}
	fmt.Printf("Created warehouse: %s\n", warehouse.Name)

	products := []models.Product{
		{CompanyID: company.ID, SKU: "SUG-1KG", Name: "Sugar 1kg", Category: "Groceries", Unit: "pcs", SalePrice: 2.50, CostPrice: 1.80, TaxPercent: 5, IsActive: true},
		{CompanyID: company.ID, SKU: "RIC-5KG", Name: "Rice 5kg", Category: "Groceries", Unit: "pcs", SalePrice: 9.90, CostPrice: 7.20, TaxPercent: 5, IsActive: true},
		{CompanyID: company.ID, SKU: "OIL-1L", Name: "Cooking Oil 1L", Category: "Groceries", Unit: "pcs", SalePrice: 4.75, CostPrice: 3.40, TaxPercent: 5, IsActive: true},
		{CompanyID: company.ID, SKU: "SOAP-BAR", Name: "Soap Bar", Category: "Household", Unit: "pcs", SalePrice: 1.20, CostPrice: 0.70, TaxPercent: 15, IsActive: true},
		{CompanyID: company.ID, SKU: "DET-2KG", Name: "Detergent 2kg", Category: "Household", Unit: "pcs", SalePrice: 6.80, CostPrice: 4.90, TaxPercent: 15, IsActive: true},
	}
	quantities := []float64{120, 45, 80, 300, 25}
	for i := range products {
		products[i].Stocks = []models.ProductStock{
			{WarehouseID: warehouse.ID, Quantity: quantities[i]},
		}
		if err := db.Create(&products[i]).Error; err != nil {
			log.Printf("Failed to create product %s: %v", products[i].Name, err)
			continue
		}
		fmt.Printf("Created product: [%s] %s (%.0f in stock)\n", products[i].SKU, products[i].Name, quantities[i])
	}

	vendor := models.Vendor{
		CompanyID:   company.ID,
		Name:        "Wholesale Supplies Ltd",
		Email:       "sales@wholesale.local",
		Phone:       "+1 555 0199",
		CompanyName: "Wholesale Supplies Ltd",
		IsActive:    true,
	}
	if err := db.Create(&vendor).Error; err != nil {
		log.Fatalf("Failed to create vendor: %v", err)
	}
	fmt.Printf("Created vendor: %s\n", vendor.Name)

	fmt.Println()
	fmt.Println("Demo data created. Start the server:")
	fmt.Println("  go run ./cmd/api")
	fmt.Println("Then log in with admin@demo.local / admin123")
}
