package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/config"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/database"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/handlers"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Detects embedded vs external automatically
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// db.Close() runs in the shutdown handler below

	log.Println("Synchronizing database schema...")
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
		log.Printf("Migration warning: %v", err)
	} else {
		log.Println("Schema synchronized successfully")
	}

	hub := websocket.NewHub()
	go hub.Run()

	router := handlers.NewRouter(db, cfg, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("Server starting on port %s (env: %s)", cfg.Port, cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("Shutdown complete")
}
