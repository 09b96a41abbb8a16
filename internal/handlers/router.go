package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/buildinfo"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/config"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/database"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/websocket"
)

// Router wraps the mux router, database and event hub
type Router struct {
	*mux.Router
	db  *database.DB
	cfg *config.Config
	hub *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *websocket.Hub) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		hub:    hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes (public)
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/refresh", r.refresh).Methods("POST")

	// All /api routes require a valid token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(middleware.Auth(cfg.JWTSecret)))

	api.HandleFunc("/me", r.currentUser).Methods("GET")
	api.HandleFunc("/events", r.serveEvents).Methods("GET")

	// Inventory
	products := api.PathPrefix("/products").Subrouter()
	products.Use(mux.MiddlewareFunc(middleware.RequireModule(r, middleware.ModuleInventory)))
	products.HandleFunc("/company/{companyID:[0-9]+}", r.listProducts).Methods("GET")
	products.HandleFunc("/company/{companyID:[0-9]+}", r.createProduct).Methods("POST")
	products.HandleFunc("/company/{companyID:[0-9]+}/export", r.exportProducts).Methods("GET")
	products.HandleFunc("/company/{companyID:[0-9]+}/import", r.importProducts).Methods("POST")
	products.HandleFunc("/{id:[0-9]+}", r.getProduct).Methods("GET")
	products.HandleFunc("/{id:[0-9]+}", r.updateProduct).Methods("PUT")
	products.HandleFunc("/{id:[0-9]+}", r.deleteProduct).Methods("DELETE")
	products.HandleFunc("/{id:[0-9]+}/image", r.uploadProductImage).Methods("POST")
	products.HandleFunc("/{id:[0-9]+}/label", r.productLabel).Methods("GET")

	// Warehouses
	warehouses := api.PathPrefix("/warehouses").Subrouter()
	warehouses.Use(mux.MiddlewareFunc(middleware.RequireModule(r, middleware.ModuleWarehouses)))
	warehouses.HandleFunc("/company/{companyID:[0-9]+}", r.listWarehouses).Methods("GET")
	warehouses.HandleFunc("/company/{companyID:[0-9]+}", r.createWarehouse).Methods("POST")
	warehouses.HandleFunc("/company/{companyID:[0-9]+}/export", r.exportWarehouses).Methods("GET")
	warehouses.HandleFunc("/company/{companyID:[0-9]+}/import", r.importWarehouses).Methods("POST")
	warehouses.HandleFunc("/{id:[0-9]+}", r.getWarehouse).Methods("GET")
	warehouses.HandleFunc("/{id:[0-9]+}", r.updateWarehouse).Methods("PUT")
	warehouses.HandleFunc("/{id:[0-9]+}", r.deleteWarehouse).Methods("DELETE")

	// Point of sale
	invoices := api.PathPrefix("/invoices").Subrouter()
	invoices.Use(mux.MiddlewareFunc(middleware.RequireModule(r, middleware.ModulePointOfSale)))
	invoices.HandleFunc("", r.createInvoice).Methods("POST")
	invoices.HandleFunc("/company/{companyID:[0-9]+}", r.listInvoices).Methods("GET")
	invoices.HandleFunc("/{id:[0-9]+}", r.getInvoice).Methods("GET")

	// Purchase order workflow
	orders := api.PathPrefix("/purchase-orders").Subrouter()
	orders.Use(mux.MiddlewareFunc(middleware.RequireModule(r, middleware.ModulePurchaseOrders)))
	orders.HandleFunc("/create-purchase-order", r.createPurchaseOrder).Methods("POST")
	orders.HandleFunc("/company/{companyID:[0-9]+}", r.listPurchaseOrders).Methods("GET")
	orders.HandleFunc("/{id:[0-9]+}", r.getPurchaseOrder).Methods("GET")
	orders.HandleFunc("/{id:[0-9]+}", r.updatePurchaseOrderStep).Methods("PUT")
	orders.HandleFunc("/{id:[0-9]+}", r.deletePurchaseOrder).Methods("DELETE")
	orders.HandleFunc("/{id:[0-9]+}/cancel", r.cancelPurchaseOrder).Methods("POST")

	// Vendors and ledger
	vendors := api.PathPrefix("/vendors").Subrouter()
	vendors.Use(mux.MiddlewareFunc(middleware.RequireModule(r, middleware.ModuleVendors)))
	vendors.HandleFunc("/company/{companyID:[0-9]+}", r.listVendors).Methods("GET")
	vendors.HandleFunc("/company/{companyID:[0-9]+}", r.createVendor).Methods("POST")
	vendors.HandleFunc("/{id:[0-9]+}", r.getVendor).Methods("GET")
	vendors.HandleFunc("/{id:[0-9]+}", r.updateVendor).Methods("PUT")
	vendors.HandleFunc("/{id:[0-9]+}", r.deleteVendor).Methods("DELETE")
	vendors.HandleFunc("/{id:[0-9]+}/ledger", r.vendorLedger).Methods("GET")

	// Sales quotations
	quotations := api.PathPrefix("/quotations").Subrouter()
	quotations.Use(mux.MiddlewareFunc(middleware.RequireModule(r, middleware.ModuleQuotations)))
	quotations.HandleFunc("/company/{companyID:[0-9]+}", r.listQuotations).Methods("GET")
	quotations.HandleFunc("/company/{companyID:[0-9]+}", r.createQuotation).Methods("POST")
	quotations.HandleFunc("/{id:[0-9]+}", r.getQuotation).Methods("GET")
	quotations.HandleFunc("/{id:[0-9]+}", r.updateQuotation).Methods("PUT")
	quotations.HandleFunc("/{id:[0-9]+}", r.deleteQuotation).Methods("DELETE")
	quotations.HandleFunc("/{id:[0-9]+}/pdf", r.quotationPDF).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"build":  buildinfo.Summary(),
	})
}

// serveEvents upgrades to a websocket scoped to the caller's company
func (rt *Router) serveEvents(w http.ResponseWriter, req *http.Request) {
	companyID := middleware.CompanyID(req.Context())
	if companyID == 0 {
		respondError(w, http.StatusUnauthorized, "Missing company in token")
		return
	}
	websocket.ServeWs(rt.hub, companyID, w, req)
}

// PermissionFor resolves a user's grant for one module. It implements
// middleware.PermissionSource.
func (rt *Router) PermissionFor(userID, module string) (*models.Permission, error) {
	var perm models.Permission
	err := rt.db.Where("user_id = ? AND module_name = ?", userID, module).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

// broadcast publishes an event to the company's websocket clients
func (rt *Router) broadcast(companyID uint, eventType string, payload interface{}) {
	if rt.hub == nil {
		return
	}
	rt.hub.Broadcast(websocket.Event{Type: eventType, CompanyID: companyID, Payload: payload})
}

// respondJSON sends a success envelope
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// respondMessage sends a success envelope carrying only a message
func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// respondError sends a failure envelope
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
