package middleware

import (
	"net/http"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

// Application modules gated by permissions
const (
	ModuleInventory      = "inventory"
	ModuleWarehouses     = "warehouses"
	ModulePointOfSale    = "point_of_sale"
	ModulePurchaseOrders = "purchase_orders"
	ModuleVendors        = "vendors"
	ModuleQuotations     = "quotations"
)

// PermissionSource resolves the acting user's permission for one module.
// A nil permission with nil error means no grant exists.
type PermissionSource interface {
	PermissionFor(userID, module string) (*models.Permission, error)
}

// ActionForMethod maps an HTTP method to the permission action it needs
func ActionForMethod(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "view"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return ""
}

// RequireModule enforces the module grant matching the request method
func RequireModule(src PermissionSource, module string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action := ActionForMethod(r.Method)
			if action == "" {
				deny(w, http.StatusMethodNotAllowed, "Unsupported method")
				return
			}
			RequirePermission(src, module, action)(next).ServeHTTP(w, r)
		})
	}
}

// RequirePermission enforces a module/action grant. Admins bypass the
// lookup. The check runs before the handler, so a denied request performs
// no writes.
func RequirePermission(src PermissionSource, module, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Role(r.Context()) == "admin" {
				next.ServeHTTP(w, r)
				return
			}

			userID := UserID(r.Context())
			if userID == "" {
				deny(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			perm, err := src.PermissionFor(userID, module)
			if err != nil {
				deny(w, http.StatusInternalServerError, "Failed to resolve permissions")
				return
			}
			if perm == nil || !perm.Allows(action) {
				deny(w, http.StatusForbidden, "You don't have permission to "+action+" "+module)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
