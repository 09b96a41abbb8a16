package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/utils"
)

const testSecret = "middleware-test-secret"

func testToken(t *testing.T, role string) string {
	t.Helper()
	user := &models.User{ID: "user-1", Email: "u@example.com", Role: role, CompanyID: 3}
	access, _, err := utils.GenerateTokens(user, testSecret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return access
}

func protectedHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == "" {
			t.Error("UserID missing from context")
		}
		if CompanyID(r.Context()) != 3 {
			t.Errorf("CompanyID = %d, want 3", CompanyID(r.Context()))
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthValidToken(t *testing.T) {
	handler := Auth(testSecret)(protectedHandler(t))

	req := httptest.NewRequest("GET", "/api/products/company/3", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "user"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", w.Code)
	}
}

func TestAuthRejects(t *testing.T) {
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer garbage"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("Status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	handler := Auth("other-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "user"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", w.Code)
	}
}

// fakePermissions grants a fixed permission row per module
type fakePermissions struct {
	perms map[string]*models.Permission
}

func (f *fakePermissions) PermissionFor(userID, module string) (*models.Permission, error) {
	return f.perms[module], nil
}

func TestRequirePermission(t *testing.T) {
	src := &fakePermissions{perms: map[string]*models.Permission{
		ModuleInventory: {ModuleName: ModuleInventory, CanView: true, CanCreate: false},
	}}

	run := func(role, module, action string) int {
		var chain http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		chain = RequirePermission(src, module, action)(chain)
		chain = Auth(testSecret)(chain)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, role))
		w := httptest.NewRecorder()
		chain.ServeHTTP(w, req)
		return w.Code
	}

	if code := run("user", ModuleInventory, "view"); code != http.StatusOK {
		t.Errorf("Granted view = %d, want 200", code)
	}
	if code := run("user", ModuleInventory, "create"); code != http.StatusForbidden {
		t.Errorf("Denied create = %d, want 403", code)
	}
	if code := run("user", ModuleVendors, "view"); code != http.StatusForbidden {
		t.Errorf("Missing module grant = %d, want 403", code)
	}
	// Admin bypasses the permission table entirely
	if code := run("admin", ModuleVendors, "delete"); code != http.StatusOK {
		t.Errorf("Admin bypass = %d, want 200", code)
	}
}
