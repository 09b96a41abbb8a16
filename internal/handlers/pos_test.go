package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/config"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
)

func checkoutRequest(body string) *http.Request {
	req := httptest.NewRequest("POST", "/api/invoices", strings.NewReader(body))
	claims := jwt.MapClaims{"id": "u-1", "company_id": float64(1), "role": "admin"}
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

// Checkout validation runs before any storage access, so these cases are
// exercised against a router with no database behind it.
func TestCreateInvoiceValidation(t *testing.T) {
	rt := NewRouter(nil, &config.Config{JWTSecret: "test-secret"}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing customer", `{"warehouse_id":1,"items":[{"product_id":1,"qty":1}]}`},
		{"empty cart", `{"customer_name":"Walk-in","warehouse_id":1,"items":[]}`},
		{"tax at -100", `{"customer_name":"Walk-in","warehouse_id":1,"tax_percent":-100,"items":[{"product_id":1,"qty":1}]}`},
		{"tax below -100", `{"customer_name":"Walk-in","warehouse_id":1,"tax_percent":-250,"items":[{"product_id":1,"qty":1}]}`},
		{"malformed body", `not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.createInvoice(rec, checkoutRequest(tc.body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}
