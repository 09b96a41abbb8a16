package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/config"
	"github.com/dipanshu-patidar/accounting-arabic-api/internal/middleware"
)

func requestWithClaims(companyID uint) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	claims := jwt.MapClaims{"id": "u-1", "company_id": float64(companyID), "role": "user"}
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"id": "42"})
	id, err := pathID(req, "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected 42, got %d", id)
	}

	req = mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"id": "abc"})
	if _, err := pathID(req, "id"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestCompanyScope(t *testing.T) {
	req := mux.SetURLVars(requestWithClaims(7), map[string]string{"companyID": "7"})
	id, err := companyScope(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected company 7, got %d", id)
	}

	req = mux.SetURLVars(requestWithClaims(7), map[string]string{"companyID": "8"})
	if _, err := companyScope(req); err == nil {
		t.Error("expected mismatch error for foreign company")
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?page=3&bad=x", nil)
	if got := queryInt(req, "page", 1); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := queryInt(req, "bad", 5); got != 5 {
		t.Errorf("expected default 5 for malformed value, got %d", got)
	}
	if got := queryInt(req, "missing", 10); got != 10 {
		t.Errorf("expected default 10 for missing value, got %d", got)
	}
}

func TestResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]string{"k": "v"})

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["success"] != true {
		t.Error("success envelope should have success=true")
	}
	if body["data"] == nil {
		t.Error("success envelope should carry data")
	}

	rec = httptest.NewRecorder()
	respondError(rec, http.StatusBadRequest, "nope")
	body = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["success"] != false {
		t.Error("failure envelope should have success=false")
	}
	if body["message"] != "nope" {
		t.Errorf("expected message %q, got %v", "nope", body["message"])
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	r := NewRouter(nil, &config.Config{JWTSecret: "test-secret"}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["success"] != true {
		t.Error("health response should use the success envelope")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := NewRouter(nil, &config.Config{JWTSecret: "test-secret"}, nil)

	paths := []string{
		"/api/me",
		"/api/products/company/1",
		"/api/purchase-orders/company/1",
		"/api/vendors/company/1",
		"/api/quotations/company/1",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without token, got %d", path, rec.Code)
		}
	}
}
