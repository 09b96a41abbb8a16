package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

func TestDecodeStepSave(t *testing.T) {
	req := httptest.NewRequest("PUT", "/", strings.NewReader(`{"goods_receipt":{"received_by":"Ali"}}`))
	name, data, err := decodeStepSave(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != models.StepGoodsReceipt {
		t.Errorf("expected goods_receipt, got %q", name)
	}
	var body map[string]string
	if err := json.Unmarshal(data, &body); err != nil || body["received_by"] != "Ali" {
		t.Errorf("step data not preserved: %s", data)
	}

	req = httptest.NewRequest("PUT", "/", strings.NewReader(`{"bill":{},"payment":{}}`))
	if _, _, err := decodeStepSave(req); err == nil {
		t.Error("expected error for multi-step body")
	}

	req = httptest.NewRequest("PUT", "/", strings.NewReader(`{}`))
	if _, _, err := decodeStepSave(req); err == nil {
		t.Error("expected error for empty body")
	}

	req = httptest.NewRequest("PUT", "/", strings.NewReader(`not json`))
	if _, _, err := decodeStepSave(req); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestStepSaveStatus(t *testing.T) {
	status, message := stepSaveStatus(errNoReceivingWarehouse)
	if status != http.StatusBadRequest {
		t.Errorf("missing warehouse: status = %d, want 400", status)
	}
	if message != errNoReceivingWarehouse.Error() {
		t.Errorf("missing warehouse: message = %q", message)
	}

	status, message = stepSaveStatus(fmt.Errorf("receipt: %w", errNoReceivingWarehouse))
	if status != http.StatusBadRequest {
		t.Errorf("wrapped missing warehouse: status = %d, want 400", status)
	}

	status, message = stepSaveStatus(errors.New("pq: connection reset"))
	if status != http.StatusInternalServerError {
		t.Errorf("storage error: status = %d, want 500", status)
	}
	if strings.Contains(message, "connection") {
		t.Errorf("storage error detail leaked to client: %q", message)
	}
}

func TestStepAmount(t *testing.T) {
	if got := stepAmount(json.RawMessage(`{"amount":150.5}`), 300); got != 150.5 {
		t.Errorf("expected override 150.5, got %v", got)
	}
	if got := stepAmount(json.RawMessage(`{"note":"x"}`), 300); got != 300 {
		t.Errorf("expected fallback 300, got %v", got)
	}
	if got := stepAmount(nil, 300); got != 300 {
		t.Errorf("expected fallback 300 for nil data, got %v", got)
	}
	if got := stepAmount(json.RawMessage(`{"amount":-5}`), 300); got != 300 {
		t.Errorf("expected fallback 300 for non-positive override, got %v", got)
	}
}
