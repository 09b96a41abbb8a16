package workflow

import (
	"errors"
	"testing"

	"gorm.io/datatypes"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

func orderWithCompleted(completed ...models.StepName) *models.PurchaseOrder {
	done := make(map[models.StepName]bool, len(completed))
	for _, name := range completed {
		done[name] = true
	}

	order := &models.PurchaseOrder{Status: models.OrderStatusInProgress}
	for _, name := range models.StepOrder {
		status := models.StepStatusPending
		if done[name] {
			status = models.StepStatusCompleted
		}
		order.Steps = append(order.Steps, models.OrderStep{Step: name, Status: status})
	}
	return order
}

func TestStepSequence(t *testing.T) {
	tests := []struct {
		name     models.StepName
		index    int
		next     models.StepName
		hasNext  bool
		prev     models.StepName
		hasPrev  bool
	}{
		{models.StepQuotation, 0, models.StepPurchaseOrder, true, "", false},
		{models.StepPurchaseOrder, 1, models.StepGoodsReceipt, true, models.StepQuotation, true},
		{models.StepGoodsReceipt, 2, models.StepBill, true, models.StepPurchaseOrder, true},
		{models.StepBill, 3, models.StepPayment, true, models.StepGoodsReceipt, true},
		{models.StepPayment, 4, "", false, models.StepBill, true},
	}

	for _, tc := range tests {
		if got := Index(tc.name); got != tc.index {
			t.Errorf("Index(%s) = %d, want %d", tc.name, got, tc.index)
		}
		next, ok := Next(tc.name)
		if ok != tc.hasNext || next != tc.next {
			t.Errorf("Next(%s) = %s,%v, want %s,%v", tc.name, next, ok, tc.next, tc.hasNext)
		}
		prev, ok := Prev(tc.name)
		if ok != tc.hasPrev || prev != tc.prev {
			t.Errorf("Prev(%s) = %s,%v, want %s,%v", tc.name, prev, ok, tc.prev, tc.hasPrev)
		}
	}

	if Index("shipping") != -1 {
		t.Error("Index of unknown step should be -1")
	}
	if !IsFinal(models.StepPayment) {
		t.Error("payment should be the final step")
	}
	if IsFinal(models.StepBill) {
		t.Error("bill should not be the final step")
	}
}

func TestInitialSteps(t *testing.T) {
	data := datatypes.JSON([]byte(`{"vendor_name":"Acme Metals"}`))
	steps := InitialSteps(data)

	if len(steps) != len(models.StepOrder) {
		t.Fatalf("Got %d steps, want %d", len(steps), len(models.StepOrder))
	}

	for i, s := range steps {
		if s.Step != models.StepOrder[i] {
			t.Errorf("Step %d = %s, want %s", i, s.Step, models.StepOrder[i])
		}
		if s.Step == models.StepQuotation {
			if s.Status != models.StepStatusCompleted {
				t.Errorf("Quotation step status = %s, want completed", s.Status)
			}
			if string(s.Data) != string(data) {
				t.Errorf("Quotation data = %s, want %s", s.Data, data)
			}
			if s.CompletedAt == nil {
				t.Error("Quotation step should have a completion time")
			}
		} else {
			if s.Status != models.StepStatusPending {
				t.Errorf("%s status = %s, want pending", s.Step, s.Status)
			}
			if string(s.Data) != "{}" {
				t.Errorf("%s data = %s, want {}", s.Step, s.Data)
			}
		}
	}
}

func TestInitialStepsEmptyPayload(t *testing.T) {
	steps := InitialSteps(nil)
	if string(steps[0].Data) != "{}" {
		t.Errorf("Empty payload should default to {}, got %s", steps[0].Data)
	}
}

func TestCanSaveOrderedCompletion(t *testing.T) {
	tests := []struct {
		name      string
		completed []models.StepName
		save      models.StepName
		wantErr   bool
		pending   models.StepName
	}{
		{"quotation always writable", nil, models.StepQuotation, false, ""},
		{"purchase_order after quotation", []models.StepName{models.StepQuotation}, models.StepPurchaseOrder, false, ""},
		{"goods_receipt blocked by purchase_order", []models.StepName{models.StepQuotation}, models.StepGoodsReceipt, true, models.StepPurchaseOrder},
		{"bill blocked by goods_receipt", []models.StepName{models.StepQuotation, models.StepPurchaseOrder}, models.StepBill, true, models.StepGoodsReceipt},
		{"payment after all four", []models.StepName{models.StepQuotation, models.StepPurchaseOrder, models.StepGoodsReceipt, models.StepBill}, models.StepPayment, false, ""},
		{"payment blocked by bill", []models.StepName{models.StepQuotation, models.StepPurchaseOrder, models.StepGoodsReceipt}, models.StepPayment, true, models.StepBill},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			order := orderWithCompleted(tc.completed...)
			err := CanSave(order, tc.save)
			if tc.wantErr {
				var pse *PriorStepError
				if !errors.As(err, &pse) {
					t.Fatalf("CanSave(%s) = %v, want PriorStepError", tc.save, err)
				}
				if pse.Pending != tc.pending {
					t.Errorf("Blocking step = %s, want %s", pse.Pending, tc.pending)
				}
			} else if err != nil {
				t.Errorf("CanSave(%s) = %v, want nil", tc.save, err)
			}
		})
	}
}

func TestCanSaveResaveCompleted(t *testing.T) {
	order := orderWithCompleted(models.StepQuotation, models.StepPurchaseOrder)
	if err := CanSave(order, models.StepPurchaseOrder); err != nil {
		t.Errorf("Re-saving a completed step should be allowed, got %v", err)
	}
}

func TestCanSaveCancelledOrder(t *testing.T) {
	order := orderWithCompleted(models.StepQuotation)
	order.Status = models.OrderStatusCancelled

	if err := CanSave(order, models.StepQuotation); !errors.Is(err, ErrOrderCancelled) {
		t.Errorf("CanSave on cancelled order = %v, want ErrOrderCancelled", err)
	}
}

func TestCanSaveUnknownStep(t *testing.T) {
	order := orderWithCompleted()
	if err := CanSave(order, "delivery"); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("CanSave(delivery) = %v, want ErrUnknownStep", err)
	}
}

func TestMaterializeFillsMissingSteps(t *testing.T) {
	// Persisted order with only two step rows
	steps := []models.OrderStep{
		{Step: models.StepBill, Status: models.StepStatusPending},
		{Step: models.StepQuotation, Status: models.StepStatusCompleted, Data: datatypes.JSON([]byte(`{"a":1}`))},
	}

	out := Materialize(steps)
	if len(out) != len(models.StepOrder) {
		t.Fatalf("Got %d steps, want %d", len(out), len(models.StepOrder))
	}

	for i, s := range out {
		if s.Step != models.StepOrder[i] {
			t.Errorf("Step %d = %s, want %s", i, s.Step, models.StepOrder[i])
		}
		if len(s.Data) == 0 {
			t.Errorf("%s data should never be empty", s.Step)
		}
	}

	if string(out[0].Data) != `{"a":1}` {
		t.Errorf("Existing data lost: %s", out[0].Data)
	}
	if out[1].Status != models.StepStatusPending {
		t.Errorf("Synthesized step status = %s, want pending", out[1].Status)
	}
}

func TestOrderStatusAfter(t *testing.T) {
	if got := OrderStatusAfter(models.StepPayment, models.OrderStatusInProgress); got != models.OrderStatusCompleted {
		t.Errorf("Completing payment should complete the order, got %s", got)
	}
	if got := OrderStatusAfter(models.StepBill, models.OrderStatusInProgress); got != models.OrderStatusInProgress {
		t.Errorf("Completing bill should keep the order in progress, got %s", got)
	}
	if got := OrderStatusAfter(models.StepPayment, models.OrderStatusCancelled); got != models.OrderStatusCancelled {
		t.Errorf("Cancelled order should stay cancelled, got %s", got)
	}
}
