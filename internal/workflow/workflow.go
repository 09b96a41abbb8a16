// Package workflow implements the five-step purchase order lifecycle:
// quotation -> purchase_order -> goods_receipt -> bill -> payment.
//
// A step may only be saved once every prior step is completed. Saving a
// step marks it completed; completed steps may be re-saved. A cancelled
// order rejects all step writes.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/dipanshu-patidar/accounting-arabic-api/internal/models"
)

var (
	// ErrUnknownStep is returned for step names outside the fixed sequence
	ErrUnknownStep = errors.New("unknown workflow step")

	// ErrOrderCancelled is returned when writing a step of a cancelled order
	ErrOrderCancelled = errors.New("purchase order is cancelled")
)

// PriorStepError reports which prior step blocks a save
type PriorStepError struct {
	Blocked models.StepName
	Pending models.StepName
}

func (e *PriorStepError) Error() string {
	return fmt.Sprintf("cannot save step %q: step %q is not completed", e.Blocked, e.Pending)
}

// Index returns the position of a step in the fixed sequence, or -1
func Index(name models.StepName) int {
	for i, s := range models.StepOrder {
		if s == name {
			return i
		}
	}
	return -1
}

// Next returns the step after name, if any
func Next(name models.StepName) (models.StepName, bool) {
	i := Index(name)
	if i < 0 || i >= len(models.StepOrder)-1 {
		return "", false
	}
	return models.StepOrder[i+1], true
}

// Prev returns the step before name, if any
func Prev(name models.StepName) (models.StepName, bool) {
	i := Index(name)
	if i <= 0 {
		return "", false
	}
	return models.StepOrder[i-1], true
}

// IsFinal reports whether name is the last step of the sequence
func IsFinal(name models.StepName) bool {
	return Index(name) == len(models.StepOrder)-1
}

// InitialSteps builds the five step records for a new order. The quotation
// step carries the creation payload and is completed; the rest are pending.
func InitialSteps(quotationData datatypes.JSON) []models.OrderStep {
	now := time.Now()
	steps := make([]models.OrderStep, 0, len(models.StepOrder))
	for _, name := range models.StepOrder {
		step := models.OrderStep{
			Step:   name,
			Status: models.StepStatusPending,
			Data:   datatypes.JSON([]byte("{}")),
		}
		if name == models.StepQuotation {
			if len(quotationData) > 0 {
				step.Data = quotationData
			}
			step.Status = models.StepStatusCompleted
			step.CompletedAt = &now
		}
		steps = append(steps, step)
	}
	return steps
}

// CanSave checks whether the named step of the order may be written.
// Every step before it must be completed.
func CanSave(order *models.PurchaseOrder, name models.StepName) error {
	idx := Index(name)
	if idx < 0 {
		return ErrUnknownStep
	}
	if order.Status == models.OrderStatusCancelled {
		return ErrOrderCancelled
	}
	for _, prior := range models.StepOrder[:idx] {
		step := order.StepByName(prior)
		if step == nil || step.Status != models.StepStatusCompleted {
			return &PriorStepError{Blocked: name, Pending: prior}
		}
	}
	return nil
}

// Materialize returns the steps in canonical order, synthesizing any
// missing step as pending with empty data. Readers always see five steps.
func Materialize(steps []models.OrderStep) []models.OrderStep {
	byName := make(map[models.StepName]models.OrderStep, len(steps))
	for _, s := range steps {
		byName[s.Step] = s
	}

	out := make([]models.OrderStep, 0, len(models.StepOrder))
	for _, name := range models.StepOrder {
		if s, ok := byName[name]; ok {
			if len(s.Data) == 0 {
				s.Data = datatypes.JSON([]byte("{}"))
			}
			out = append(out, s)
			continue
		}
		out = append(out, models.OrderStep{
			Step:   name,
			Status: models.StepStatusPending,
			Data:   datatypes.JSON([]byte("{}")),
		})
	}
	return out
}

// OrderStatusAfter derives the aggregate status once the named step has
// been completed. Completing payment completes the order.
func OrderStatusAfter(name models.StepName, current models.OrderStatus) models.OrderStatus {
	if current == models.OrderStatusCancelled {
		return current
	}
	if IsFinal(name) {
		return models.OrderStatusCompleted
	}
	return models.OrderStatusInProgress
}
