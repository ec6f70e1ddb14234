package billing

import (
	"fmt"

	"github.com/google/uuid"

	"hearbill/internal/domain"
)

// paidTolerance absorbs round-off residue so an invoice settled to within a
// rupee counts as paid.
const paidTolerance = 1.00

// LedgerState is the derived payment position of an invoice.
type LedgerState struct {
	Payments   []domain.PaymentRecord
	TotalPaid  float64
	BalanceDue float64
	Status     domain.PaymentStatus
}

// ApplyPayment appends a payment to the invoice's ledger and re-derives the
// totals. The input slices are never mutated; existing payment records are
// append-only by contract.
func ApplyPayment(finalTotal float64, payments []domain.PaymentRecord, payment domain.PaymentRecord) (*LedgerState, error) {
	if payment.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidArgument)
	}
	next := make([]domain.PaymentRecord, 0, len(payments)+1)
	next = append(next, payments...)
	next = append(next, payment)
	return reduce(finalTotal, next), nil
}

// RemovePayment excludes the identified payment and re-derives the totals.
func RemovePayment(finalTotal float64, payments []domain.PaymentRecord, paymentID uuid.UUID) (*LedgerState, error) {
	next := make([]domain.PaymentRecord, 0, len(payments))
	found := false
	for _, p := range payments {
		if p.ID == paymentID {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return nil, domain.ErrPaymentNotFound
	}
	return reduce(finalTotal, next), nil
}

// Reduce derives the ledger state from an invoice total and its payment list
// without modifying either.
func Reduce(finalTotal float64, payments []domain.PaymentRecord) *LedgerState {
	next := make([]domain.PaymentRecord, len(payments))
	copy(next, payments)
	return reduce(finalTotal, next)
}

func reduce(finalTotal float64, payments []domain.PaymentRecord) *LedgerState {
	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}
	balance := finalTotal - paid
	if balance < 0 {
		balance = 0
	}

	status := domain.PaymentStatusUnpaid
	switch {
	case balance <= paidTolerance:
		status = domain.PaymentStatusPaid
	case paid > 0:
		status = domain.PaymentStatusPartial
	}

	return &LedgerState{
		Payments:   payments,
		TotalPaid:  paid,
		BalanceDue: balance,
		Status:     status,
	}
}
