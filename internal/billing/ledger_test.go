package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearbill/internal/domain"
)

func TestApplyPayment_FullPayment(t *testing.T) {
	state, err := ApplyPayment(1000, nil, domain.PaymentRecord{
		ID: uuid.New(), Amount: 1000, Method: domain.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1000, state.TotalPaid, epsilon)
	assert.Zero(t, state.BalanceDue)
	assert.Equal(t, domain.PaymentStatusPaid, state.Status)
}

func TestApplyPayment_PartialPayment(t *testing.T) {
	state, err := ApplyPayment(1000, nil, domain.PaymentRecord{
		ID: uuid.New(), Amount: 400, Method: domain.PaymentMethodUPI,
	})
	require.NoError(t, err)

	assert.InDelta(t, 600, state.BalanceDue, epsilon)
	assert.Equal(t, domain.PaymentStatusPartial, state.Status)
}

func TestApplyPayment_WithinRoundingToleranceIsPaid(t *testing.T) {
	state, err := ApplyPayment(1000.75, nil, domain.PaymentRecord{
		ID: uuid.New(), Amount: 1000,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.75, state.BalanceDue, epsilon)
	assert.Equal(t, domain.PaymentStatusPaid, state.Status)
}

func TestApplyPayment_OverpaymentClampsBalance(t *testing.T) {
	state, err := ApplyPayment(1000, nil, domain.PaymentRecord{
		ID: uuid.New(), Amount: 1500,
	})
	require.NoError(t, err)

	assert.Zero(t, state.BalanceDue)
	assert.Equal(t, domain.PaymentStatusPaid, state.Status)
}

func TestApplyPayment_DoesNotMutateInput(t *testing.T) {
	existing := []domain.PaymentRecord{{ID: uuid.New(), Amount: 300}}
	state, err := ApplyPayment(1000, existing, domain.PaymentRecord{ID: uuid.New(), Amount: 200})
	require.NoError(t, err)

	assert.Len(t, existing, 1)
	assert.Len(t, state.Payments, 2)
	assert.InDelta(t, 500, state.TotalPaid, epsilon)
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	_, err := ApplyPayment(1000, nil, domain.PaymentRecord{ID: uuid.New(), Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = ApplyPayment(1000, nil, domain.PaymentRecord{ID: uuid.New(), Amount: -50})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRemovePayment_RestoresUnpaid(t *testing.T) {
	payID := uuid.New()
	payments := []domain.PaymentRecord{{ID: payID, Amount: 1000}}

	state, err := RemovePayment(1000, payments, payID)
	require.NoError(t, err)

	assert.Empty(t, state.Payments)
	assert.InDelta(t, 1000, state.BalanceDue, epsilon)
	assert.Equal(t, domain.PaymentStatusUnpaid, state.Status)
}

func TestRemovePayment_DowngradesToPartial(t *testing.T) {
	first := domain.PaymentRecord{ID: uuid.New(), Amount: 600}
	second := domain.PaymentRecord{ID: uuid.New(), Amount: 400}

	state, err := RemovePayment(1000, []domain.PaymentRecord{first, second}, second.ID)
	require.NoError(t, err)

	assert.InDelta(t, 400, state.BalanceDue, epsilon)
	assert.Equal(t, domain.PaymentStatusPartial, state.Status)
}

func TestRemovePayment_UnknownID(t *testing.T) {
	_, err := RemovePayment(1000, []domain.PaymentRecord{{ID: uuid.New(), Amount: 100}}, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestReduce_NoPayments(t *testing.T) {
	state := Reduce(500, nil)
	assert.InDelta(t, 500, state.BalanceDue, epsilon)
	assert.Equal(t, domain.PaymentStatusUnpaid, state.Status)
}
