package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearbill/internal/domain"
)

const epsilon = 1e-9

func TestComputeInvoice_FlatDiscountIntraState(t *testing.T) {
	comp, err := ComputeInvoice(
		[]LineInput{{UnitPrice: 10000, GSTRatePercent: 18}},
		domain.DiscountFlat, 1000, domain.IntraState,
	)
	require.NoError(t, err)

	require.Len(t, comp.Items, 1)
	item := comp.Items[0]
	assert.InDelta(t, 9000, item.TaxableValue, epsilon)
	assert.InDelta(t, 810, item.CGSTAmount, epsilon)
	assert.InDelta(t, 810, item.SGSTAmount, epsilon)
	assert.Zero(t, item.IGSTAmount)
	assert.InDelta(t, 10620, item.LineTotal, epsilon)

	assert.InDelta(t, 10000, comp.Subtotal, epsilon)
	assert.InDelta(t, 1000, comp.TotalDiscount, epsilon)
	assert.InDelta(t, 1620, comp.TotalTax, epsilon)
	assert.InDelta(t, 10620, comp.FinalTotal, epsilon)
}

func TestComputeInvoice_PercentDiscountInterState(t *testing.T) {
	comp, err := ComputeInvoice(
		[]LineInput{
			{UnitPrice: 6000, GSTRatePercent: 18},
			{UnitPrice: 4000, GSTRatePercent: 18},
		},
		domain.DiscountPercent, 10, domain.InterState,
	)
	require.NoError(t, err)

	assert.InDelta(t, 10000, comp.Subtotal, epsilon)
	assert.InDelta(t, 1000, comp.TotalDiscount, epsilon)

	// Discount allocated proportionally by share of subtotal.
	assert.InDelta(t, 600, comp.Items[0].ItemDiscount, epsilon)
	assert.InDelta(t, 400, comp.Items[1].ItemDiscount, epsilon)

	// Inter-state: everything lands in IGST.
	assert.Zero(t, comp.TotalCGST)
	assert.Zero(t, comp.TotalSGST)
	assert.InDelta(t, 1620, comp.TotalIGST, epsilon)
	assert.InDelta(t, 10620, comp.FinalTotal, epsilon)
}

func TestComputeInvoice_EmptyItems(t *testing.T) {
	comp, err := ComputeInvoice(nil, domain.DiscountFlat, 0, domain.IntraState)
	require.NoError(t, err)

	assert.Empty(t, comp.Items)
	assert.Zero(t, comp.Subtotal)
	assert.Zero(t, comp.TotalTax)
	assert.Zero(t, comp.FinalTotal)
}

func TestComputeInvoice_ZeroSubtotalWithDiscount(t *testing.T) {
	comp, err := ComputeInvoice(
		[]LineInput{{UnitPrice: 0, GSTRatePercent: 18}},
		domain.DiscountFlat, 500, domain.IntraState,
	)
	require.NoError(t, err)

	// Zero-allocation rule: nothing to distribute, no division by zero.
	assert.Zero(t, comp.Items[0].ItemDiscount)
	assert.Zero(t, comp.Items[0].TaxableValue)
	assert.Zero(t, comp.FinalTotal)
}

func TestComputeInvoice_ZeroRateIsExempt(t *testing.T) {
	// Hearing aids are GST-exempt; rate 0 must not be treated as unset.
	comp, err := ComputeInvoice(
		[]LineInput{{UnitPrice: 25000, GSTRatePercent: 0}},
		domain.DiscountFlat, 0, domain.IntraState,
	)
	require.NoError(t, err)

	assert.InDelta(t, 25000, comp.Items[0].TaxableValue, epsilon)
	assert.Zero(t, comp.TotalTax)
	assert.InDelta(t, 25000, comp.FinalTotal, epsilon)
}

func TestComputeInvoice_QuantityDefaultsToOne(t *testing.T) {
	comp, err := ComputeInvoice(
		[]LineInput{{UnitPrice: 500, Quantity: 0, GSTRatePercent: 12}},
		domain.DiscountFlat, 0, domain.IntraState,
	)
	require.NoError(t, err)

	assert.InDelta(t, 1, comp.Items[0].Quantity, epsilon)
	assert.InDelta(t, 500, comp.Subtotal, epsilon)
}

func TestComputeInvoice_Invariants(t *testing.T) {
	items := []LineInput{
		{UnitPrice: 19999.99, GSTRatePercent: 18},
		{UnitPrice: 1250.50, Quantity: 2, GSTRatePercent: 12},
		{UnitPrice: 25000, GSTRatePercent: 0},
	}

	for _, pos := range []domain.PlaceOfSupply{domain.IntraState, domain.InterState} {
		comp, err := ComputeInvoice(items, domain.DiscountPercent, 7.5, pos)
		require.NoError(t, err)

		var taxableSum float64
		for _, it := range comp.Items {
			taxableSum += it.TaxableValue
			itemTax := it.CGSTAmount + it.SGSTAmount + it.IGSTAmount
			assert.InDelta(t, it.TaxableValue+itemTax, it.LineTotal, epsilon)

			// Exactly one of {CGST+SGST, IGST} is populated.
			if pos == domain.IntraState {
				assert.Zero(t, it.IGSTAmount)
				assert.InDelta(t, it.CGSTAmount, it.SGSTAmount, epsilon)
			} else {
				assert.Zero(t, it.CGSTAmount)
				assert.Zero(t, it.SGSTAmount)
			}
		}
		assert.InDelta(t, comp.TotalTaxableValue, taxableSum, epsilon)
		assert.InDelta(t, comp.TotalTaxableValue+comp.TotalTax, comp.FinalTotal, epsilon)
	}
}

func TestComputeInvoice_Idempotent(t *testing.T) {
	items := []LineInput{{UnitPrice: 10000, GSTRatePercent: 18}}

	first, err := ComputeInvoice(items, domain.DiscountFlat, 1000, domain.IntraState)
	require.NoError(t, err)
	second, err := ComputeInvoice(items, domain.DiscountFlat, 1000, domain.IntraState)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeInvoice_RejectsNegativeInputs(t *testing.T) {
	cases := []struct {
		name  string
		items []LineInput
		dType domain.DiscountType
		dVal  float64
	}{
		{"negative price", []LineInput{{UnitPrice: -1}}, domain.DiscountFlat, 0},
		{"negative quantity", []LineInput{{UnitPrice: 100, Quantity: -2}}, domain.DiscountFlat, 0},
		{"negative rate", []LineInput{{UnitPrice: 100, GSTRatePercent: -18}}, domain.DiscountFlat, 0},
		{"negative discount", []LineInput{{UnitPrice: 100}}, domain.DiscountFlat, -50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeInvoice(tc.items, tc.dType, tc.dVal, domain.IntraState)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestComputeInvoice_RejectsUnknownEnums(t *testing.T) {
	_, err := ComputeInvoice(nil, domain.DiscountType("bogus"), 0, domain.IntraState)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = ComputeInvoice(nil, domain.DiscountFlat, 0, domain.PlaceOfSupply("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRoundTotal(t *testing.T) {
	rounded, off := RoundTotal(10619.60)
	assert.InDelta(t, 10620, rounded, epsilon)
	assert.InDelta(t, 0.40, off, epsilon)

	rounded, off = RoundTotal(10620)
	assert.InDelta(t, 10620, rounded, epsilon)
	assert.Zero(t, off)

	_, off = RoundTotal(999.49)
	assert.LessOrEqual(t, off, 0.50)
	assert.GreaterOrEqual(t, off, -0.50)
}
