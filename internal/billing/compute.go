package billing

import (
	"fmt"
	"math"

	"hearbill/internal/domain"
)

// LineInput is a single line item fed into the tax engine. Quantity 0 is
// treated as 1 so callers that only track serialized units can omit it.
type LineInput struct {
	UnitPrice      float64
	Quantity       float64
	GSTRatePercent float64
}

// LineResult carries the per-item figures computed by ComputeInvoice.
type LineResult struct {
	UnitPrice      float64
	Quantity       float64
	GSTRatePercent float64
	ItemDiscount   float64
	TaxableValue   float64
	CGSTAmount     float64
	SGSTAmount     float64
	IGSTAmount     float64
	LineTotal      float64
}

// Computation aggregates the invoice-level totals.
type Computation struct {
	Items             []LineResult
	Subtotal          float64
	TotalDiscount     float64
	TotalTaxableValue float64
	TotalCGST         float64
	TotalSGST         float64
	TotalIGST         float64
	TotalTax          float64
	FinalTotal        float64
}

// ComputeInvoice runs the GST computation over a set of line items.
//
// The invoice-level discount is allocated to items proportionally by their
// share of the subtotal, each item is taxed on its discounted value, and the
// tax is split CGST/SGST for intra-state supply or assigned wholly to IGST
// for inter-state supply. A GST rate of 0 is a valid exempt rate. An empty
// item list yields an all-zero Computation.
//
// Full float64 precision is carried end to end; rounding to whole rupees
// happens only at presentation boundaries via RoundTotal.
func ComputeInvoice(items []LineInput, discountType domain.DiscountType, discountValue float64, placeOfSupply domain.PlaceOfSupply) (*Computation, error) {
	if discountValue < 0 {
		return nil, fmt.Errorf("%w: discount value must not be negative", domain.ErrInvalidArgument)
	}
	switch discountType {
	case domain.DiscountFlat, domain.DiscountPercent:
	default:
		return nil, fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidArgument, discountType)
	}
	switch placeOfSupply {
	case domain.IntraState, domain.InterState:
	default:
		return nil, fmt.Errorf("%w: unknown place of supply %q", domain.ErrInvalidArgument, placeOfSupply)
	}
	for i, it := range items {
		if it.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: item %d has negative unit price", domain.ErrInvalidArgument, i)
		}
		if it.Quantity < 0 {
			return nil, fmt.Errorf("%w: item %d has negative quantity", domain.ErrInvalidArgument, i)
		}
		if it.GSTRatePercent < 0 {
			return nil, fmt.Errorf("%w: item %d has negative GST rate", domain.ErrInvalidArgument, i)
		}
	}

	comp := &Computation{Items: make([]LineResult, 0, len(items))}

	var subtotal float64
	lineAmounts := make([]float64, len(items))
	for i, it := range items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		lineAmounts[i] = it.UnitPrice * qty
		subtotal += lineAmounts[i]
	}
	comp.Subtotal = subtotal

	totalDiscount := discountValue
	if discountType == domain.DiscountPercent {
		totalDiscount = subtotal * discountValue / 100
	}
	comp.TotalDiscount = totalDiscount

	for i, it := range items {
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}

		// Proportional allocation; a zero subtotal allocates nothing.
		var itemDiscount float64
		if subtotal > 0 {
			itemDiscount = totalDiscount * (lineAmounts[i] / subtotal)
		}

		taxable := lineAmounts[i] - itemDiscount
		tax := taxable * it.GSTRatePercent / 100

		line := LineResult{
			UnitPrice:      it.UnitPrice,
			Quantity:       qty,
			GSTRatePercent: it.GSTRatePercent,
			ItemDiscount:   itemDiscount,
			TaxableValue:   taxable,
		}
		if placeOfSupply == domain.IntraState {
			line.CGSTAmount = tax / 2
			line.SGSTAmount = tax / 2
		} else {
			line.IGSTAmount = tax
		}
		line.LineTotal = taxable + line.CGSTAmount + line.SGSTAmount + line.IGSTAmount

		comp.Items = append(comp.Items, line)
		comp.TotalTaxableValue += taxable
		comp.TotalCGST += line.CGSTAmount
		comp.TotalSGST += line.SGSTAmount
		comp.TotalIGST += line.IGSTAmount
	}

	comp.TotalTax = comp.TotalCGST + comp.TotalSGST + comp.TotalIGST
	comp.FinalTotal = comp.TotalTaxableValue + comp.TotalTax
	return comp, nil
}

// RoundTotal rounds a grand total to the nearest whole rupee and returns the
// round-off residual alongside it. The residual is always within ±0.50 and is
// shown as an explicit round-off line on printed documents and exports.
func RoundTotal(total float64) (rounded, roundOff float64) {
	rounded = math.Round(total)
	return rounded, rounded - total
}
