// Package metrics computes standardized real-estate investment ratios from a
// property record. Every function here is pure and safe for concurrent use.
package metrics

import (
	"math"

	"github.com/Dan9191/property-service/internal/models"
)

// Compute derives the investment metrics for a record. Ratios whose
// denominator is zero or negative resolve to 0, except DSCR which resolves to
// +Inf when there is no debt service.
func Compute(r models.PropertyRecord) models.Metrics {
	occupied := float64(r.OccupiedUnits)
	units := float64(r.TotalUnits)

	annualCashFlow := r.GrossRentalIncome - r.OperatingExpenses - r.TotalDebtService

	return models.Metrics{
		AnnualCashFlow:   annualCashFlow,
		CashOnCashReturn: percent(annualCashFlow, r.CashInvested),
		CapRate:          percent(r.NOI, r.Price),
		DSCR:             coverage(r.NOI, r.TotalDebtService),
		GrossRentalYield: percent(r.GrossRentalIncome, r.Price),
		PricePerSqft:     ratio(r.Price, r.SquareFootage),
		OER:              percent(r.OperatingExpenses, r.GrossRentalIncome),
		ROI:              percent(annualCashFlow, r.CashInvested),
		OccupancyRate:    percent(occupied, units),
		NetYield:         percent(annualCashFlow+r.TotalDebtService, r.Price),
		BreakEvenRatio:   percent(r.OperatingExpenses+r.TotalDebtService, r.GrossRentalIncome),
	}
}

func ratio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}

func percent(num, den float64) float64 {
	if den > 0 {
		return num / den * 100
	}
	return 0
}

// coverage is the debt service coverage ratio. No debt means unlimited coverage.
func coverage(noi, debtService float64) float64 {
	if debtService > 0 {
		return noi / debtService
	}
	return math.Inf(1)
}
