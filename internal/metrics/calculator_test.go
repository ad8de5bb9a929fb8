package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() models.PropertyRecord {
	return models.PropertyRecord{
		Price:             200000,
		NOI:               16000,
		GrossRentalIncome: 24000,
		OperatingExpenses: 8000,
		TotalDebtService:  10000,
		CashInvested:      50000,
		OccupiedUnits:     9,
		TotalUnits:        10,
		SquareFootage:     1200,
	}
}

func TestComputeSampleRecord(t *testing.T) {
	m := Compute(sampleRecord())

	assert.InDelta(t, 6000.0, m.AnnualCashFlow, 1e-9)
	assert.InDelta(t, 12.0, m.CashOnCashReturn, 1e-9)
	assert.InDelta(t, 8.0, m.CapRate, 1e-9)
	assert.InDelta(t, 1.6, m.DSCR, 1e-9)
	assert.InDelta(t, 12.0, m.GrossRentalYield, 1e-9)
	assert.InDelta(t, 166.67, m.PricePerSqft, 0.005)
	assert.InDelta(t, 33.33, m.OER, 0.005)
	assert.InDelta(t, 12.0, m.ROI, 1e-9)
	assert.InDelta(t, 90.0, m.OccupancyRate, 1e-9)
	assert.InDelta(t, 8.0, m.NetYield, 1e-9)
	assert.InDelta(t, 75.0, m.BreakEvenRatio, 1e-9)
}

func TestComputeEmptyRecord(t *testing.T) {
	m := Compute(models.PropertyRecord{TotalUnits: 1})

	assert.True(t, math.IsInf(m.DSCR, 1), "dscr should be +Inf without debt service")
	for name, v := range map[string]float64{
		"annual_cash_flow":    m.AnnualCashFlow,
		"cash_on_cash_return": m.CashOnCashReturn,
		"cap_rate":            m.CapRate,
		"gross_rental_yield":  m.GrossRentalYield,
		"price_per_sqft":      m.PricePerSqft,
		"oer":                 m.OER,
		"roi":                 m.ROI,
		"occupancy_rate":      m.OccupancyRate,
		"net_yield":           m.NetYield,
		"break_even_ratio":    m.BreakEvenRatio,
	} {
		assert.Equal(t, 0.0, v, name)
	}
}

func TestComputeZeroDenominators(t *testing.T) {
	tests := []struct {
		name   string
		record models.PropertyRecord
		check  func(t *testing.T, m models.Metrics)
	}{
		{
			name:   "no cash invested",
			record: models.PropertyRecord{GrossRentalIncome: 30000, OperatingExpenses: 5000, TotalUnits: 1},
			check: func(t *testing.T, m models.Metrics) {
				assert.Equal(t, 0.0, m.CashOnCashReturn)
				assert.Equal(t, 0.0, m.ROI)
				assert.Equal(t, 25000.0, m.AnnualCashFlow)
			},
		},
		{
			name:   "no price",
			record: models.PropertyRecord{NOI: 10000, GrossRentalIncome: 20000, TotalUnits: 1},
			check: func(t *testing.T, m models.Metrics) {
				assert.Equal(t, 0.0, m.CapRate)
				assert.Equal(t, 0.0, m.GrossRentalYield)
				assert.Equal(t, 0.0, m.NetYield)
			},
		},
		{
			name:   "no gross income",
			record: models.PropertyRecord{OperatingExpenses: 4000, TotalDebtService: 6000, TotalUnits: 1},
			check: func(t *testing.T, m models.Metrics) {
				assert.Equal(t, 0.0, m.OER)
				assert.Equal(t, 0.0, m.BreakEvenRatio)
				assert.InDelta(t, 0.0, m.DSCR, 1e-12)
			},
		},
		{
			name:   "zero units",
			record: models.PropertyRecord{OccupiedUnits: 3, TotalUnits: 0},
			check: func(t *testing.T, m models.Metrics) {
				assert.Equal(t, 0.0, m.OccupancyRate)
			},
		},
		{
			name:   "no square footage",
			record: models.PropertyRecord{Price: 100000, TotalUnits: 1},
			check: func(t *testing.T, m models.Metrics) {
				assert.Equal(t, 0.0, m.PricePerSqft)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Compute(tt.record))
		})
	}
}

func TestComputeNegativeInputs(t *testing.T) {
	r := models.PropertyRecord{
		Price:             -100000,
		NOI:               -5000,
		GrossRentalIncome: -1000,
		OperatingExpenses: 2000,
		TotalDebtService:  -3000,
		CashInvested:      -10,
		OccupiedUnits:     -2,
		TotalUnits:        -1,
		SquareFootage:     -50,
	}

	var m models.Metrics
	require.NotPanics(t, func() { m = Compute(r) })

	assert.Equal(t, 0.0, m.CapRate)
	assert.Equal(t, 0.0, m.CashOnCashReturn)
	assert.Equal(t, 0.0, m.OccupancyRate)
	assert.Equal(t, 0.0, m.PricePerSqft)
	assert.True(t, math.IsInf(m.DSCR, 1))
	assert.InDelta(t, 0.0, m.AnnualCashFlow, 1e-9)
}

func TestComputeOccupancyAboveHundred(t *testing.T) {
	m := Compute(models.PropertyRecord{OccupiedUnits: 12, TotalUnits: 10})
	assert.InDelta(t, 120.0, m.OccupancyRate, 1e-9)
}

func TestROIMatchesCashOnCash(t *testing.T) {
	records := []models.PropertyRecord{
		sampleRecord(),
		{TotalUnits: 1},
		{GrossRentalIncome: 50000, OperatingExpenses: 70000, CashInvested: 1000, TotalUnits: 1},
		{GrossRentalIncome: 12345.67, OperatingExpenses: 234.5, TotalDebtService: 999, CashInvested: 33333, TotalUnits: 3},
	}
	for _, r := range records {
		m := Compute(r)
		assert.Equal(t, m.CashOnCashReturn, m.ROI)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	r := sampleRecord()
	assert.Equal(t, Compute(r), Compute(r))
}

func TestMissingFieldsMatchZeroFields(t *testing.T) {
	var missing, zeros models.PropertyRecord
	require.NoError(t, json.Unmarshal([]byte(`{"price": 100000}`), &missing))
	require.NoError(t, json.Unmarshal([]byte(`{"price": 100000, "noi": 0, "cash_invested": 0, "gross_rental_income": 0,
		"operating_expenses": 0, "total_debt_service": 0, "occupied_units": 0, "total_units": 1, "square_footage": 0}`), &zeros))

	assert.Equal(t, Compute(zeros), Compute(missing))
}
