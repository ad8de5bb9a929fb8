package models

import (
	"encoding/json"
	"time"
)

// Metrics holds the standardized investment ratios computed for one record.
// Percentages are already multiplied by 100. DSCR is +Inf when the record
// carries no debt service; other ratios can overflow to ±Inf on extreme inputs.
type Metrics struct {
	AnnualCashFlow   float64 `json:"annual_cash_flow"`
	CashOnCashReturn float64 `json:"cash_on_cash_return"`
	CapRate          float64 `json:"cap_rate"`
	DSCR             float64 `json:"dscr"`
	GrossRentalYield float64 `json:"gross_rental_yield"`
	PricePerSqft     float64 `json:"price_per_sqft"`
	OER              float64 `json:"oer"`
	ROI              float64 `json:"roi"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	NetYield         float64 `json:"net_yield"`
	BreakEvenRatio   float64 `json:"break_even_ratio"`
}

// metricsJSON is the wire form of Metrics. Every ratio goes through Number
// so an infinite or undefined value survives encoding/json.
type metricsJSON struct {
	AnnualCashFlow   Number `json:"annual_cash_flow"`
	CashOnCashReturn Number `json:"cash_on_cash_return"`
	CapRate          Number `json:"cap_rate"`
	DSCR             Number `json:"dscr"`
	GrossRentalYield Number `json:"gross_rental_yield"`
	PricePerSqft     Number `json:"price_per_sqft"`
	OER              Number `json:"oer"`
	ROI              Number `json:"roi"`
	OccupancyRate    Number `json:"occupancy_rate"`
	NetYield         Number `json:"net_yield"`
	BreakEvenRatio   Number `json:"break_even_ratio"`
}

// MarshalJSON implements json.Marshaler.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(metricsJSON{
		AnnualCashFlow:   Number(m.AnnualCashFlow),
		CashOnCashReturn: Number(m.CashOnCashReturn),
		CapRate:          Number(m.CapRate),
		DSCR:             Number(m.DSCR),
		GrossRentalYield: Number(m.GrossRentalYield),
		PricePerSqft:     Number(m.PricePerSqft),
		OER:              Number(m.OER),
		ROI:              Number(m.ROI),
		OccupancyRate:    Number(m.OccupancyRate),
		NetYield:         Number(m.NetYield),
		BreakEvenRatio:   Number(m.BreakEvenRatio),
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var aux metricsJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Metrics{
		AnnualCashFlow:   float64(aux.AnnualCashFlow),
		CashOnCashReturn: float64(aux.CashOnCashReturn),
		CapRate:          float64(aux.CapRate),
		DSCR:             float64(aux.DSCR),
		GrossRentalYield: float64(aux.GrossRentalYield),
		PricePerSqft:     float64(aux.PricePerSqft),
		OER:              float64(aux.OER),
		ROI:              float64(aux.ROI),
		OccupancyRate:    float64(aux.OccupancyRate),
		NetYield:         float64(aux.NetYield),
		BreakEvenRatio:   float64(aux.BreakEvenRatio),
	}
	return nil
}

// Analysis is the scored assessment derived from Metrics.
type Analysis struct {
	Score           int      `json:"score"`
	Summary         []string `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Warnings        []string `json:"warnings"`
	Risks           []string `json:"risks"`
}

// Recommendation returns the single recommendation line, or "" if none was set.
func (a Analysis) Recommendation() string {
	if len(a.Recommendations) == 0 {
		return ""
	}
	return a.Recommendations[0]
}

// Evaluation bundles the metrics and analysis returned by the analysis endpoints.
type Evaluation struct {
	Metrics  Metrics  `json:"metrics"`
	Analysis Analysis `json:"analysis"`
}

// ReportRecord is a history entry for a generated report.
type ReportRecord struct {
	ID             string    `json:"id"`
	PropertyID     int64     `json:"property_id"`
	Format         string    `json:"format"`
	Score          int       `json:"score"`
	Recommendation string    `json:"recommendation"`
	CreatedAt      time.Time `json:"created_at"`
}
