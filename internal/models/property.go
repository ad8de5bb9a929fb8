package models

import (
	"encoding/json"
	"time"
)

// PropertyRecord is one property snapshot as entered on the input form or
// prefilled from a listing. Every numeric field defaults to 0 except
// TotalUnits, which defaults to 1.
type PropertyRecord struct {
	Address       string  `json:"address" validate:"required"`
	PropertyType  string  `json:"property_type"`
	Bedrooms      int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms     float64 `json:"bathrooms" validate:"gte=0"`
	YearBuilt     int     `json:"year_built"`
	LotSize       float64 `json:"lot_size" validate:"gte=0"`
	SquareFootage float64 `json:"square_footage" validate:"gt=0"`
	Zoning        string  `json:"zoning,omitempty"`

	Price             float64 `json:"price" validate:"gt=0"`
	NOI               float64 `json:"noi" validate:"gte=0"`
	GrossRentalIncome float64 `json:"gross_rental_income" validate:"gte=0"`
	OperatingExpenses float64 `json:"operating_expenses" validate:"gte=0"`
	TotalDebtService  float64 `json:"total_debt_service" validate:"gte=0"`
	PropertyTaxes     float64 `json:"property_taxes" validate:"gte=0"`
	HOAFees           float64 `json:"hoa_fees" validate:"gte=0"`

	OccupiedUnits int `json:"occupied_units" validate:"gte=0"`
	TotalUnits    int `json:"total_units" validate:"gte=1"`

	CashInvested float64 `json:"cash_invested" validate:"gte=0"`
}

// UnmarshalJSON decodes a record, leaving TotalUnits at 1 when the field is absent.
func (r *PropertyRecord) UnmarshalJSON(data []byte) error {
	type alias PropertyRecord
	aux := alias{TotalUnits: 1}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = PropertyRecord(aux)
	return nil
}

// Property is a record saved by an operator.
type Property struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Record    PropertyRecord `json:"record"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
