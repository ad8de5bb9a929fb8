package models

// Listing is a property listing row from the spreadsheet store. JSON names
// follow the sheet's column headers.
type Listing struct {
	ID               string  `json:"id"`
	AddressLine1     string  `json:"addressLine1"`
	FormattedAddress string  `json:"formattedAddress"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zipCode"`
	County           string  `json:"county"`
	PropertyType     string  `json:"propertyType"`
	Bedrooms         int     `json:"bedrooms"`
	Bathrooms        float64 `json:"bathrooms"`
	SquareFootage    float64 `json:"squareFootage"`
	YearBuilt        int     `json:"yearBuilt"`
	Price            float64 `json:"price"`
	PropertyTaxes    float64 `json:"propertyTaxes"`
	HOA              float64 `json:"hoa"`
	LotSize          float64 `json:"lotSize"`
}

// DisplayAddress prefers the formatted address over the first address line.
func (l Listing) DisplayAddress() string {
	if l.FormattedAddress != "" {
		return l.FormattedAddress
	}
	return l.AddressLine1
}
