package models

// Address is a raw address capture submitted to the intake webhook.
type Address struct {
	AddressLine1     string `json:"addressLine1"`
	AddressLine2     string `json:"addressLine2"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zipCode"`
	County           string `json:"county"`
	PropertyType     string `json:"propertyType"`
	Notes            string `json:"notes"`
	FormattedAddress string `json:"formattedAddress,omitempty"`
}

// AddressCheck is the outcome of address validation.
type AddressCheck struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
