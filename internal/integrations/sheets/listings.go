package sheets

import (
	"context"
	"strconv"
	"strings"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/spf13/cast"
)

// ListingsFromValues maps raw sheet values to listings. The first row is the
// header; rows whose cells are all blank are dropped.
func ListingsFromValues(values [][]any) []models.Listing {
	listings := []models.Listing{}
	if len(values) < 2 {
		return listings
	}

	header := make([]string, len(values[0]))
	for i, h := range values[0] {
		header[i] = strings.TrimSpace(cast.ToString(h))
	}

	for _, row := range values[1:] {
		cells := make(map[string]string, len(header))
		blank := true
		for i, v := range row {
			if i >= len(header) {
				break
			}
			s := strings.TrimSpace(cast.ToString(v))
			if s != "" {
				blank = false
			}
			cells[header[i]] = s
		}
		if blank {
			continue
		}
		listings = append(listings, listingFromCells(cells))
	}
	return listings
}

func listingFromCells(c map[string]string) models.Listing {
	return models.Listing{
		ID:               c["id"],
		AddressLine1:     c["addressLine1"],
		FormattedAddress: c["formattedAddress"],
		City:             c["city"],
		State:            c["state"],
		ZipCode:          c["zipCode"],
		County:           c["county"],
		PropertyType:     c["propertyType"],
		Bedrooms:         int(number(c["bedrooms"])),
		Bathrooms:        number(c["bathrooms"]),
		SquareFootage:    number(c["squareFootage"]),
		YearBuilt:        int(number(c["yearBuilt"])),
		Price:            number(c["price"]),
		PropertyTaxes:    number(c["propertyTaxes"]),
		HOA:              number(c["hoa"]),
		LotSize:          number(c["lotSize"]),
	}
}

var numberCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// number parses sheet numbers such as "$1,200.50"; anything unparsable is 0.
func number(s string) float64 {
	f, err := strconv.ParseFloat(numberCleaner.Replace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// DemoSource serves the built-in sample listings when no sheet is configured.
type DemoSource struct{}

// Listings returns DemoListings.
func (DemoSource) Listings(context.Context) ([]models.Listing, error) {
	return DemoListings(), nil
}

// DemoListings returns five sample California listings.
func DemoListings() []models.Listing {
	return []models.Listing{
		{ID: "1", City: "Los Angeles", State: "CA", ZipCode: "90210", PropertyType: "Single Family", Bedrooms: 3, Bathrooms: 2.5,
			SquareFootage: 1800, YearBuilt: 1995, FormattedAddress: "123 Beverly Hills Dr, Los Angeles, CA 90210",
			Price: 850000, PropertyTaxes: 10000, HOA: 0, LotSize: 7000},
		{ID: "2", City: "San Francisco", State: "CA", ZipCode: "94102", PropertyType: "Condo", Bedrooms: 2, Bathrooms: 2.0,
			SquareFootage: 1200, YearBuilt: 2005, FormattedAddress: "456 Market St, San Francisco, CA 94102",
			Price: 1200000, PropertyTaxes: 15000, HOA: 300, LotSize: 0},
		{ID: "3", City: "San Diego", State: "CA", ZipCode: "92101", PropertyType: "Townhouse", Bedrooms: 4, Bathrooms: 3.0,
			SquareFootage: 2200, YearBuilt: 1988, FormattedAddress: "789 Harbor View, San Diego, CA 92101",
			Price: 750000, PropertyTaxes: 8000, HOA: 150, LotSize: 3000},
		{ID: "4", City: "Sacramento", State: "CA", ZipCode: "95814", PropertyType: "Single Family", Bedrooms: 3, Bathrooms: 2.0,
			SquareFootage: 1600, YearBuilt: 2000, FormattedAddress: "101 Capitol Mall, Sacramento, CA 95814",
			Price: 600000, PropertyTaxes: 7000, HOA: 0, LotSize: 6500},
		{ID: "5", City: "Oakland", State: "CA", ZipCode: "94612", PropertyType: "Condo", Bedrooms: 1, Bathrooms: 1.0,
			SquareFootage: 800, YearBuilt: 2015, FormattedAddress: "200 Grand Ave, Oakland, CA 94612",
			Price: 450000, PropertyTaxes: 5000, HOA: 250, LotSize: 0},
	}
}
