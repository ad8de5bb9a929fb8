package service

import (
	"testing"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func testListings() []models.Listing {
	return []models.Listing{
		{ID: "a", FormattedAddress: "1 Oak St, Dallas, TX 75201", City: "Dallas", State: "TX", PropertyType: "Condo", Price: 300000, Bedrooms: 2},
		{ID: "b", FormattedAddress: "2 Elm St, Austin, TX 78701", City: "Austin", State: "TX", PropertyType: "Single Family", Price: 450000, Bedrooms: 4},
		{ID: "c", AddressLine1: "3 Pine Rd", City: "Houston", State: "TX", PropertyType: "Single Family", Price: 150000, Bedrooms: 3},
	}
}

func ids(listings []models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestSearchListings(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps all", "", []string{"a", "b", "c"}},
		{"case insensitive city", "AUSTIN", []string{"b"}},
		{"matches type", "single", []string{"b", "c"}},
		{"matches numbers", "150000", []string{"c"}},
		{"no match", "seattle", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SearchListings(testListings(), tt.query)))
		})
	}
}

func TestFilterByType(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterByType(testListings(), "")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterByType(testListings(), AllTypes)))
	assert.Equal(t, []string{"b", "c"}, ids(FilterByType(testListings(), "Single Family")))
	assert.Empty(t, FilterByType(testListings(), "Townhouse"))
}

func TestSortListings(t *testing.T) {
	listings := testListings()

	assert.Equal(t, []string{"c", "a", "b"}, ids(SortListings(listings, "price", true)))
	assert.Equal(t, []string{"b", "a", "c"}, ids(SortListings(listings, "price", false)))
	assert.Equal(t, []string{"b", "a", "c"}, ids(SortListings(listings, "city", true)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortListings(listings, "unknown", true)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(listings), "input must not be reordered")
	assert.Empty(t, SortListings(nil, "price", true))
}

func TestRecordFromListing(t *testing.T) {
	record := RecordFromListing(models.Listing{
		FormattedAddress: "2 Elm St, Austin, TX 78701",
		PropertyType:     "Condo",
		Price:            410000,
		Bedrooms:         2,
		HOA:              250,
	})

	assert.Equal(t, "2 Elm St, Austin, TX 78701", record.Address)
	assert.Equal(t, "Condo", record.PropertyType)
	assert.Equal(t, 410000.0, record.Price)
	assert.Equal(t, 2, record.Bedrooms)
	assert.Equal(t, 250.0, record.HOAFees)

	assert.Equal(t, 1500.0, record.SquareFootage)
	assert.Equal(t, 2.0, record.Bathrooms)
	assert.Equal(t, 1990, record.YearBuilt)
	assert.Equal(t, 6000.0, record.LotSize)
	assert.Equal(t, 3500.0, record.PropertyTaxes)
	assert.Equal(t, 20000.0, record.NOI)
	assert.Equal(t, 70000.0, record.CashInvested)
	assert.Equal(t, 36000.0, record.GrossRentalIncome)
	assert.Equal(t, 10000.0, record.OperatingExpenses)
	assert.Equal(t, 15000.0, record.TotalDebtService)
	assert.Equal(t, 1, record.OccupiedUnits)
	assert.Equal(t, 1, record.TotalUnits)
}

func TestRecordFromEmptyListingUsesDefaults(t *testing.T) {
	record := RecordFromListing(models.Listing{AddressLine1: "3 Pine Rd"})
	assert.Equal(t, "3 Pine Rd", record.Address)
	assert.Equal(t, 350000.0, record.Price)
	assert.Equal(t, 3, record.Bedrooms)
}
