package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/Dan9191/property-service/internal/repository"
)

// ListingQuery narrows and orders a listing view
type ListingQuery struct {
	Search    string
	Type      string
	SortBy    string
	Ascending bool
}

// Form defaults used when a listing lacks a value.
const (
	defaultPrice             = 350000
	defaultSquareFootage     = 1500
	defaultBedrooms          = 3
	defaultBathrooms         = 2
	defaultYearBuilt         = 1990
	defaultLotSize           = 6000
	defaultPropertyTaxes     = 3500
	defaultNOI               = 20000
	defaultCashInvested      = 70000
	defaultGrossRentalIncome = 36000
	defaultOperatingExpenses = 10000
	defaultTotalDebtService  = 15000
)

// AllTypes disables the property type filter
const AllTypes = "All"

// Listings loads listings from the configured source, falling back to the
// last synced copy in the database when the source fails.
func (s *Service) Listings(ctx context.Context, q ListingQuery) ([]models.Listing, error) {
	listings, err := s.loadListings(ctx)
	if err != nil {
		return nil, err
	}

	listings = SearchListings(listings, q.Search)
	listings = FilterByType(listings, q.Type)
	return SortListings(listings, q.SortBy, q.Ascending), nil
}

func (s *Service) loadListings(ctx context.Context) ([]models.Listing, error) {
	if s.ext.Listings != nil {
		listings, err := s.ext.Listings.Listings(ctx)
		if err == nil {
			return listings, nil
		}
		s.log.Errorf("Failed to load listings from source: %v", err)
		if s.repo == nil {
			return nil, fmt.Errorf("failed to load listings: %w", err)
		}
	}
	if s.repo == nil {
		return nil, fmt.Errorf("listings: %w", ErrNotConfigured)
	}
	return s.repo.ListListings()
}

// ListingRecord prefills a property record from the listing with the given ID
func (s *Service) ListingRecord(ctx context.Context, id string) (*models.PropertyRecord, error) {
	listings, err := s.loadListings(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		if l.ID == id {
			record := RecordFromListing(l)
			return &record, nil
		}
	}
	return nil, repository.ErrNotFound
}

// SyncListings copies the source listings into the database and returns how many were stored
func (s *Service) SyncListings(ctx context.Context) (int, error) {
	if s.ext.Listings == nil {
		return 0, fmt.Errorf("listing source: %w", ErrNotConfigured)
	}
	listings, err := s.ext.Listings.Listings(ctx)
	if err != nil {
		s.log.Errorf("Failed to load listings for sync: %v", err)
		return 0, fmt.Errorf("failed to load listings: %w", err)
	}

	synced := 0
	for _, l := range listings {
		if err := ctx.Err(); err != nil {
			return synced, err
		}
		if l.ID == "" {
			s.log.Warnf("Skipping listing without id: %s", l.DisplayAddress())
			continue
		}
		if err := s.repo.UpsertListing(l); err != nil {
			return synced, err
		}
		synced++
	}

	s.log.Infof("Synced %d listings", synced)
	return synced, nil
}

// listingColumns lists the text of every column, keyed by its sheet header.
func listingColumns(l models.Listing) map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return map[string]string{
		"id":               l.ID,
		"addressLine1":     l.AddressLine1,
		"formattedAddress": l.FormattedAddress,
		"city":             l.City,
		"state":            l.State,
		"zipCode":          l.ZipCode,
		"county":           l.County,
		"propertyType":     l.PropertyType,
		"bedrooms":         strconv.Itoa(l.Bedrooms),
		"bathrooms":        f(l.Bathrooms),
		"squareFootage":    f(l.SquareFootage),
		"yearBuilt":        strconv.Itoa(l.YearBuilt),
		"price":            f(l.Price),
		"propertyTaxes":    f(l.PropertyTaxes),
		"hoa":              f(l.HOA),
		"lotSize":          f(l.LotSize),
	}
}

// SearchListings keeps listings where any column contains query, ignoring case.
// An empty query keeps everything.
func SearchListings(listings []models.Listing, query string) []models.Listing {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return listings
	}

	out := []models.Listing{}
	for _, l := range listings {
		for _, v := range listingColumns(l) {
			if strings.Contains(strings.ToLower(v), query) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

// FilterByType keeps listings of the given property type. "All" and "" keep everything.
func FilterByType(listings []models.Listing, propertyType string) []models.Listing {
	if propertyType == "" || propertyType == AllTypes {
		return listings
	}

	out := []models.Listing{}
	for _, l := range listings {
		if l.PropertyType == propertyType {
			out = append(out, l)
		}
	}
	return out
}

var numericColumns = map[string]func(models.Listing) float64{
	"bedrooms":      func(l models.Listing) float64 { return float64(l.Bedrooms) },
	"bathrooms":     func(l models.Listing) float64 { return l.Bathrooms },
	"squareFootage": func(l models.Listing) float64 { return l.SquareFootage },
	"yearBuilt":     func(l models.Listing) float64 { return float64(l.YearBuilt) },
	"price":         func(l models.Listing) float64 { return l.Price },
	"propertyTaxes": func(l models.Listing) float64 { return l.PropertyTaxes },
	"hoa":           func(l models.Listing) float64 { return l.HOA },
	"lotSize":       func(l models.Listing) float64 { return l.LotSize },
}

// SortListings returns a sorted copy. Unknown columns leave the order unchanged.
func SortListings(listings []models.Listing, column string, ascending bool) []models.Listing {
	var compare func(a, b models.Listing) int
	if key, ok := numericColumns[column]; ok {
		compare = func(a, b models.Listing) int { return cmp.Compare(key(a), key(b)) }
	} else if len(listings) > 0 {
		if _, ok := listingColumns(listings[0])[column]; !ok {
			return listings
		}
		compare = func(a, b models.Listing) int {
			return strings.Compare(listingColumns(a)[column], listingColumns(b)[column])
		}
	} else {
		return listings
	}

	out := slices.Clone(listings)
	slices.SortStableFunc(out, func(a, b models.Listing) int {
		if ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return out
}

// RecordFromListing prefills a property record from a listing. Values the
// listing lacks take the form defaults; income and financing fields always do.
func RecordFromListing(l models.Listing) models.PropertyRecord {
	return models.PropertyRecord{
		Address:           l.DisplayAddress(),
		PropertyType:      l.PropertyType,
		Bedrooms:          orDefault(l.Bedrooms, defaultBedrooms),
		Bathrooms:         orDefault(l.Bathrooms, defaultBathrooms),
		YearBuilt:         orDefault(l.YearBuilt, defaultYearBuilt),
		LotSize:           orDefault(l.LotSize, defaultLotSize),
		SquareFootage:     orDefault(l.SquareFootage, defaultSquareFootage),
		Price:             orDefault(l.Price, defaultPrice),
		PropertyTaxes:     orDefault(l.PropertyTaxes, defaultPropertyTaxes),
		HOAFees:           l.HOA,
		NOI:               defaultNOI,
		GrossRentalIncome: defaultGrossRentalIncome,
		OperatingExpenses: defaultOperatingExpenses,
		TotalDebtService:  defaultTotalDebtService,
		CashInvested:      defaultCashInvested,
		OccupiedUnits:     1,
		TotalUnits:        1,
	}
}

func orDefault[T int | float64](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}
