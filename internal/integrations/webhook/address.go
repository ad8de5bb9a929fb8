package webhook

import (
	"regexp"
	"strings"

	"github.com/Dan9191/property-service/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Validate checks an address before submission. Missing required fields are
// errors; the rest are warnings.
func Validate(a models.Address) models.AddressCheck {
	check := models.AddressCheck{Errors: []string{}, Warnings: []string{}}

	required := []struct{ name, value string }{
		{"addressLine1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			check.Errors = append(check.Errors, "Missing required field: "+f.name)
		}
	}

	recommended := []struct{ name, value string }{
		{"propertyType", a.PropertyType},
		{"county", a.County},
	}
	for _, f := range recommended {
		if strings.TrimSpace(f.value) == "" {
			check.Warnings = append(check.Warnings, "Missing recommended field: "+f.name)
		}
	}

	if zip := strings.TrimSpace(a.ZipCode); zip != "" && !zipPattern.MatchString(zip) {
		check.Warnings = append(check.Warnings, "ZIP code format may be invalid (expected: 12345 or 12345-6789)")
	}
	if state := strings.TrimSpace(a.State); state != "" && len(state) != 2 {
		check.Warnings = append(check.Warnings, "State should be 2-character abbreviation (e.g., CA, NY)")
	}

	check.Valid = len(check.Errors) == 0
	return check
}

// Format trims every field, normalizes casing and builds FormattedAddress.
func Format(a models.Address) models.Address {
	title := cases.Title(language.English)

	out := models.Address{
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         title.String(strings.TrimSpace(a.City)),
		State:        strings.ToUpper(strings.TrimSpace(a.State)),
		ZipCode:      strings.TrimSpace(a.ZipCode),
		County:       title.String(strings.TrimSpace(a.County)),
		PropertyType: strings.TrimSpace(a.PropertyType),
		Notes:        strings.TrimSpace(a.Notes),
	}

	parts := []string{out.AddressLine1, out.AddressLine2, out.City, strings.TrimSpace(out.State + " " + out.ZipCode)}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	out.FormattedAddress = strings.Join(nonEmpty, ", ")
	return out
}
