package report

import (
	"math"
	"strconv"

	"github.com/Dan9191/property-service/internal/models"
	"github.com/dustin/go-humanize"
)

const infinity = "∞"

// Money formats v as dollars with thousands separators.
func Money(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Ratio(v)
	}
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Percent formats an already-scaled percentage with two decimals.
func Percent(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Ratio(v)
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// Ratio formats a plain ratio with two decimals; infinities display as ∞.
func Ratio(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return infinity
	case math.IsInf(v, -1):
		return "-" + infinity
	case math.IsNaN(v):
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Raw formats a value for machine-readable exports (CSV, sheets, XML).
func Raw(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MetricRow is one line of the benchmark table.
type MetricRow struct {
	Key        string
	Name       string
	Value      float64
	Display    string
	Benchmark  string
	Assessment string
}

// assess walks descending "higher is better" thresholds for Excellent, Good, Fair.
func assess(v float64, excellent, good, fair float64) string {
	switch {
	case v >= excellent:
		return "Excellent"
	case v >= good:
		return "Good"
	case v >= fair:
		return "Fair"
	}
	return "Poor"
}

// MetricRows lists every metric with its benchmark and a display-only
// assessment label. These labels never affect the analysis score.
func MetricRows(m models.Metrics) []MetricRow {
	cashFlow := "Needs Improvement"
	if m.AnnualCashFlow > 0 {
		cashFlow = "Excellent"
	}

	oer := "Poor"
	switch {
	case m.OER <= 35:
		oer = "Excellent"
	case m.OER <= 50:
		oer = "Good"
	case m.OER <= 60:
		oer = "Fair"
	}

	breakEven := "Poor"
	switch {
	case m.BreakEvenRatio < 75:
		breakEven = "Excellent"
	case m.BreakEvenRatio < 85:
		breakEven = "Good"
	case m.BreakEvenRatio < 95:
		breakEven = "Fair"
	}

	return []MetricRow{
		{"annual_cash_flow", "Annual Cash Flow", m.AnnualCashFlow, Money(m.AnnualCashFlow), "Positive", cashFlow},
		{"cash_on_cash_return", "Cash-on-Cash Return", m.CashOnCashReturn, Percent(m.CashOnCashReturn), "8-12%", assess(m.CashOnCashReturn, 12, 8, 5)},
		{"cap_rate", "Cap Rate", m.CapRate, Percent(m.CapRate), "6-10%", assess(m.CapRate, 8, 6, 4)},
		{"dscr", "Debt Service Coverage Ratio", m.DSCR, Ratio(m.DSCR), "1.25+", assess(m.DSCR, 1.5, 1.25, 1.0)},
		{"gross_rental_yield", "Gross Rental Yield", m.GrossRentalYield, Percent(m.GrossRentalYield), "8-12%", assess(m.GrossRentalYield, 10, 8, 6)},
		{"price_per_sqft", "Price per Square Foot", m.PricePerSqft, Money(m.PricePerSqft), "Market Dependent", "Market Analysis Required"},
		{"oer", "Operating Expense Ratio (OER)", m.OER, Percent(m.OER), "30-50%", oer},
		{"roi", "Return on Investment (ROI)", m.ROI, Percent(m.ROI), "10-20%", assess(m.ROI, 20, 10, 5)},
		{"occupancy_rate", "Occupancy Rate", m.OccupancyRate, Percent(m.OccupancyRate), "90-95%", assess(m.OccupancyRate, 95, 90, 70)},
		{"net_yield", "Net Yield", m.NetYield, Percent(m.NetYield), "5-10%", assess(m.NetYield, 8, 5, 3)},
		{"break_even_ratio", "Break-Even Ratio", m.BreakEvenRatio, Percent(m.BreakEvenRatio), "< 85%", breakEven},
	}
}

// Field is a labelled property attribute.
type Field struct {
	Key     string
	Label   string
	Display string
	Raw     string
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PropertyFields lists the descriptive attributes of a record.
func PropertyFields(r models.PropertyRecord) []Field {
	return []Field{
		{"address", "Address", orNA(r.Address), r.Address},
		{"property_type", "Property Type", orNA(r.PropertyType), r.PropertyType},
		{"price", "Purchase Price", Money(r.Price), Raw(r.Price)},
		{"square_footage", "Square Footage", humanize.FormatFloat("#,###.", r.SquareFootage) + " sq ft", Raw(r.SquareFootage)},
		{"bedrooms", "Bedrooms", strconv.Itoa(r.Bedrooms), strconv.Itoa(r.Bedrooms)},
		{"bathrooms", "Bathrooms", strconv.FormatFloat(r.Bathrooms, 'f', -1, 64), Raw(r.Bathrooms)},
		{"year_built", "Year Built", yearOrNA(r.YearBuilt), strconv.Itoa(r.YearBuilt)},
		{"lot_size", "Lot Size", humanize.FormatFloat("#,###.", r.LotSize) + " sq ft", Raw(r.LotSize)},
		{"zoning", "Zoning", orNA(r.Zoning), r.Zoning},
	}
}

func yearOrNA(y int) string {
	if y <= 0 {
		return "N/A"
	}
	return strconv.Itoa(y)
}

// FinancialFields lists the financial inputs of a record.
func FinancialFields(r models.PropertyRecord) []Field {
	return []Field{
		{"noi", "Net Operating Income", Money(r.NOI), Raw(r.NOI)},
		{"cash_invested", "Cash Invested", Money(r.CashInvested), Raw(r.CashInvested)},
		{"gross_rental_income", "Gross Rental Income", Money(r.GrossRentalIncome), Raw(r.GrossRentalIncome)},
		{"operating_expenses", "Operating Expenses", Money(r.OperatingExpenses), Raw(r.OperatingExpenses)},
		{"total_debt_service", "Total Debt Service", Money(r.TotalDebtService), Raw(r.TotalDebtService)},
		{"property_taxes", "Property Taxes", Money(r.PropertyTaxes), Raw(r.PropertyTaxes)},
		{"hoa_fees", "HOA Fees", Money(r.HOAFees), Raw(r.HOAFees)},
		{"occupied_units", "Occupied Units", strconv.Itoa(r.OccupiedUnits), strconv.Itoa(r.OccupiedUnits)},
		{"total_units", "Total Units", strconv.Itoa(r.TotalUnits), strconv.Itoa(r.TotalUnits)},
	}
}

// Section is a titled list of analysis findings.
type Section struct {
	Key   string
	Title string
	Lines []string
}

// Sections returns the narrative buckets in report order.
func Sections(a models.Analysis) []Section {
	return []Section{
		{"summary", "Summary", a.Summary},
		{"recommendations", "Recommendations", a.Recommendations},
		{"warnings", "Warnings", a.Warnings},
		{"risks", "Risks", a.Risks},
	}
}
