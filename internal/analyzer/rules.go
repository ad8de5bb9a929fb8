package analyzer

import (
	"slices"

	"github.com/Dan9191/property-service/internal/models"
)

// Bucket names the narrative list a tier writes its message to.
type Bucket string

const (
	BucketSummary  Bucket = "summary"
	BucketWarnings Bucket = "warnings"
	BucketRisks    Bucket = "risks"
)

// Tier is one row of a dimension's rule table.
type Tier struct {
	Matches func(v float64) bool
	Points  int
	Bucket  Bucket
	Message string
}

// Dimension scores a single metric. Tiers are checked in order and the first
// match wins; the last tier always matches.
type Dimension struct {
	Name  string
	Value func(m models.Metrics) float64
	Tiers []Tier
}

// Evaluate returns the tier that applies to m.
func (d Dimension) Evaluate(m models.Metrics) Tier {
	v := d.Value(m)
	for _, t := range d.Tiers {
		if t.Matches(v) {
			return t
		}
	}
	return d.Tiers[len(d.Tiers)-1]
}

func atLeast(threshold float64) func(float64) bool {
	return func(v float64) bool { return v >= threshold }
}

func atMost(threshold float64) func(float64) bool {
	return func(v float64) bool { return v <= threshold }
}

func otherwise(float64) bool { return true }

var dimensions = []Dimension{
	{
		Name:  "Cash-on-Cash Return",
		Value: func(m models.Metrics) float64 { return m.CashOnCashReturn },
		Tiers: []Tier{
			{atLeast(12), 20, BucketSummary, "Excellent Cash-on-Cash Return."},
			{atLeast(8), 15, BucketSummary, "Good Cash-on-Cash Return."},
			{atLeast(5), 10, BucketWarnings, "Cash-on-Cash Return is fair, consider optimizing expenses or increasing income."},
			{otherwise, 5, BucketRisks, "Low Cash-on-Cash Return, indicating poor cash flow generation relative to investment."},
		},
	},
	{
		Name:  "Cap Rate",
		Value: func(m models.Metrics) float64 { return m.CapRate },
		Tiers: []Tier{
			{atLeast(8), 20, BucketSummary, "Strong Cap Rate, indicating good return potential."},
			{atLeast(6), 15, BucketSummary, "Good Cap Rate."},
			{atLeast(4), 10, BucketWarnings, "Cap Rate is fair, may indicate lower market demand or higher risk."},
			{otherwise, 5, BucketRisks, "Low Cap Rate, suggesting higher price relative to NOI."},
		},
	},
	{
		Name:  "DSCR",
		Value: func(m models.Metrics) float64 { return m.DSCR },
		Tiers: []Tier{
			{atLeast(1.5), 20, BucketSummary, "Very strong Debt Service Coverage Ratio, excellent loan repayment ability."},
			{atLeast(1.25), 15, BucketSummary, "Healthy Debt Service Coverage Ratio."},
			{atLeast(1.0), 10, BucketWarnings, "DSCR is at break-even, monitor cash flow closely."},
			{otherwise, 5, BucketRisks, "DSCR below 1.0, indicating potential difficulty in covering debt payments."},
		},
	},
	{
		Name:  "Occupancy Rate",
		Value: func(m models.Metrics) float64 { return m.OccupancyRate },
		Tiers: []Tier{
			{atLeast(90), 15, BucketSummary, "High Occupancy Rate, stable rental income."},
			{atLeast(70), 10, BucketWarnings, "Moderate Occupancy Rate, potential for improvement."},
			{otherwise, 5, BucketRisks, "Low Occupancy Rate, impacting rental income and profitability."},
		},
	},
	{
		Name:  "OER",
		Value: func(m models.Metrics) float64 { return m.OER },
		Tiers: []Tier{
			{atMost(35), 15, BucketSummary, "Low Operating Expense Ratio, efficient management."},
			{atMost(50), 10, BucketWarnings, "Moderate Operating Expense Ratio, review for potential savings."},
			{otherwise, 5, BucketRisks, "High Operating Expense Ratio, significantly impacting profitability."},
		},
	},
}

// Dimensions returns the scoring rule table in evaluation order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	for i, d := range dimensions {
		d.Tiers = slices.Clone(d.Tiers)
		out[i] = d
	}
	return out
}

// Recommendation lines keyed by minimum total score, highest first.
const (
	RecommendStrong = "This property shows strong investment potential. Consider proceeding with due diligence."
	RecommendGood   = "Good investment opportunity, but further analysis on identified warnings is recommended."
	RecommendRisky  = "This property carries significant risks. Thorough due diligence and risk mitigation strategies are essential before investment."
)

var recommendations = []struct {
	minScore int
	message  string
}{
	{80, RecommendStrong},
	{60, RecommendGood},
	{0, RecommendRisky},
}

func recommend(score int) string {
	for _, r := range recommendations {
		if score >= r.minScore {
			return r.message
		}
	}
	return RecommendRisky
}
