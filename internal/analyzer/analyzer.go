// Package analyzer scores investment metrics against fixed benchmark tiers and
// produces the narrative findings used in reports.
package analyzer

import "github.com/Dan9191/property-service/internal/models"

// Analyze scores m across every dimension. Each dimension contributes its
// tier's points and exactly one message; the total picks one recommendation.
func Analyze(m models.Metrics) models.Analysis {
	a := models.Analysis{
		Summary:         []string{},
		Recommendations: []string{},
		Warnings:        []string{},
		Risks:           []string{},
	}

	for _, d := range dimensions {
		t := d.Evaluate(m)
		a.Score += t.Points
		switch t.Bucket {
		case BucketSummary:
			a.Summary = append(a.Summary, t.Message)
		case BucketWarnings:
			a.Warnings = append(a.Warnings, t.Message)
		case BucketRisks:
			a.Risks = append(a.Risks, t.Message)
		}
	}

	a.Recommendations = append(a.Recommendations, recommend(a.Score))
	return a
}

// ScoreRange returns the lowest and highest totals the rule table can produce.
func ScoreRange() (min, max int) {
	for _, d := range dimensions {
		lo, hi := d.Tiers[0].Points, d.Tiers[0].Points
		for _, t := range d.Tiers[1:] {
			if t.Points < lo {
				lo = t.Points
			}
			if t.Points > hi {
				hi = t.Points
			}
		}
		min += lo
		max += hi
	}
	return min, max
}
